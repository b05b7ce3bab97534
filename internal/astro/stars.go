package astro

import "sort"

// Star is a catalogued background star, J2000 position.
type Star struct {
	Name    string
	RAHours float64
	DecDeg  float64
	Mag     float64 // visual magnitude, lower is brighter
}

// BrightStars returns the catalogued stars at or brighter than maxMag,
// brightest first. The returned slice is a copy.
func BrightStars(maxMag float64) []Star {
	i := sort.Search(len(brightStars), func(i int) bool {
		return brightStars[i].Mag > maxMag
	})
	out := make([]Star, i)
	copy(out, brightStars[:i])
	return out
}

// brightStars is sorted by magnitude. Positions from the Yale Bright Star
// Catalogue, names per the IAU WGSN list.
var brightStars = []Star{
	{Name: "Sirius", RAHours: 6.7525, DecDeg: -16.716, Mag: -1.46},
	{Name: "Canopus", RAHours: 6.3992, DecDeg: -52.696, Mag: -0.74},
	{Name: "Arcturus", RAHours: 14.2610, DecDeg: 19.182, Mag: -0.05},
	{Name: "Vega", RAHours: 18.6157, DecDeg: 38.784, Mag: 0.03},
	{Name: "Capella", RAHours: 5.2781, DecDeg: 45.998, Mag: 0.08},
	{Name: "Rigel", RAHours: 5.2423, DecDeg: -8.202, Mag: 0.13},
	{Name: "Procyon", RAHours: 7.6551, DecDeg: 5.225, Mag: 0.34},
	{Name: "Achernar", RAHours: 1.6286, DecDeg: -57.237, Mag: 0.46},
	{Name: "Betelgeuse", RAHours: 5.9195, DecDeg: 7.407, Mag: 0.50},
	{Name: "Hadar", RAHours: 14.0637, DecDeg: -60.373, Mag: 0.61},
	{Name: "Acrux", RAHours: 12.4433, DecDeg: -63.099, Mag: 0.76},
	{Name: "Altair", RAHours: 19.8464, DecDeg: 8.868, Mag: 0.76},
	{Name: "Aldebaran", RAHours: 4.5987, DecDeg: 16.509, Mag: 0.85},
	{Name: "Antares", RAHours: 16.4901, DecDeg: -26.432, Mag: 0.96},
	{Name: "Spica", RAHours: 13.4199, DecDeg: -11.161, Mag: 0.97},
	{Name: "Pollux", RAHours: 7.7553, DecDeg: 28.026, Mag: 1.14},
	{Name: "Fomalhaut", RAHours: 22.9609, DecDeg: -29.622, Mag: 1.16},
	{Name: "Deneb", RAHours: 20.6905, DecDeg: 45.280, Mag: 1.25},
	{Name: "Mimosa", RAHours: 12.7953, DecDeg: -59.689, Mag: 1.25},
	{Name: "Regulus", RAHours: 10.1395, DecDeg: 11.967, Mag: 1.35},
	{Name: "Adhara", RAHours: 6.9771, DecDeg: -28.972, Mag: 1.50},
	{Name: "Castor", RAHours: 7.5767, DecDeg: 31.889, Mag: 1.58},
	{Name: "Gacrux", RAHours: 12.5194, DecDeg: -57.113, Mag: 1.63},
	{Name: "Shaula", RAHours: 17.5601, DecDeg: -37.104, Mag: 1.63},
	{Name: "Bellatrix", RAHours: 5.4189, DecDeg: 6.350, Mag: 1.64},
	{Name: "Elnath", RAHours: 5.4382, DecDeg: 28.608, Mag: 1.65},
	{Name: "Miaplacidus", RAHours: 9.2200, DecDeg: -69.717, Mag: 1.68},
	{Name: "Alnilam", RAHours: 5.6035, DecDeg: -1.202, Mag: 1.69},
	{Name: "Alnair", RAHours: 22.1372, DecDeg: -46.961, Mag: 1.74},
	{Name: "Alioth", RAHours: 12.9005, DecDeg: 55.960, Mag: 1.77},
	{Name: "Alnitak", RAHours: 5.6793, DecDeg: -1.943, Mag: 1.77},
	{Name: "Dubhe", RAHours: 11.0621, DecDeg: 61.751, Mag: 1.79},
	{Name: "Mirfak", RAHours: 3.4054, DecDeg: 49.861, Mag: 1.79},
	{Name: "Wezen", RAHours: 7.1399, DecDeg: -26.393, Mag: 1.84},
	{Name: "Kaus Australis", RAHours: 18.4029, DecDeg: -34.384, Mag: 1.85},
	{Name: "Alkaid", RAHours: 13.7923, DecDeg: 49.313, Mag: 1.86},
	{Name: "Avior", RAHours: 8.3753, DecDeg: -59.509, Mag: 1.86},
	{Name: "Sargas", RAHours: 17.6220, DecDeg: -42.998, Mag: 1.87},
	{Name: "Menkalinan", RAHours: 5.9921, DecDeg: 44.948, Mag: 1.90},
	{Name: "Atria", RAHours: 16.8111, DecDeg: -69.028, Mag: 1.92},
	{Name: "Alhena", RAHours: 6.6285, DecDeg: 16.399, Mag: 1.93},
	{Name: "Peacock", RAHours: 20.4275, DecDeg: -56.735, Mag: 1.94},
	{Name: "Alsephina", RAHours: 8.7451, DecDeg: -54.709, Mag: 1.96},
	{Name: "Mirzam", RAHours: 6.3783, DecDeg: -17.956, Mag: 1.98},
	{Name: "Alphard", RAHours: 9.4598, DecDeg: -8.659, Mag: 2.00},
	{Name: "Hamal", RAHours: 2.1195, DecDeg: 23.463, Mag: 2.00},
	{Name: "Diphda", RAHours: 0.7265, DecDeg: -17.987, Mag: 2.02},
	{Name: "Nunki", RAHours: 18.9211, DecDeg: -26.297, Mag: 2.02},
	{Name: "Polaris", RAHours: 2.5303, DecDeg: 89.264, Mag: 2.02},
	{Name: "Mizar", RAHours: 13.3987, DecDeg: 54.925, Mag: 2.04},
	{Name: "Mirach", RAHours: 1.1622, DecDeg: 35.621, Mag: 2.05},
	{Name: "Alpheratz", RAHours: 0.1398, DecDeg: 29.091, Mag: 2.06},
	{Name: "Menkent", RAHours: 14.1114, DecDeg: -36.370, Mag: 2.06},
	{Name: "Algieba", RAHours: 9.7642, DecDeg: 19.842, Mag: 2.08},
	{Name: "Kochab", RAHours: 14.8451, DecDeg: 74.156, Mag: 2.08},
	{Name: "Rasalhague", RAHours: 17.5823, DecDeg: 12.560, Mag: 2.08},
	{Name: "Saiph", RAHours: 5.7959, DecDeg: -9.670, Mag: 2.09},
	{Name: "Algol", RAHours: 3.1361, DecDeg: 40.957, Mag: 2.12},
	{Name: "Denebola", RAHours: 11.8177, DecDeg: 14.572, Mag: 2.13},
	{Name: "Muhlifain", RAHours: 12.6919, DecDeg: -48.960, Mag: 2.17},
	{Name: "Suhail", RAHours: 9.1333, DecDeg: -43.433, Mag: 2.21},
	{Name: "Alphecca", RAHours: 15.5781, DecDeg: 26.715, Mag: 2.23},
	{Name: "Eltanin", RAHours: 17.9435, DecDeg: 51.489, Mag: 2.23},
	{Name: "Mintaka", RAHours: 5.5335, DecDeg: -0.299, Mag: 2.23},
	{Name: "Sadr", RAHours: 20.3705, DecDeg: 40.257, Mag: 2.23},
	{Name: "Schedar", RAHours: 0.6751, DecDeg: 56.537, Mag: 2.23},
	{Name: "Aspidiske", RAHours: 9.2849, DecDeg: -59.275, Mag: 2.25},
	{Name: "Naos", RAHours: 8.0597, DecDeg: -40.003, Mag: 2.25},
	{Name: "Caph", RAHours: 0.1530, DecDeg: 59.150, Mag: 2.27},
	{Name: "Larawag", RAHours: 16.9770, DecDeg: -34.293, Mag: 2.29},
	{Name: "Dschubba", RAHours: 16.0055, DecDeg: -22.622, Mag: 2.32},
	{Name: "Izar", RAHours: 14.7498, DecDeg: 27.074, Mag: 2.37},
	{Name: "Merak", RAHours: 11.0307, DecDeg: 56.382, Mag: 2.37},
	{Name: "Ankaa", RAHours: 0.4381, DecDeg: -42.306, Mag: 2.38},
	{Name: "Enif", RAHours: 21.7364, DecDeg: 9.875, Mag: 2.39},
	{Name: "Girtab", RAHours: 17.7081, DecDeg: -39.030, Mag: 2.41},
	{Name: "Scheat", RAHours: 23.0629, DecDeg: 28.083, Mag: 2.42},
	{Name: "Sabik", RAHours: 17.1730, DecDeg: -15.725, Mag: 2.43},
	{Name: "Phecda", RAHours: 11.8972, DecDeg: 53.695, Mag: 2.44},
	{Name: "Aludra", RAHours: 7.4016, DecDeg: -29.303, Mag: 2.45},
	{Name: "Markeb", RAHours: 9.3685, DecDeg: -55.011, Mag: 2.47},
	{Name: "Navi", RAHours: 0.9451, DecDeg: 60.717, Mag: 2.47},
	{Name: "Aljanah", RAHours: 20.7702, DecDeg: 33.970, Mag: 2.48},
	{Name: "Markab", RAHours: 23.0793, DecDeg: 15.205, Mag: 2.49},
	{Name: "Alderamin", RAHours: 21.3097, DecDeg: 62.586, Mag: 2.51},
	{Name: "Zosma", RAHours: 11.2351, DecDeg: 20.524, Mag: 2.56},
	{Name: "Arneb", RAHours: 5.5455, DecDeg: -17.822, Mag: 2.58},
	{Name: "Gienah", RAHours: 12.2635, DecDeg: -17.542, Mag: 2.59},
	{Name: "Zubeneschamali", RAHours: 15.2835, DecDeg: -9.383, Mag: 2.61},
	{Name: "Acrab", RAHours: 16.0906, DecDeg: -19.805, Mag: 2.62},
	{Name: "Phact", RAHours: 5.6608, DecDeg: -34.074, Mag: 2.64},
	{Name: "Sheratan", RAHours: 1.9107, DecDeg: 20.808, Mag: 2.64},
	{Name: "Kraz", RAHours: 12.5731, DecDeg: -23.397, Mag: 2.65},
	{Name: "Unukalhai", RAHours: 15.7378, DecDeg: 6.426, Mag: 2.65},
	{Name: "Hassaleh", RAHours: 5.0328, DecDeg: 33.166, Mag: 2.69},
	{Name: "Tarazed", RAHours: 19.7710, DecDeg: 10.613, Mag: 2.72},
	{Name: "Porrima", RAHours: 12.6943, DecDeg: -1.449, Mag: 2.74},
	{Name: "Yed Prior", RAHours: 16.2391, DecDeg: -3.694, Mag: 2.75},
	{Name: "Zubenelgenubi", RAHours: 14.8480, DecDeg: -16.042, Mag: 2.75},
	{Name: "Cursa", RAHours: 5.1309, DecDeg: -5.086, Mag: 2.79},
	{Name: "Rastaban", RAHours: 17.5072, DecDeg: 52.301, Mag: 2.79},
	{Name: "Cor Caroli", RAHours: 12.9338, DecDeg: 38.318, Mag: 2.81},
	{Name: "Vindemiatrix", RAHours: 13.0363, DecDeg: 10.959, Mag: 2.83},
	{Name: "Nihal", RAHours: 5.4707, DecDeg: -20.759, Mag: 2.84},
	{Name: "Alcyone", RAHours: 3.7914, DecDeg: 24.105, Mag: 2.87},
	{Name: "Tejat", RAHours: 6.3827, DecDeg: 22.513, Mag: 2.88},
	{Name: "Gomeisa", RAHours: 7.4525, DecDeg: 8.289, Mag: 2.90},
	{Name: "Sadalsuud", RAHours: 21.5260, DecDeg: -5.571, Mag: 2.91},
	{Name: "Algorab", RAHours: 12.4977, DecDeg: -16.515, Mag: 2.95},
	{Name: "Sadalmelik", RAHours: 22.0964, DecDeg: -0.320, Mag: 2.96},
	{Name: "Aldhanab", RAHours: 21.3311, DecDeg: -16.127, Mag: 3.00},
	{Name: "Pherkad", RAHours: 15.3455, DecDeg: 71.834, Mag: 3.00},
}
