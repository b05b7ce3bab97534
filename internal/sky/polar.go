package sky

import "math"

// Polar maps a horizontal direction onto the unit disc of a polar sky plot:
// zenith at the centre, horizon on the rim, north up and azimuth increasing
// clockwise. y grows upward. Points below the horizon fall outside the disc.
func Polar(azDeg, altDeg float64) (x, y float64) {
	r := (90 - altDeg) / 90
	s, c := math.Sincos(azDeg * math.Pi / 180)
	return r * s, r * c
}

// Cell maps a horizontal direction onto a character grid of cols x rows
// whose plot disc fills the grid. Terminal cells are about twice as tall as
// wide, so callers usually pass cols = 2*rows. ok is false below the
// horizon.
func Cell(azDeg, altDeg float64, cols, rows int) (col, row int, ok bool) {
	if altDeg < 0 || cols < 1 || rows < 1 {
		return 0, 0, false
	}
	x, y := Polar(azDeg, altDeg)
	col = int(math.Round((x + 1) / 2 * float64(cols-1)))
	row = int(math.Round((1 - y) / 2 * float64(rows-1)))
	return col, row, true
}
