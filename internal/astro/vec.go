package astro

import (
	"fmt"
	"math"

	"github.com/soniakeys/meeus/v3/base"
)

// AU is the Astronomical Unit in kilometers.
const AU = 149597870.7

// LightSpeedAUPerDay is the speed of light in AU per day.
const LightSpeedAUPerDay = 299792.458 * 86400 / AU

// obliquityJ2000 is the mean obliquity of the ecliptic at J2000.0 (IAU 1976) in radians.
const obliquityJ2000 = 84381.448 / 3600 * math.Pi / 180

// Vec3 represents a 3D vector in any reference frame.
type Vec3 struct {
	X, Y, Z float64
}

// Norm returns the magnitude of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalized returns a unit vector in the same direction.
func (v Vec3) Normalized() Vec3 {
	n := v.Norm()
	if n == 0 {
		return Vec3{}
	}
	return Vec3{X: v.X / n, Y: v.Y / n, Z: v.Z / n}
}

// Scale returns the vector scaled by a factor.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Add returns the sum of two vectors.
func (v Vec3) Add(u Vec3) Vec3 {
	return Vec3{X: v.X + u.X, Y: v.Y + u.Y, Z: v.Z + u.Z}
}

// Sub returns the difference of two vectors.
func (v Vec3) Sub(u Vec3) Vec3 {
	return Vec3{X: v.X - u.X, Y: v.Y - u.Y, Z: v.Z - u.Z}
}

// Dot returns the scalar product.
func (v Vec3) Dot(u Vec3) float64 {
	return v.X*u.X + v.Y*u.Y + v.Z*u.Z
}

// Cross returns the vector product v × u.
func (v Vec3) Cross(u Vec3) Vec3 {
	return Vec3{
		X: v.Y*u.Z - v.Z*u.Y,
		Y: v.Z*u.X - v.X*u.Z,
		Z: v.X*u.Y - v.Y*u.X,
	}
}

// Mat3 is a row-major 3x3 rotation matrix.
type Mat3 [3][3]float64

// Identity returns the identity matrix.
func Identity() Mat3 {
	return Mat3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// RotX returns the frame rotation about the X axis by angle a (radians).
// Positive angles rotate the frame counter-clockwise seen from +X.
func RotX(a float64) Mat3 {
	s, c := math.Sincos(a)
	return Mat3{
		{1, 0, 0},
		{0, c, s},
		{0, -s, c},
	}
}

// RotY returns the frame rotation about the Y axis by angle a (radians).
func RotY(a float64) Mat3 {
	s, c := math.Sincos(a)
	return Mat3{
		{c, 0, -s},
		{0, 1, 0},
		{s, 0, c},
	}
}

// RotZ returns the frame rotation about the Z axis by angle a (radians).
func RotZ(a float64) Mat3 {
	s, c := math.Sincos(a)
	return Mat3{
		{c, s, 0},
		{-s, c, 0},
		{0, 0, 1},
	}
}

// Mul returns the product m·n. Applying the result equals applying n then m.
func (m Mat3) Mul(n Mat3) Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[i][0]*n[0][j] + m[i][1]*n[1][j] + m[i][2]*n[2][j]
		}
	}
	return out
}

// Apply returns m·v.
func (m Mat3) Apply(v Vec3) Vec3 {
	return Vec3{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// T returns the transpose, which is the inverse for rotation matrices.
func (m Mat3) T() Mat3 {
	var out Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out[i][j] = m[j][i]
		}
	}
	return out
}

// EclipticToEquatorial rotates a J2000 ecliptic vector onto the J2000 equator.
func EclipticToEquatorial(ecl Vec3) Vec3 {
	return RotX(-obliquityJ2000).Apply(ecl)
}

// EquatorialToEcliptic is the inverse of EclipticToEquatorial.
func EquatorialToEcliptic(eq Vec3) Vec3 {
	return RotX(obliquityJ2000).Apply(eq)
}

// SphericalFromVec decomposes an equatorial vector into right ascension
// (hours, [0,24)), declination (degrees) and length.
func SphericalFromVec(v Vec3) (raHours, decDeg, r float64) {
	r = v.Norm()
	if r == 0 {
		return 0, 0, 0
	}
	raHours = NormalizeHours(radToDeg(math.Atan2(v.Y, v.X)) / 15)
	decDeg = radToDeg(math.Atan2(v.Z, math.Hypot(v.X, v.Y)))
	return raHours, decDeg, r
}

// VecFromSpherical is the inverse of SphericalFromVec.
func VecFromSpherical(raHours, decDeg, r float64) Vec3 {
	sa, ca := math.Sincos(degToRad(raHours * 15))
	sd, cd := math.Sincos(degToRad(decDeg))
	return Vec3{X: r * cd * ca, Y: r * cd * sa, Z: r * sd}
}

// LightTimeFromAU returns the one-way light time in seconds for a distance in AU.
func LightTimeFromAU(au float64) float64 {
	return base.LightTime(au) * 86400
}

// FormatLightTime formats light time in seconds to a human-readable string.
func FormatLightTime(seconds float64) string {
	switch {
	case seconds < 60:
		return fmt.Sprintf("%.1fs", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%dm%ds", int(seconds/60), int(seconds)%60)
	default:
		return fmt.Sprintf("%dh%dm", int(seconds/3600), (int(seconds)%3600)/60)
	}
}
