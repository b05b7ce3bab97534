package ephem

import "strings"

// BodyIdentity maps a display name to the key its ephemeris is queried by.
type BodyIdentity struct {
	DisplayName  string
	EphemerisKey string
}

// Ephemeris keys. Planets are observed through their system barycentres.
const (
	KeyMercury = "MERCURY BARYCENTER"
	KeyVenus   = "VENUS BARYCENTER"
	KeyMars    = "MARS BARYCENTER"
	KeyJupiter = "JUPITER BARYCENTER"
	KeySaturn  = "SATURN BARYCENTER"
	KeyUranus  = "URANUS BARYCENTER"
	KeyNeptune = "NEPTUNE BARYCENTER"
	KeyEarth   = "EARTH"
	KeySun     = "SUN"
	KeyMoon    = "MOON"
)

// Bodies is the canonical registry of resolvable bodies, in display order.
var Bodies = []BodyIdentity{
	{DisplayName: "Mercury", EphemerisKey: KeyMercury},
	{DisplayName: "Venus", EphemerisKey: KeyVenus},
	{DisplayName: "Mars", EphemerisKey: KeyMars},
	{DisplayName: "Jupiter", EphemerisKey: KeyJupiter},
	{DisplayName: "Saturn", EphemerisKey: KeySaturn},
	{DisplayName: "Uranus", EphemerisKey: KeyUranus},
	{DisplayName: "Neptune", EphemerisKey: KeyNeptune},
}

// Reserved lists names that are recognised but not served yet.
var Reserved = []string{"Sun", "Moon"}

// BodiesByName maps exact display names to identities.
var BodiesByName = func() map[string]BodyIdentity {
	m := make(map[string]BodyIdentity, len(Bodies))
	for _, b := range Bodies {
		m[b.DisplayName] = b
	}
	return m
}()

// canonicalNames maps lowercase names, reserved ones included, to their
// display spelling.
var canonicalNames = func() map[string]string {
	m := make(map[string]string, len(Bodies)+len(Reserved))
	for _, b := range Bodies {
		m[strings.ToLower(b.DisplayName)] = b.DisplayName
	}
	for _, r := range Reserved {
		m[strings.ToLower(r)] = r
	}
	return m
}()

// Resolve returns the identity for an exact, case-sensitive display name.
// Reserved names yield *BodyUnavailableError; anything else not in the
// registry yields *UnknownBodyError.
func Resolve(name string) (BodyIdentity, error) {
	if b, ok := BodiesByName[name]; ok {
		return b, nil
	}
	if IsReserved(name) {
		return BodyIdentity{}, &BodyUnavailableError{Name: name}
	}
	return BodyIdentity{}, &UnknownBodyError{Name: name}
}

// Lookup resolves user input: surrounding space and letter case are ignored.
func Lookup(input string) (BodyIdentity, error) {
	if name, ok := canonicalNames[strings.ToLower(strings.TrimSpace(input))]; ok {
		return Resolve(name)
	}
	return Resolve(input)
}

// IsReserved reports whether name is a recognised but unsupported body.
func IsReserved(name string) bool {
	for _, r := range Reserved {
		if r == name {
			return true
		}
	}
	return false
}

// ListSupported returns the resolvable display names in registry order.
func ListSupported() []string {
	names := make([]string, len(Bodies))
	for i, b := range Bodies {
		names[i] = b.DisplayName
	}
	return names
}
