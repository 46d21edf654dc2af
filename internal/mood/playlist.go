package mood

import "slices"

// PlaylistKey identifies the playlist that accompanies a mood
type PlaylistKey string

const (
	PlaylistChill PlaylistKey = "chill"
	PlaylistPaced PlaylistKey = "paced"
	PlaylistPanic PlaylistKey = "panic"
)

// PlaylistKeys lists every key in mood order
var PlaylistKeys = []PlaylistKey{PlaylistChill, PlaylistPaced, PlaylistPanic}

// PlaylistKeyFor returns the playlist for a category. Values outside the
// enumeration get PlaylistChill.
func PlaylistKeyFor(c Category) PlaylistKey {
	switch c {
	case Calm:
		return PlaylistChill
	case Focused:
		return PlaylistPaced
	case Urgent:
		return PlaylistPanic
	default:
		return PlaylistChill
	}
}

// PlaylistKeyForName maps a category name, as received from a query parameter
// or command argument, to its playlist. Unknown names get PlaylistChill.
func PlaylistKeyForName(name string) PlaylistKey {
	c, ok := ParseCategory(name)
	if !ok {
		return PlaylistChill
	}
	return PlaylistKeyFor(c)
}

// IsValid reports whether k is one of the known keys
func (k PlaylistKey) IsValid() bool {
	return slices.Contains(PlaylistKeys, k)
}
