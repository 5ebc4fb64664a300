package otodata

import "errors"

// Decode errors. Use errors.Is() to check for these in calling code.
var (
	// ErrMalformedLevel is returned when a local name carries the "level:"
	// token but no parsable number follows it. This is distinct from a
	// silent non-match: the advertisement was recognisably a level
	// broadcast, but its value could not be extracted.
	ErrMalformedLevel = errors.New("otodata: level token without parsable number")
)
