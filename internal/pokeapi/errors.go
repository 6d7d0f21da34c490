package pokeapi

import "errors"

// Sentinel errors returned by Client.
var (
	// ErrInvalidName is returned when a species name or game version is blank.
	ErrInvalidName = errors.New("name must not be empty")
	// ErrNotFound is returned when the API has no such species or sprite.
	ErrNotFound = errors.New("pokemon not found")
	// ErrEntryNotFound is returned when no English pokedex entry exists for a game version.
	ErrEntryNotFound = errors.New("pokedex entry not found")
	// ErrUpstream is returned for any other failed request or unusable payload.
	ErrUpstream = errors.New("pokemon API request failed")
)
