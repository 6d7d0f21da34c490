package roster

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned for empty or malformed identifiers and names.
	ErrInvalidInput = errors.New("invalid input")

	// ErrTrainerNotFound is returned when a trainer id does not resolve.
	ErrTrainerNotFound = errors.New("trainer not found")

	// ErrMemberNotFound is returned when no team member matches a trainer and species name.
	ErrMemberNotFound = errors.New("team member not found")

	// ErrSpeciesNotFound is returned when the species data source does not know a name.
	ErrSpeciesNotFound = errors.New("species not found")

	// ErrCapacityExceeded is returned when a change would push a team past MaxTeamSize.
	ErrCapacityExceeded = errors.New("team capacity exceeded")

	// ErrInvalidEvolution is returned when the target is not a direct evolution of the current species.
	ErrInvalidEvolution = errors.New("invalid evolution")

	// ErrUnauthorized is returned when a destructive operation is not confirmed.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrUpstream is returned when the species data source fails.
	ErrUpstream = errors.New("species data source error")

	// ErrStore is returned when the roster store fails.
	ErrStore = errors.New("roster store error")
)

func storeError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStore, op, err)
}
