package store

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Trainer represents a row in the trainers table.
type Trainer struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// TrainerRef is the id/name projection returned by searches and listings.
type TrainerRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// TeamMember represents a row in the team_members table.
type TeamMember struct {
	ID            uuid.UUID `json:"id"`
	TrainerID     uuid.UUID `json:"trainerId"`
	Name          string    `json:"name"`
	PrimaryType   *string   `json:"primaryType,omitempty"`
	SecondaryType *string   `json:"secondaryType,omitempty"`
	AddedAt       time.Time `json:"addedAt"`
}

// DisplayName returns the species name with its first letter upper-cased.
func (m TeamMember) DisplayName() string {
	return DisplayName(m.Name)
}

// TypeLabel renders the member's types as "grass / poison".
func (m TeamMember) TypeLabel() string {
	switch {
	case m.PrimaryType == nil:
		return "unknown"
	case m.SecondaryType == nil:
		return *m.PrimaryType
	default:
		return *m.PrimaryType + " / " + *m.SecondaryType
	}
}

// Species is the species data written for a new or evolved team member.
// SecondaryType is never set without PrimaryType; build it with NewSpecies.
type Species struct {
	Name          string
	PrimaryType   *string
	SecondaryType *string
}

// NewSpecies builds a Species from an API type list in slot order. Extra
// types beyond the second are ignored.
func NewSpecies(name string, types []string) Species {
	s := Species{Name: strings.ToLower(strings.TrimSpace(name))}
	if len(types) > 0 && types[0] != "" {
		primary := types[0]
		s.PrimaryType = &primary
		if len(types) > 1 && types[1] != "" {
			secondary := types[1]
			s.SecondaryType = &secondary
		}
	}
	return s
}

// DisplayName upper-cases the first letter of a species name.
func DisplayName(name string) string {
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
