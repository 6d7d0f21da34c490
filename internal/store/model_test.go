package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokeagent/pokeagent/internal/store"
)

func TestNewSpecies(t *testing.T) {
	tests := []struct {
		name          string
		species       string
		types         []string
		wantName      string
		wantPrimary   string
		wantSecondary string
	}{
		{"dual type", "Bulbasaur", []string{"grass", "poison"}, "bulbasaur", "grass", "poison"},
		{"single type", " pikachu ", []string{"electric"}, "pikachu", "electric", ""},
		{"no types", "missingno", nil, "missingno", "", ""},
		{"extra types ignored", "oddity", []string{"a", "b", "c"}, "oddity", "a", "b"},
		{"no secondary without primary", "blank", []string{"", "poison"}, "blank", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := store.NewSpecies(tt.species, tt.types)
			assert.Equal(t, tt.wantName, s.Name)

			if tt.wantPrimary == "" {
				assert.Nil(t, s.PrimaryType)
			} else {
				require.NotNil(t, s.PrimaryType)
				assert.Equal(t, tt.wantPrimary, *s.PrimaryType)
			}
			if tt.wantSecondary == "" {
				assert.Nil(t, s.SecondaryType)
			} else {
				require.NotNil(t, s.SecondaryType)
				assert.Equal(t, tt.wantSecondary, *s.SecondaryType)
			}
		})
	}
}

func TestTeamMember_Display(t *testing.T) {
	s := store.NewSpecies("bulbasaur", []string{"grass", "poison"})
	m := store.TeamMember{Name: s.Name, PrimaryType: s.PrimaryType, SecondaryType: s.SecondaryType}

	assert.Equal(t, "Bulbasaur", m.DisplayName())
	assert.Equal(t, "grass / poison", m.TypeLabel())
	assert.Equal(t, "", store.DisplayName(""))
}
