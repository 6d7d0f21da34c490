package roster

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pokeagent/pokeagent/internal/store"
)

// MatchStatus classifies the outcome of a trainer name search.
type MatchStatus int

const (
	MatchNone MatchStatus = iota
	MatchUnique
	MatchAmbiguous
)

// String returns the wire name of the status.
func (s MatchStatus) String() string {
	switch s {
	case MatchUnique:
		return "unique"
	case MatchAmbiguous:
		return "ambiguous"
	default:
		return "not_found"
	}
}

// MarshalJSON encodes the status as its wire name.
func (s MatchStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// LookupResult is the three-way outcome of FindByName. Trainer is set only for
// MatchUnique; Candidates is set only for MatchAmbiguous and is never narrowed
// to a single entry.
type LookupResult struct {
	Query      string             `json:"query"`
	Status     MatchStatus        `json:"status"`
	Trainer    *store.TrainerRef  `json:"trainer,omitempty"`
	Candidates []store.TrainerRef `json:"candidates,omitempty"`
}

// Message renders the outcome for the agent.
func (r *LookupResult) Message() string {
	switch r.Status {
	case MatchUnique:
		return fmt.Sprintf("Found trainer %s (ID: %s).", r.Trainer.Name, r.Trainer.ID)
	case MatchAmbiguous:
		var b strings.Builder
		fmt.Fprintf(&b, "Found %d trainers named %q. Ask which one is meant and use its ID:", len(r.Candidates), r.Query)
		for _, c := range r.Candidates {
			fmt.Fprintf(&b, "\n- %s (ID: %s)", c.Name, c.ID)
		}
		return b.String()
	default:
		return fmt.Sprintf("No trainer named %q was found.", r.Query)
	}
}

// Lookup resolves trainers by display name.
type Lookup struct {
	repo store.Repository
}

// NewLookup creates a new Lookup.
func NewLookup(repo store.Repository) *Lookup {
	return &Lookup{repo: repo}
}

// FindByName searches trainers by case-insensitive name equality.
func (l *Lookup) FindByName(ctx context.Context, name string) (*LookupResult, error) {
	query := strings.TrimSpace(name)
	if query == "" {
		return nil, fmt.Errorf("%w: trainer name is required", ErrInvalidInput)
	}

	refs, err := l.repo.FindTrainersByName(ctx, query)
	if err != nil {
		return nil, storeError("searching trainers", err)
	}

	result := &LookupResult{Query: query}
	switch len(refs) {
	case 0:
		result.Status = MatchNone
	case 1:
		result.Status = MatchUnique
		result.Trainer = &refs[0]
	default:
		result.Status = MatchAmbiguous
		result.Candidates = refs
	}
	return result, nil
}
