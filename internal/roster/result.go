package roster

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pokeagent/pokeagent/internal/store"
)

// AddTrainerResult describes a newly created trainer. Skipped lists the
// requested species that could not be resolved.
type AddTrainerResult struct {
	TrainerID uuid.UUID `json:"trainerId"`
	Name      string    `json:"name"`
	Added     []string  `json:"added"`
	Skipped   []string  `json:"skipped"`
}

func (r *AddTrainerResult) Message() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Trainer %s created with ID %s.", r.Name, r.TrainerID)
	if len(r.Added) > 0 {
		fmt.Fprintf(&b, " Team: %s.", joinDisplay(r.Added))
	}
	if len(r.Skipped) > 0 {
		fmt.Fprintf(&b, " Skipped unknown species: %s.", strings.Join(r.Skipped, ", "))
	}
	return b.String()
}

// AddPokemonResult describes members appended to an existing team.
type AddPokemonResult struct {
	TrainerID uuid.UUID `json:"trainerId"`
	Added     []string  `json:"added"`
	Skipped   []string  `json:"skipped"`
	TeamSize  int       `json:"teamSize"`
}

func (r *AddPokemonResult) Message() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Added %s to trainer %s (team size %d/%d).",
		joinDisplay(r.Added), r.TrainerID, r.TeamSize, store.MaxTeamSize)
	if len(r.Skipped) > 0 {
		fmt.Fprintf(&b, " Skipped unknown species: %s.", strings.Join(r.Skipped, ", "))
	}
	return b.String()
}

// RemovePokemonResult reports whether a member was removed. A missing member
// is an outcome, not an error.
type RemovePokemonResult struct {
	TrainerID uuid.UUID `json:"trainerId"`
	Name      string    `json:"name"`
	Removed   bool      `json:"removed"`
}

func (r *RemovePokemonResult) Message() string {
	if !r.Removed {
		return fmt.Sprintf("No %s found on the team of trainer %s.", store.DisplayName(r.Name), r.TrainerID)
	}
	return fmt.Sprintf("%s removed from the team of trainer %s.", store.DisplayName(r.Name), r.TrainerID)
}

// EvolveResult describes an in-place evolution.
type EvolveResult struct {
	TrainerID uuid.UUID `json:"trainerId"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Types     []string  `json:"types"`
}

func (r *EvolveResult) Message() string {
	return fmt.Sprintf("%s evolved into %s (Types: %s).",
		store.DisplayName(r.From), store.DisplayName(r.To), strings.Join(r.Types, " / "))
}

// DeleteTrainerResult reports what a confirmed delete removed.
type DeleteTrainerResult struct {
	TrainerID      uuid.UUID `json:"trainerId"`
	Deleted        bool      `json:"deleted"`
	MembersRemoved int64     `json:"membersRemoved"`
}

func (r *DeleteTrainerResult) Message() string {
	if !r.Deleted {
		return fmt.Sprintf("No trainer with ID %s exists; nothing was deleted.", r.TrainerID)
	}
	return fmt.Sprintf("Trainer %s deleted along with %d team member(s).", r.TrainerID, r.MembersRemoved)
}

// TrainerList is every registered trainer ordered by name.
type TrainerList struct {
	Trainers []store.TrainerRef `json:"trainers"`
}

func (r *TrainerList) Message() string {
	if len(r.Trainers) == 0 {
		return "No trainers registered."
	}
	var b strings.Builder
	b.WriteString("Registered trainers:")
	for _, t := range r.Trainers {
		fmt.Fprintf(&b, "\n- %s (ID: %s)", t.Name, t.ID)
	}
	return b.String()
}

// TeamView is a trainer's team, oldest member first.
type TeamView struct {
	Trainer store.TrainerRef   `json:"trainer"`
	Members []store.TeamMember `json:"members"`
}

func (r *TeamView) Message() string {
	if len(r.Members) == 0 {
		return fmt.Sprintf("%s (ID: %s) has no Pokémon on their team yet.", r.Trainer.Name, r.Trainer.ID)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Team of %s (ID: %s):", r.Trainer.Name, r.Trainer.ID)
	for i, m := range r.Members {
		fmt.Fprintf(&b, "\n  %d. %s (Types: %s)", i+1, m.DisplayName(), m.TypeLabel())
	}
	return b.String()
}

func joinDisplay(names []string) string {
	if len(names) == 0 {
		return "nothing"
	}
	display := make([]string, len(names))
	for i, n := range names {
		display[i] = store.DisplayName(n)
	}
	return strings.Join(display, ", ")
}
