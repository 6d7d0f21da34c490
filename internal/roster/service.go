// Package roster implements the trainer and team operations exposed to the
// agent. It validates input, consults the species data source and mutates the
// roster store, enforcing team capacity and evolution legality.
package roster

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pokeagent/pokeagent/internal/evolution"
	"github.com/pokeagent/pokeagent/internal/pokeapi"
	"github.com/pokeagent/pokeagent/internal/store"
)

// MaxTrainerNameLength bounds a trainer's display name, in characters.
const MaxTrainerNameLength = 255

// resolveConcurrency bounds parallel species lookups for one request.
const resolveConcurrency = 4

// SpeciesSource is the subset of the species data client the roster needs.
type SpeciesSource interface {
	FetchTypes(ctx context.Context, name string) (*pokeapi.Types, error)
	FetchEvolutionChain(ctx context.Context, name string) (*evolution.Tree, error)
}

// Confirmer verifies the confirmation code of destructive operations.
type Confirmer interface {
	Verify(code string) bool
}

// Service provides the roster operations.
//
// Multi-step mutations run as sequential single statements. A failure partway
// through is reported but already-applied steps are not rolled back. The team
// capacity check counts then inserts, so two concurrent writers to the same
// trainer can exceed MaxTeamSize.
type Service struct {
	repo      store.Repository
	species   SpeciesSource
	confirmer Confirmer
	lookup    *Lookup
}

// NewService creates a new roster Service.
func NewService(repo store.Repository, species SpeciesSource, confirmer Confirmer) *Service {
	return &Service{
		repo:      repo,
		species:   species,
		confirmer: confirmer,
		lookup:    NewLookup(repo),
	}
}

// AddTrainer creates a trainer with an optional initial team. Unknown species
// are skipped and reported; the trainer is created even when all are skipped.
func (s *Service) AddTrainer(ctx context.Context, name string, team []string) (*AddTrainerResult, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: trainer name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(name) > MaxTrainerNameLength {
		return nil, fmt.Errorf("%w: trainer name exceeds %d characters", ErrInvalidInput, MaxTrainerNameLength)
	}
	if len(team) > store.MaxTeamSize {
		return nil, fmt.Errorf("%w: initial team has %d species, at most %d allowed", ErrInvalidInput, len(team), store.MaxTeamSize)
	}

	res, err := s.resolveSpecies(ctx, team)
	if err != nil {
		return nil, err
	}

	trainer, err := s.repo.InsertTrainer(ctx, name)
	if err != nil {
		return nil, storeError("creating trainer", err)
	}

	result := &AddTrainerResult{
		TrainerID: trainer.ID,
		Name:      trainer.Name,
		Added:     []string{},
		Skipped:   res.invalid,
	}
	for _, sp := range res.valid {
		if _, err := s.repo.InsertTeamMember(ctx, trainer.ID, sp); err != nil {
			return result, storeError(fmt.Sprintf("trainer %s was created but adding %s failed", trainer.ID, sp.Name), err)
		}
		result.Added = append(result.Added, sp.Name)
	}

	slog.Info("trainer created", "trainer_id", trainer.ID, "added", len(result.Added), "skipped", len(result.Skipped))
	return result, nil
}

// AddPokemon appends species to an existing team. Either every resolved
// species is inserted or, when the team would exceed MaxTeamSize, none is.
func (s *Service) AddPokemon(ctx context.Context, trainerID string, names []string) (*AddPokemonResult, error) {
	id, err := parseTrainerID(trainerID)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: at least one species name is required", ErrInvalidInput)
	}

	if _, err := s.trainer(ctx, id); err != nil {
		return nil, err
	}

	res, err := s.resolveSpecies(ctx, names)
	if err != nil {
		return nil, err
	}
	if len(res.valid) == 0 {
		if len(res.invalid) == 0 {
			return nil, fmt.Errorf("%w: species names are blank", ErrInvalidInput)
		}
		return nil, fmt.Errorf("%w: %s", ErrSpeciesNotFound, strings.Join(res.invalid, ", "))
	}

	current, err := s.repo.CountTeamMembers(ctx, id)
	if err != nil {
		return nil, storeError("counting team members", err)
	}
	if current+len(res.valid) > store.MaxTeamSize {
		return nil, fmt.Errorf("%w: team has %d of %d members, cannot add %d",
			ErrCapacityExceeded, current, store.MaxTeamSize, len(res.valid))
	}

	result := &AddPokemonResult{TrainerID: id, Added: []string{}, Skipped: res.invalid, TeamSize: current}
	for _, sp := range res.valid {
		if _, err := s.repo.InsertTeamMember(ctx, id, sp); err != nil {
			return result, storeError(fmt.Sprintf("adding %s after %d of %d members", sp.Name, len(result.Added), len(res.valid)), err)
		}
		result.Added = append(result.Added, sp.Name)
		result.TeamSize++
	}
	return result, nil
}

// RemovePokemon removes the oldest team member with the given species name.
func (s *Service) RemovePokemon(ctx context.Context, trainerID, name string) (*RemovePokemonResult, error) {
	id, err := parseTrainerID(trainerID)
	if err != nil {
		return nil, err
	}
	species, err := speciesName(name)
	if err != nil {
		return nil, err
	}

	affected, err := s.repo.DeleteTeamMemberByName(ctx, id, species)
	if err != nil {
		return nil, storeError("removing team member", err)
	}
	return &RemovePokemonResult{TrainerID: id, Name: species, Removed: affected > 0}, nil
}

// EvolvePokemon replaces a team member's species with a direct evolution,
// keeping its id and position in the team.
func (s *Service) EvolvePokemon(ctx context.Context, trainerID, current, target string) (*EvolveResult, error) {
	id, err := parseTrainerID(trainerID)
	if err != nil {
		return nil, err
	}
	from, err := speciesName(current)
	if err != nil {
		return nil, err
	}
	to, err := speciesName(target)
	if err != nil {
		return nil, err
	}

	tree, err := s.species.FetchEvolutionChain(ctx, from)
	if err != nil {
		return nil, speciesError(from, err)
	}
	if !evolution.IsDirectEvolution(tree, from, to) {
		next := tree.NextStages(from)
		if len(next) == 0 {
			return nil, fmt.Errorf("%w: %s does not evolve into %s", ErrInvalidEvolution, from, to)
		}
		return nil, fmt.Errorf("%w: %s does not evolve into %s (possible: %s)",
			ErrInvalidEvolution, from, to, strings.Join(next, ", "))
	}

	types, err := s.species.FetchTypes(ctx, to)
	if err != nil {
		return nil, speciesError(to, err)
	}
	evolved := store.NewSpecies(types.Name, types.Types)

	affected, err := s.repo.UpdateTeamMemberEvolution(ctx, id, from, evolved)
	if err != nil {
		return nil, storeError("updating team member", err)
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: trainer %s has no %s", ErrMemberNotFound, id, from)
	}

	return &EvolveResult{TrainerID: id, From: from, To: evolved.Name, Types: types.Types}, nil
}

// DeleteTrainer removes a trainer and its whole team once the confirmation
// code is verified. The code is checked before anything else.
func (s *Service) DeleteTrainer(ctx context.Context, trainerID, confirmationCode string) (*DeleteTrainerResult, error) {
	if s.confirmer == nil || !s.confirmer.Verify(confirmationCode) {
		slog.Warn("trainer deletion rejected: confirmation failed")
		return nil, fmt.Errorf("%w: confirmation code rejected", ErrUnauthorized)
	}

	id, err := parseTrainerID(trainerID)
	if err != nil {
		return nil, err
	}

	removed, err := s.repo.DeleteAllTeamMembers(ctx, id)
	if err != nil {
		return nil, storeError("deleting team", err)
	}

	deleted, err := s.repo.DeleteTrainerByID(ctx, id)
	if err != nil {
		return nil, storeError(fmt.Sprintf("removed %d team members but deleting trainer %s failed", removed, id), err)
	}

	slog.Info("trainer deleted", "trainer_id", id, "existed", deleted > 0, "members_removed", removed)
	return &DeleteTrainerResult{TrainerID: id, Deleted: deleted > 0, MembersRemoved: removed}, nil
}

// ListTrainers returns every trainer ordered by name.
func (s *Service) ListTrainers(ctx context.Context) (*TrainerList, error) {
	refs, err := s.repo.ListAllTrainers(ctx)
	if err != nil {
		return nil, storeError("listing trainers", err)
	}
	if refs == nil {
		refs = []store.TrainerRef{}
	}
	return &TrainerList{Trainers: refs}, nil
}

// ListTeam returns the trainer's team, oldest member first.
func (s *Service) ListTeam(ctx context.Context, trainerID string) (*TeamView, error) {
	id, err := parseTrainerID(trainerID)
	if err != nil {
		return nil, err
	}

	trainer, err := s.trainer(ctx, id)
	if err != nil {
		return nil, err
	}

	members, err := s.repo.ListTeamMembers(ctx, id)
	if err != nil {
		return nil, storeError("listing team members", err)
	}
	if members == nil {
		members = []store.TeamMember{}
	}

	return &TeamView{
		Trainer: store.TrainerRef{ID: trainer.ID, Name: trainer.Name},
		Members: members,
	}, nil
}

// FindTrainerByName searches trainers by name. Ambiguous matches return
// every candidate and never pick one.
func (s *Service) FindTrainerByName(ctx context.Context, name string) (*LookupResult, error) {
	return s.lookup.FindByName(ctx, name)
}

func (s *Service) trainer(ctx context.Context, id uuid.UUID) (*store.Trainer, error) {
	t, err := s.repo.FindTrainerByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrTrainerNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrTrainerNotFound, id)
		}
		return nil, storeError("finding trainer", err)
	}
	return t, nil
}

type resolution struct {
	valid   []store.Species
	invalid []string
}

// resolveSpecies looks up every name concurrently, keeping input order.
// Unknown names are reported as invalid and blank names are dropped; any
// other failure aborts.
func (s *Service) resolveSpecies(ctx context.Context, names []string) (resolution, error) {
	resolved := make([]*store.Species, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(resolveConcurrency)
	for i, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		g.Go(func() error {
			types, err := s.species.FetchTypes(gctx, name)
			if err != nil {
				if errors.Is(err, pokeapi.ErrNotFound) || errors.Is(err, pokeapi.ErrInvalidName) {
					return nil
				}
				return fmt.Errorf("%w: resolving %q: %w", ErrUpstream, name, err)
			}
			sp := store.NewSpecies(types.Name, types.Types)
			resolved[i] = &sp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return resolution{}, err
	}

	res := resolution{valid: []store.Species{}, invalid: []string{}}
	for i, name := range names {
		if resolved[i] == nil {
			if n := strings.TrimSpace(name); n != "" {
				res.invalid = append(res.invalid, n)
			}
			continue
		}
		res.valid = append(res.valid, *resolved[i])
	}
	return res, nil
}

func parseTrainerID(raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, fmt.Errorf("%w: trainer id is required", ErrInvalidInput)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: trainer id %q is not a valid UUID", ErrInvalidInput, raw)
	}
	return id, nil
}

func speciesName(raw string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		return "", fmt.Errorf("%w: species name is required", ErrInvalidInput)
	}
	return name, nil
}

func speciesError(name string, err error) error {
	switch {
	case errors.Is(err, pokeapi.ErrNotFound):
		return fmt.Errorf("%w: %s", ErrSpeciesNotFound, name)
	case errors.Is(err, pokeapi.ErrInvalidName):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	default:
		return fmt.Errorf("%w: %w", ErrUpstream, err)
	}
}
