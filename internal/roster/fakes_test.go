package roster_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/pokeagent/pokeagent/internal/evolution"
	"github.com/pokeagent/pokeagent/internal/pokeapi"
	"github.com/pokeagent/pokeagent/internal/store"
)

var errDatabaseDown = errors.New("connection refused")

// memoryRepo is an in-memory store.Repository. Setting failOn to a method
// name makes that method return errDatabaseDown.
type memoryRepo struct {
	mu       sync.Mutex
	trainers []store.Trainer
	members  []store.TeamMember
	clock    time.Time
	failOn   map[string]bool
	calls    []string
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{
		clock:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		failOn: map[string]bool{},
	}
}

func (r *memoryRepo) enter(op string) error {
	r.calls = append(r.calls, op)
	if r.failOn[op] {
		return errDatabaseDown
	}
	return nil
}

func (r *memoryRepo) tick() time.Time {
	r.clock = r.clock.Add(time.Second)
	return r.clock
}

// mutations returns the write calls recorded so far.
func (r *memoryRepo) mutations() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, c := range r.calls {
		if strings.HasPrefix(c, "Insert") || strings.HasPrefix(c, "Delete") || strings.HasPrefix(c, "Update") {
			out = append(out, c)
		}
	}
	return out
}

func (r *memoryRepo) InsertTrainer(_ context.Context, name string) (*store.Trainer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter("InsertTrainer"); err != nil {
		return nil, err
	}
	t := store.Trainer{ID: uuid.New(), Name: name, CreatedAt: r.tick()}
	r.trainers = append(r.trainers, t)
	return &t, nil
}

func (r *memoryRepo) InsertTeamMember(_ context.Context, trainerID uuid.UUID, species store.Species) (*store.TeamMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter("InsertTeamMember"); err != nil {
		return nil, err
	}
	if r.findTrainer(trainerID) == nil {
		return nil, fmt.Errorf("foreign key violation on trainer %s", trainerID)
	}
	m := store.TeamMember{
		ID:            uuid.New(),
		TrainerID:     trainerID,
		Name:          species.Name,
		PrimaryType:   species.PrimaryType,
		SecondaryType: species.SecondaryType,
		AddedAt:       r.tick(),
	}
	r.members = append(r.members, m)
	return &m, nil
}

func (r *memoryRepo) findTrainer(id uuid.UUID) *store.Trainer {
	for i := range r.trainers {
		if r.trainers[i].ID == id {
			return &r.trainers[i]
		}
	}
	return nil
}

func (r *memoryRepo) FindTrainerByID(_ context.Context, id uuid.UUID) (*store.Trainer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter("FindTrainerByID"); err != nil {
		return nil, err
	}
	t := r.findTrainer(id)
	if t == nil {
		return nil, store.ErrTrainerNotFound
	}
	found := *t
	return &found, nil
}

func (r *memoryRepo) FindTrainersByName(_ context.Context, name string) ([]store.TrainerRef, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter("FindTrainersByName"); err != nil {
		return nil, err
	}
	refs := []store.TrainerRef{}
	for _, t := range r.trainers {
		if strings.EqualFold(t.Name, name) {
			refs = append(refs, store.TrainerRef{ID: t.ID, Name: t.Name})
		}
	}
	return refs, nil
}

func (r *memoryRepo) CountTeamMembers(_ context.Context, trainerID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter("CountTeamMembers"); err != nil {
		return 0, err
	}
	return len(r.team(trainerID)), nil
}

func (r *memoryRepo) team(trainerID uuid.UUID) []store.TeamMember {
	out := []store.TeamMember{}
	for _, m := range r.members {
		if m.TrainerID == trainerID {
			out = append(out, m)
		}
	}
	return out
}

func (r *memoryRepo) ListTeamMembers(_ context.Context, trainerID uuid.UUID) ([]store.TeamMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter("ListTeamMembers"); err != nil {
		return nil, err
	}
	team := r.team(trainerID)
	sort.SliceStable(team, func(i, j int) bool { return team[i].AddedAt.Before(team[j].AddedAt) })
	return team, nil
}

// oldest returns the index of the oldest member of the trainer matching name.
func (r *memoryRepo) oldest(trainerID uuid.UUID, name string) int {
	idx := -1
	for i, m := range r.members {
		if m.TrainerID != trainerID || !strings.EqualFold(m.Name, name) {
			continue
		}
		if idx == -1 || m.AddedAt.Before(r.members[idx].AddedAt) {
			idx = i
		}
	}
	return idx
}

func (r *memoryRepo) DeleteTeamMemberByName(_ context.Context, trainerID uuid.UUID, name string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter("DeleteTeamMemberByName"); err != nil {
		return 0, err
	}
	idx := r.oldest(trainerID, name)
	if idx == -1 {
		return 0, nil
	}
	r.members = append(r.members[:idx], r.members[idx+1:]...)
	return 1, nil
}

func (r *memoryRepo) DeleteAllTeamMembers(_ context.Context, trainerID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter("DeleteAllTeamMembers"); err != nil {
		return 0, err
	}
	var kept []store.TeamMember
	var removed int64
	for _, m := range r.members {
		if m.TrainerID == trainerID {
			removed++
			continue
		}
		kept = append(kept, m)
	}
	r.members = kept
	return removed, nil
}

func (r *memoryRepo) DeleteTrainerByID(_ context.Context, id uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter("DeleteTrainerByID"); err != nil {
		return 0, err
	}
	for i, t := range r.trainers {
		if t.ID == id {
			if len(r.team(id)) > 0 {
				return 0, fmt.Errorf("foreign key violation: trainer %s still has members", id)
			}
			r.trainers = append(r.trainers[:i], r.trainers[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *memoryRepo) UpdateTeamMemberEvolution(_ context.Context, trainerID uuid.UUID, oldName string, evolved store.Species) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter("UpdateTeamMemberEvolution"); err != nil {
		return 0, err
	}
	idx := r.oldest(trainerID, oldName)
	if idx == -1 {
		return 0, nil
	}
	r.members[idx].Name = evolved.Name
	r.members[idx].PrimaryType = evolved.PrimaryType
	r.members[idx].SecondaryType = evolved.SecondaryType
	return 1, nil
}

func (r *memoryRepo) ListAllTrainers(_ context.Context) ([]store.TrainerRef, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.enter("ListAllTrainers"); err != nil {
		return nil, err
	}
	refs := []store.TrainerRef{}
	for _, t := range r.trainers {
		refs = append(refs, store.TrainerRef{ID: t.ID, Name: t.Name})
	}
	sort.SliceStable(refs, func(i, j int) bool { return refs[i].Name < refs[j].Name })
	return refs, nil
}

// fakeSpecies serves a handful of species and evolution chains.
type fakeSpecies struct {
	types    map[string][]string
	chains   map[string]*evolution.Tree
	down     bool
	requests atomic.Int32
}

func newFakeSpecies() *fakeSpecies {
	pichu := &evolution.Tree{Name: "pichu", Children: []*evolution.Tree{
		{Name: "pikachu", Children: []*evolution.Tree{{Name: "raichu"}}},
	}}
	charmander := &evolution.Tree{Name: "charmander", Children: []*evolution.Tree{
		{Name: "charmeleon", Children: []*evolution.Tree{{Name: "charizard"}}},
	}}
	bulbasaur := &evolution.Tree{Name: "bulbasaur", Children: []*evolution.Tree{
		{Name: "ivysaur", Children: []*evolution.Tree{{Name: "venusaur"}}},
	}}
	eevee := &evolution.Tree{Name: "eevee", Children: []*evolution.Tree{
		{Name: "vaporeon"}, {Name: "jolteon"}, {Name: "flareon"},
	}}

	return &fakeSpecies{
		types: map[string][]string{
			"pichu":      {"electric"},
			"pikachu":    {"electric"},
			"raichu":     {"electric"},
			"charmander": {"fire"},
			"charmeleon": {"fire"},
			"charizard":  {"fire", "flying"},
			"bulbasaur":  {"grass", "poison"},
			"ivysaur":    {"grass", "poison"},
			"venusaur":   {"grass", "poison"},
			"eevee":      {"normal"},
			"vaporeon":   {"water"},
			"jolteon":    {"electric"},
			"flareon":    {"fire"},
			"onix":       {"rock", "ground"},
			"squirtle":   {"water"},
		},
		chains: map[string]*evolution.Tree{
			"pichu": pichu, "pikachu": pichu, "raichu": pichu,
			"charmander": charmander, "charmeleon": charmander, "charizard": charmander,
			"bulbasaur": bulbasaur, "ivysaur": bulbasaur, "venusaur": bulbasaur,
			"eevee": eevee, "vaporeon": eevee, "jolteon": eevee, "flareon": eevee,
		},
	}
}

func (f *fakeSpecies) FetchTypes(_ context.Context, name string) (*pokeapi.Types, error) {
	f.requests.Add(1)
	if f.down {
		return nil, fmt.Errorf("%w: GET returned 503", pokeapi.ErrUpstream)
	}
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return nil, pokeapi.ErrInvalidName
	}
	types, ok := f.types[n]
	if !ok {
		return nil, fmt.Errorf("%w: %q", pokeapi.ErrNotFound, n)
	}
	return &pokeapi.Types{Name: n, Types: types}, nil
}

func (f *fakeSpecies) FetchEvolutionChain(_ context.Context, name string) (*evolution.Tree, error) {
	f.requests.Add(1)
	if f.down {
		return nil, fmt.Errorf("%w: GET returned 503", pokeapi.ErrUpstream)
	}
	tree, ok := f.chains[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", pokeapi.ErrNotFound, name)
	}
	return tree, nil
}

// codeConfirmer accepts exactly one code.
type codeConfirmer string

func (c codeConfirmer) Verify(code string) bool {
	return c != "" && string(c) == code
}
