package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/pokeagent/pokeagent/internal/evolution"
	"github.com/pokeagent/pokeagent/internal/pokeapi"
	"github.com/pokeagent/pokeagent/internal/store"
)

// Pokedex is the read-only species data source behind the trivia tools.
type Pokedex interface {
	FetchTypes(ctx context.Context, name string) (*pokeapi.Types, error)
	FetchStats(ctx context.Context, name string) (*pokeapi.Stats, error)
	FetchAbilities(ctx context.Context, name string) (*pokeapi.Abilities, error)
	FetchPokedexEntry(ctx context.Context, name, gameVersion string) (*pokeapi.PokedexEntry, error)
	FetchSpriteURL(ctx context.Context, name string) (*pokeapi.Sprite, error)
	FetchEvolutionChain(ctx context.Context, name string) (*evolution.Tree, error)
}

type speciesArgs struct {
	Name string `json:"name" jsonschema_description:"Species name, for example pikachu." validate:"notblank"`
}

type pokedexEntryArgs struct {
	Name        string `json:"name" jsonschema_description:"Species name, for example pikachu." validate:"notblank"`
	GameVersion string `json:"game_version" jsonschema_description:"Game version the entry comes from, for example red or sword." validate:"notblank"`
}

// EvolutionChain is the data returned by get_pokemon_evolution.
type EvolutionChain struct {
	Name   string          `json:"name"`
	Chain  *evolution.Tree `json:"chain"`
	Stages []string        `json:"stages"`
}

// statOrder is the order stats are listed in games.
var statOrder = []string{"hp", "attack", "defense", "special-attack", "special-defense", "speed"}

// RegisterPokedex registers the species trivia tools.
func RegisterPokedex(r *Registry, dex Pokedex) error {
	if err := Add(r, "get_pokemon_types",
		"Get the types of a Pokémon species.",
		func(ctx context.Context, a speciesArgs) (Result, error) {
			t, err := dex.FetchTypes(ctx, a.Name)
			if err != nil {
				return Result{}, err
			}
			return Result{
				Content: fmt.Sprintf("%s types: %s.", store.DisplayName(t.Name), strings.Join(t.Types, " / ")),
				Data:    t,
			}, nil
		}); err != nil {
		return err
	}

	if err := Add(r, "get_pokemon_stats",
		"Get the base stats of a Pokémon species.",
		func(ctx context.Context, a speciesArgs) (Result, error) {
			s, err := dex.FetchStats(ctx, a.Name)
			if err != nil {
				return Result{}, err
			}
			parts := make([]string, 0, len(s.Stats))
			for _, name := range sortedStats(s.Stats) {
				parts = append(parts, fmt.Sprintf("%s %d", name, s.Stats[name]))
			}
			return Result{
				Content: fmt.Sprintf("Base stats of %s: %s.", store.DisplayName(s.Name), strings.Join(parts, ", ")),
				Data:    s,
			}, nil
		}); err != nil {
		return err
	}

	if err := Add(r, "get_pokemon_abilities",
		"Get the abilities of a Pokémon species.",
		func(ctx context.Context, a speciesArgs) (Result, error) {
			ab, err := dex.FetchAbilities(ctx, a.Name)
			if err != nil {
				return Result{}, err
			}
			return Result{
				Content: fmt.Sprintf("%s abilities: %s.", store.DisplayName(ab.Name), strings.Join(ab.Abilities, ", ")),
				Data:    ab,
			}, nil
		}); err != nil {
		return err
	}

	if err := Add(r, "get_pokemon_pokedex_entry",
		"Get the English Pokédex entry of a Pokémon species for one game version.",
		func(ctx context.Context, a pokedexEntryArgs) (Result, error) {
			e, err := dex.FetchPokedexEntry(ctx, a.Name, a.GameVersion)
			if err != nil {
				return Result{}, err
			}
			return Result{
				Content: fmt.Sprintf("Pokédex entry for %s (%s): %s", store.DisplayName(e.Name), e.GameVersion, e.Text),
				Data:    e,
			}, nil
		}); err != nil {
		return err
	}

	if err := Add(r, "get_pokemon_sprite_url",
		"Get the URL of the default front sprite of a Pokémon species.",
		func(ctx context.Context, a speciesArgs) (Result, error) {
			s, err := dex.FetchSpriteURL(ctx, a.Name)
			if err != nil {
				return Result{}, err
			}
			return Result{
				Content: fmt.Sprintf("Sprite of %s: %s", store.DisplayName(s.Name), s.URL),
				Data:    s,
			}, nil
		}); err != nil {
		return err
	}

	return Add(r, "get_pokemon_evolution",
		"Get the full evolution chain a Pokémon species belongs to, starting from its base form.",
		func(ctx context.Context, a speciesArgs) (Result, error) {
			tree, err := dex.FetchEvolutionChain(ctx, a.Name)
			if err != nil {
				return Result{}, err
			}
			name := strings.ToLower(strings.TrimSpace(a.Name))
			return Result{
				Content: fmt.Sprintf("Evolution chain of %s:\n%s", store.DisplayName(name), tree.String()),
				Data:    EvolutionChain{Name: name, Chain: tree, Stages: tree.Names()},
			}, nil
		})
}

func sortedStats(stats map[string]int) []string {
	rank := make(map[string]int, len(statOrder))
	for i, name := range statOrder {
		rank[name] = i
	}
	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ri, iok := rank[names[i]]
		rj, jok := rank[names[j]]
		switch {
		case iok && jok:
			return ri < rj
		case iok != jok:
			return iok
		default:
			return names[i] < names[j]
		}
	})
	return names
}
