package pokeapi

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pokeagent/pokeagent/internal/evolution"
)

var flavorTextCleaner = strings.NewReplacer("\n", " ", "\f", " ", "\r", " ")

// pokemon normalizes name and loads its /pokemon resource, naming the species
// in not-found errors.
func (c *Client) pokemon(ctx context.Context, name string) (*pokemonPayload, error) {
	n, err := normalize(name)
	if err != nil {
		return nil, err
	}
	p, err := c.fetchPokemon(ctx, n)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, n)
		}
		return nil, err
	}
	return p, nil
}

// FetchTypes returns the species' types in slot order.
func (c *Client) FetchTypes(ctx context.Context, name string) (*Types, error) {
	p, err := c.pokemon(ctx, name)
	if err != nil {
		return nil, err
	}
	types := make([]string, 0, len(p.Types))
	for _, t := range p.Types {
		types = append(types, t.Type.Name)
	}
	return &Types{Name: p.Name, Types: types}, nil
}

// FetchStats returns the species' base stats keyed by stat name.
func (c *Client) FetchStats(ctx context.Context, name string) (*Stats, error) {
	p, err := c.pokemon(ctx, name)
	if err != nil {
		return nil, err
	}
	stats := make(map[string]int, len(p.Stats))
	for _, s := range p.Stats {
		stats[s.Stat.Name] = s.BaseStat
	}
	return &Stats{Name: p.Name, Stats: stats}, nil
}

// FetchAbilities returns the species' ability names in API order.
func (c *Client) FetchAbilities(ctx context.Context, name string) (*Abilities, error) {
	p, err := c.pokemon(ctx, name)
	if err != nil {
		return nil, err
	}
	abilities := make([]string, 0, len(p.Abilities))
	for _, a := range p.Abilities {
		abilities = append(abilities, a.Ability.Name)
	}
	return &Abilities{Name: p.Name, Abilities: abilities}, nil
}

// FetchPokedexEntry returns the first English flavor text recorded for
// gameVersion (matched case-insensitively).
func (c *Client) FetchPokedexEntry(ctx context.Context, name, gameVersion string) (*PokedexEntry, error) {
	game := strings.ToLower(strings.TrimSpace(gameVersion))
	if game == "" {
		return nil, fmt.Errorf("%w: game version", ErrInvalidName)
	}

	p, err := c.pokemon(ctx, name)
	if err != nil {
		return nil, err
	}
	species, err := c.fetchSpecies(ctx, p)
	if err != nil {
		return nil, err
	}

	for _, entry := range species.FlavorTextEntries {
		if entry.Language.Name == "en" && strings.EqualFold(entry.Version.Name, game) {
			return &PokedexEntry{
				Name:        p.Name,
				GameVersion: game,
				Text:        flavorTextCleaner.Replace(entry.FlavorText),
			}, nil
		}
	}
	return nil, fmt.Errorf("%w: %q in %q", ErrEntryNotFound, p.Name, game)
}

// FetchSpriteURL returns the default front sprite of the species.
func (c *Client) FetchSpriteURL(ctx context.Context, name string) (*Sprite, error) {
	p, err := c.pokemon(ctx, name)
	if err != nil {
		return nil, err
	}
	if p.Sprites.FrontDefault == nil || *p.Sprites.FrontDefault == "" {
		return nil, fmt.Errorf("%w: no sprite for %q", ErrNotFound, p.Name)
	}
	return &Sprite{Name: p.Name, URL: *p.Sprites.FrontDefault}, nil
}

// FetchEvolutionChain returns the full evolution tree the species belongs to,
// rooted at the base form of the chain.
func (c *Client) FetchEvolutionChain(ctx context.Context, name string) (*evolution.Tree, error) {
	p, err := c.pokemon(ctx, name)
	if err != nil {
		return nil, err
	}
	species, err := c.fetchSpecies(ctx, p)
	if err != nil {
		return nil, err
	}
	if species.EvolutionChain.URL == "" {
		return nil, fmt.Errorf("%w: no evolution chain for %q", ErrUpstream, p.Name)
	}

	var chain struct {
		Chain *evolution.ChainLink `json:"chain"`
	}
	if err := c.getJSON(ctx, species.EvolutionChain.URL, &chain); err != nil {
		return nil, err
	}
	if chain.Chain == nil {
		return nil, fmt.Errorf("%w: empty evolution chain for %q", ErrUpstream, p.Name)
	}

	tree := evolution.FromChain(*chain.Chain)
	if tree == nil {
		return nil, fmt.Errorf("%w: empty evolution chain for %q", ErrUpstream, p.Name)
	}
	return tree, nil
}
