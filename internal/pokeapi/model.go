package pokeapi

// Types lists a species' type tags in slot order (slot 1 first).
type Types struct {
	Name  string   `json:"name"`
	Types []string `json:"types"`
}

// Primary returns the slot-1 type, or "" when the species has none.
func (t Types) Primary() string {
	if len(t.Types) == 0 {
		return ""
	}
	return t.Types[0]
}

// Stats maps base stat names (hp, attack, ...) to their values.
type Stats struct {
	Name  string         `json:"name"`
	Stats map[string]int `json:"stats"`
}

// Abilities lists a species' ability names.
type Abilities struct {
	Name      string   `json:"name"`
	Abilities []string `json:"abilities"`
}

// PokedexEntry is the English flavor text of a species for one game version.
type PokedexEntry struct {
	Name        string `json:"name"`
	GameVersion string `json:"gameVersion"`
	Text        string `json:"text"`
}

// Sprite is the default front sprite of a species.
type Sprite struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type namedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// pokemonPayload is the subset of GET /pokemon/{name} this client reads.
type pokemonPayload struct {
	Name  string `json:"name"`
	Types []struct {
		Slot int           `json:"slot"`
		Type namedResource `json:"type"`
	} `json:"types"`
	Stats []struct {
		BaseStat int           `json:"base_stat"`
		Stat     namedResource `json:"stat"`
	} `json:"stats"`
	Abilities []struct {
		Ability namedResource `json:"ability"`
	} `json:"abilities"`
	Species namedResource `json:"species"`
	Sprites struct {
		FrontDefault *string `json:"front_default"`
	} `json:"sprites"`
}

// speciesPayload is the subset of GET /pokemon-species/{id} this client reads.
type speciesPayload struct {
	FlavorTextEntries []struct {
		FlavorText string        `json:"flavor_text"`
		Language   namedResource `json:"language"`
		Version    namedResource `json:"version"`
	} `json:"flavor_text_entries"`
	EvolutionChain struct {
		URL string `json:"url"`
	} `json:"evolution_chain"`
}
