package evolution_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pokeagent/pokeagent/internal/evolution"
)

const bulbasaurChain = `{
  "species": {"name": "bulbasaur"},
  "evolves_to": [{
    "species": {"name": "ivysaur"},
    "evolves_to": [{"species": {"name": "venusaur"}, "evolves_to": []}]
  }]
}`

const eeveeChain = `{
  "species": {"name": "eevee"},
  "evolves_to": [
    {"species": {"name": "vaporeon"}, "evolves_to": []},
    {"species": {"name": "jolteon"}, "evolves_to": []},
    {"species": {"name": "flareon"}, "evolves_to": []}
  ]
}`

func parseChain(t *testing.T, raw string) *evolution.Tree {
	t.Helper()
	var link evolution.ChainLink
	require.NoError(t, json.Unmarshal([]byte(raw), &link))
	tree := evolution.FromChain(link)
	require.NotNil(t, tree)
	return tree
}

func TestFromChain_BuildsNestedTree(t *testing.T) {
	tree := parseChain(t, bulbasaurChain)

	assert.Equal(t, "bulbasaur", tree.Name)
	require.Len(t, tree.Children, 1)
	assert.Equal(t, "ivysaur", tree.Children[0].Name)
	require.Len(t, tree.Children[0].Children, 1)
	assert.Equal(t, "venusaur", tree.Children[0].Children[0].Name)
	assert.Empty(t, tree.Children[0].Children[0].Children)
}

func TestFromChain_SkipsNamelessStages(t *testing.T) {
	tree := parseChain(t, `{"species": {"name": "pichu"}, "evolves_to": [
		{"species": {}, "evolves_to": [{"species": {"name": "ghost"}, "evolves_to": []}]},
		{"species": {"name": "pikachu"}, "evolves_to": []}
	]}`)

	assert.Equal(t, []string{"pichu", "pikachu"}, tree.Names())
}

func TestFromChain_EmptyRoot(t *testing.T) {
	assert.Nil(t, evolution.FromChain(evolution.ChainLink{}))
}

func TestIsDirectEvolution(t *testing.T) {
	linear := parseChain(t, bulbasaurChain)
	branching := parseChain(t, eeveeChain)

	tests := []struct {
		name string
		tree *evolution.Tree
		from string
		to   string
		want bool
	}{
		{"first stage", linear, "bulbasaur", "ivysaur", true},
		{"second stage", linear, "ivysaur", "venusaur", true},
		{"skipping a stage", linear, "bulbasaur", "venusaur", false},
		{"backwards", linear, "ivysaur", "bulbasaur", false},
		{"final form has no evolutions", linear, "venusaur", "bulbasaur", false},
		{"source not in tree", linear, "pikachu", "raichu", false},
		{"branching middle child", branching, "eevee", "jolteon", true},
		{"branching last child", branching, "eevee", "flareon", true},
		{"unrelated target", branching, "eevee", "venusaur", false},
		{"case sensitive", linear, "Bulbasaur", "ivysaur", false},
		{"nil tree", nil, "bulbasaur", "ivysaur", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, evolution.IsDirectEvolution(tt.tree, tt.from, tt.to))
		})
	}
}

func TestIsDirectEvolution_FirstBreadthFirstMatchWins(t *testing.T) {
	// "a" appears at depth 1 (no children) and again at depth 2 (with child "z").
	tree := &evolution.Tree{Name: "root", Children: []*evolution.Tree{
		{Name: "b", Children: []*evolution.Tree{
			{Name: "a", Children: []*evolution.Tree{{Name: "z"}}},
		}},
		{Name: "a"},
	}}

	assert.False(t, evolution.IsDirectEvolution(tree, "a", "z"))
	assert.Empty(t, tree.NextStages("a"))
}

func TestNextStages(t *testing.T) {
	tree := parseChain(t, eeveeChain)

	assert.Equal(t, []string{"vaporeon", "jolteon", "flareon"}, tree.NextStages("eevee"))
	assert.Empty(t, tree.NextStages("jolteon"))
	assert.Nil(t, tree.NextStages("mew"))
}

func TestString(t *testing.T) {
	tree := parseChain(t, bulbasaurChain)

	assert.Equal(t, "bulbasaur\n  -> ivysaur\n    -> venusaur", tree.String())
}
