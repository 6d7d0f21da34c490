package evolution

import "strings"

// String renders the tree one stage per line, indenting each evolution under
// its parent:
//
//	bulbasaur
//	  -> ivysaur
//	    -> venusaur
func (t *Tree) String() string {
	if t == nil {
		return ""
	}
	var b strings.Builder
	t.render(&b, 0)
	return strings.TrimSuffix(b.String(), "\n")
}

func (t *Tree) render(b *strings.Builder, depth int) {
	if depth > 0 {
		b.WriteString(strings.Repeat("  ", depth))
		b.WriteString("-> ")
	}
	b.WriteString(t.Name)
	b.WriteByte('\n')
	for _, child := range t.Children {
		child.render(b, depth+1)
	}
}
