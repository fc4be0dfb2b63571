package humanjson

import "strings"

// keyComparator is a total order over object key names: configured
// priority keys first, in configured order, then everything else in
// case-folded lexicographic order. Keys that are equal after folding
// compare by original casing as the final tie-break, so the order
// never depends on input iteration order.
type keyComparator struct {
	rank map[string]int
}

func newKeyComparator(priority []string) *keyComparator {
	c := &keyComparator{rank: make(map[string]int, len(priority))}
	for i, k := range priority {
		folded := strings.ToLower(k)
		if _, ok := c.rank[folded]; !ok {
			c.rank[folded] = i
		}
	}
	return c
}

// Less reports whether key a sorts strictly before key b. Priority
// matching is case-insensitive; original casing is untouched.
func (c *keyComparator) Less(a, b string) bool {
	fa := strings.ToLower(a)
	fb := strings.ToLower(b)
	ra, aok := c.rank[fa]
	rb, bok := c.rank[fb]
	switch {
	case aok && bok:
		if ra != rb {
			return ra < rb
		}
		// Same priority slot: the keys differ only by case.
		return a < b
	case aok:
		return true
	case bok:
		return false
	}
	if fa != fb {
		return fa < fb
	}
	return a < b
}
