package humanjson

import (
	"math"
	"sort"
	"strings"
)

// renderer holds per-call layout state. The options are copied in at
// acquire time and never mutated during a render, so a Formatter can
// serve concurrent calls with independent renderers.
type renderer struct {
	opts    Options
	cmp     *keyComparator
	width   int
	scratch []byte
}

func (r *renderer) reset(opts Options, cmp *keyComparator) {
	r.opts = opts
	r.cmp = cmp
	r.width = opts.Width
	if opts.Indent == 0 {
		// No indentation means no column to wrap to.
		r.width = math.MaxInt32
	}
}

// render produces the text for a normalized value. The second return
// is false when the value is Absent: the caller decides whether the
// hole is dropped (objects) or nulled (arrays).
//
// leftMargin is the column where the value's first line starts;
// rightReserve is width held back for trailing punctuation the parent
// has not rendered yet. Scalars are atomic: they are emitted whole
// even when wider than the remaining budget.
func (r *renderer) render(v node, leftMargin, rightReserve int) (string, bool) {
	switch v.kind {
	case kindAbsent:
		return "", false
	case kindNull:
		return "null", true
	case kindBool:
		if v.b {
			return "true", true
		}
		return "false", true
	case kindNumber:
		return v.num, true
	case kindString:
		r.scratch = appendQuotedString(r.scratch[:0], v.str)
		return string(r.scratch), true
	case kindArray:
		return r.renderArray(v, leftMargin), true
	default:
		return r.renderObject(v, leftMargin), true
	}
}

func (r *renderer) renderArray(v node, leftMargin int) string {
	if len(v.arr) == 0 {
		return "[]"
	}
	nextIndent := leftMargin + r.opts.Indent
	items := make([]string, 0, len(v.arr))
	allPrimitive := true
	for _, el := range v.arr {
		if !el.primitiveSrc {
			allPrimitive = false
		}
		s, ok := r.render(el, nextIndent, 2)
		if !ok {
			// Arrays cannot have holes.
			s = "null"
		}
		items = append(items, s)
	}
	fill := allPrimitive && r.opts.Fill.has('[')
	return r.layout('[', ']', items, leftMargin, nextIndent, fill)
}

func (r *renderer) renderObject(v node, leftMargin int) string {
	members := v.obj
	if r.opts.SortKeys && len(members) > 1 {
		members = append([]objMember(nil), members...)
		sort.SliceStable(members, func(i, j int) bool {
			return r.cmp.Less(members[i].key, members[j].key)
		})
	}
	nextIndent := leftMargin + r.opts.Indent
	items := make([]string, 0, len(members))
	allPrimitive := true
	for _, m := range members {
		if !m.val.primitiveSrc {
			allPrimitive = false
		}
		key := string(appendQuotedString(nil, m.key))
		val, ok := r.render(m.val, nextIndent, len(key)+2+1)
		if !ok {
			continue
		}
		items = append(items, key+": "+val)
	}
	if len(items) == 0 {
		return "{}"
	}
	fill := allPrimitive && r.opts.Fill.has('{')
	return r.layout('{', '}', items, leftMargin, nextIndent, fill)
}

// layout picks between the single-line candidate and the fully
// expanded block. The candidate includes delimiter padding so the fit
// check measures exactly what would be emitted; the +2 approximates
// the parent's trailing punctuation.
func (r *renderer) layout(open, close byte, items []string, leftMargin, nextIndent int, fill bool) string {
	single := r.inline(open, close, items)
	if leftMargin+len(single)+2 <= r.width {
		return single
	}
	rows := items
	if fill {
		rows = fillWrap(items, nextIndent, r.width)
	}
	var b strings.Builder
	b.WriteByte(open)
	b.WriteByte('\n')
	pad := strings.Repeat(" ", nextIndent)
	for i, row := range rows {
		b.WriteString(pad)
		b.WriteString(row)
		if i < len(rows)-1 {
			b.WriteByte(',')
		}
		b.WriteByte('\n')
	}
	b.WriteString(strings.Repeat(" ", leftMargin))
	b.WriteByte(close)
	return b.String()
}

func (r *renderer) inline(open, close byte, items []string) string {
	padded := r.opts.Spacing.has(open)
	var b strings.Builder
	b.WriteByte(open)
	if padded {
		b.WriteByte(' ')
	}
	for i, item := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(item)
	}
	if padded {
		b.WriteByte(' ')
	}
	b.WriteByte(close)
	return b.String()
}

// fillWrap greedily merges consecutive item strings into shared lines
// under the width budget. Single left-to-right pass, no backtracking,
// no optimal packing; an item that does not fit simply starts the next
// group.
func fillWrap(items []string, indent, width int) []string {
	groups := make([]string, 0, len(items))
	cur := items[0]
	for _, item := range items[1:] {
		if indent+len(cur)+len(item) < width {
			cur += ", " + item
		} else {
			groups = append(groups, cur)
			cur = item
		}
	}
	return append(groups, cur)
}
