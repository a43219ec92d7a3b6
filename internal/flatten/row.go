// Package flatten converts value trees plus collapse state into the flat,
// randomly-indexable row sequence the viewport renders. Ordering is the
// standard pre-order document order and is identical no matter how many
// workers participate.
package flatten

import (
	"fmt"
	"strings"

	"github.com/oakwood-commons/jsonpane/internal/value"
)

// RowKind classifies what a display row represents.
type RowKind int

const (
	RowScalar RowKind = iota
	RowArrayOpen
	RowArrayClose
	RowObjectOpen
	RowObjectClose
	RowCollapsed
)

// String returns a short name for the row kind, used in tests and logs.
func (k RowKind) String() string {
	switch k {
	case RowScalar:
		return "scalar"
	case RowArrayOpen:
		return "array-open"
	case RowArrayClose:
		return "array-close"
	case RowObjectOpen:
		return "object-open"
	case RowObjectClose:
		return "object-close"
	case RowCollapsed:
		return "collapsed"
	default:
		return "invalid"
	}
}

// Row is one renderable line derived from a value tree. Rows are regenerated
// on every flatten and carry no identity across flattens beyond their path.
type Row struct {
	Path  value.Path
	Depth int
	Kind  RowKind

	// Key is the object key owning this node; HasKey distinguishes an
	// empty key from no key (array elements and top-level values).
	Key    string
	HasKey bool

	// Text is the rendered fragment without indentation; the renderer
	// prepends Depth-based indent.
	Text string

	// ValueStart/ValueEnd delimit the value portion of Text in bytes, for
	// highlighting. For close rows the span is empty.
	ValueStart int
	ValueEnd   int

	// Last reports whether this node is the last sibling; non-last rows
	// carry a trailing comma in Text.
	Last bool

	// Count is the direct child count for open and collapsed rows.
	Count int
}

// quoteString renders s as a JSON string literal for display.
func quoteString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

// scalarText renders a scalar value as its JSON literal.
func scalarText(v value.Value) string {
	switch v.Kind {
	case value.KindNull:
		return "null"
	case value.KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case value.KindNumber:
		return v.Text
	case value.KindString:
		return quoteString(v.Text)
	default:
		return ""
	}
}

// keyPrefix renders the `"key": ` prefix, or nothing for keyless rows.
func keyPrefix(key string, hasKey bool) string {
	if !hasKey {
		return ""
	}
	return quoteString(key) + ": "
}

// buildRow assembles a row whose value portion is valueText.
func buildRow(kind RowKind, p value.Path, depth int, key string, hasKey bool, valueText string, last bool, count int) Row {
	prefix := keyPrefix(key, hasKey)
	text := prefix + valueText
	if !last && kind != RowArrayOpen && kind != RowObjectOpen {
		text += ","
	}
	return Row{
		Path:       p,
		Depth:      depth,
		Kind:       kind,
		Key:        key,
		HasKey:     hasKey,
		Text:       text,
		ValueStart: len(prefix),
		ValueEnd:   len(prefix) + len(valueText),
		Last:       last,
		Count:      count,
	}
}

// closeRow assembles a `}` or `]` row; its highlight span is empty.
func closeRow(kind RowKind, p value.Path, depth int, last bool) Row {
	text := "]"
	if kind == RowObjectClose {
		text = "}"
	}
	if !last {
		text += ","
	}
	return Row{Path: p, Depth: depth, Kind: kind, Text: text, Last: last}
}

// summaryText renders the one-line stand-in for a collapsed container,
// carrying its direct child count.
func summaryText(v value.Value) string {
	if v.Kind == value.KindObject {
		return fmt.Sprintf("{…%d}", len(v.Members))
	}
	return fmt.Sprintf("[…%d]", len(v.Items))
}
