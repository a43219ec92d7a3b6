package value

import (
	"strconv"
	"strings"
)

// Segment is one step of a structural path: either an object key or an
// array index. The first segment of every path is the index of the
// top-level value within the widget's document stream.
type Segment struct {
	Key   string
	Index int
	IsKey bool
}

// Key returns a path segment addressing an object member.
func Key(k string) Segment { return Segment{Key: k, IsKey: true} }

// Index returns a path segment addressing an array element or a top-level
// value.
func Index(i int) Segment { return Segment{Index: i} }

// Path addresses a node from the document root. Paths are stable across
// re-flattens of the same logical document: ingestion only appends new
// top-level values, it never renumbers existing ones.
type Path []Segment

// Child returns a new path extending p by one segment. The receiver is not
// modified; the result shares no backing storage growth with p.
func (p Path) Child(seg Segment) Path {
	child := make(Path, len(p)+1)
	copy(child, p)
	child[len(p)] = seg
	return child
}

// bareKey reports whether k can be rendered without quoting in a path.
func bareKey(k string) bool {
	if k == "" {
		return false
	}
	for _, r := range k {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '-':
		default:
			return false
		}
	}
	return true
}

// String renders the path in bracket/dot notation, e.g. `[0].items[2].name`.
// The encoding is injective, which makes it usable as a map key: keys that
// are not bare identifiers are quoted, so `.a` and `["a.b"]` never collide.
func (p Path) String() string {
	var b strings.Builder
	for _, seg := range p {
		if !seg.IsKey {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(seg.Index))
			b.WriteByte(']')
			continue
		}
		if bareKey(seg.Key) {
			b.WriteByte('.')
			b.WriteString(seg.Key)
			continue
		}
		b.WriteByte('[')
		b.WriteString(strconv.Quote(seg.Key))
		b.WriteByte(']')
	}
	return b.String()
}

// Equal reports whether two paths address the same node.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// Root returns the index of the top-level value this path belongs to, or -1
// for an empty path.
func (p Path) Root() int {
	if len(p) == 0 || p[0].IsKey {
		return -1
	}
	return p[0].Index
}
