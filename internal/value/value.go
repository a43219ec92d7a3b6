// Package value holds the immutable model of a parsed JSON value and the
// structural paths that address nodes inside it.
package value

// Kind discriminates the variants of a JSON value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns a short name for the kind, used in logs and error messages.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// Value is a parsed JSON value. Values are immutable once constructed;
// consumers must not modify Items or Members.
//
// Numbers keep their decimal source text verbatim in Text so no precision is
// lost on display. Strings hold the decoded (unescaped) text.
type Value struct {
	Kind Kind

	// Bool holds the value for KindBool.
	Bool bool

	// Text holds the verbatim number text for KindNumber and the decoded
	// string for KindString.
	Text string

	// Items holds the elements for KindArray.
	Items []Value

	// Members holds the key-value pairs for KindObject, in source order.
	// Duplicate keys are preserved.
	Members []Member
}

// Member is a single key-value pair belonging to an object.
type Member struct {
	Key   string
	Value Value
}

// Null returns the JSON null value.
func Null() Value { return Value{Kind: KindNull} }

// Bool returns a JSON boolean value.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// Number returns a JSON number carrying its verbatim decimal text.
func Number(text string) Value { return Value{Kind: KindNumber, Text: text} }

// String returns a JSON string value holding decoded text.
func String(text string) Value { return Value{Kind: KindString, Text: text} }

// Array returns a JSON array of the given elements.
func Array(items ...Value) Value { return Value{Kind: KindArray, Items: items} }

// Object returns a JSON object of the given members, preserving order.
func Object(members ...Member) Value { return Value{Kind: KindObject, Members: members} }

// IsContainer reports whether v is an array or an object.
func (v Value) IsContainer() bool {
	return v.Kind == KindArray || v.Kind == KindObject
}

// ChildCount returns the number of direct children: elements for arrays,
// members for objects, zero for scalars.
func (v Value) ChildCount() int {
	switch v.Kind {
	case KindArray:
		return len(v.Items)
	case KindObject:
		return len(v.Members)
	default:
		return 0
	}
}
