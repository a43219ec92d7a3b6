// Package ingest consumes arbitrary text fragments and detects complete
// top-level JSON values as they close, without re-scanning already-consumed
// input.
package ingest

import (
	"fmt"

	"github.com/oakwood-commons/jsonpane/internal/value"
)

// MalformedError reports a recoverable malformed fragment. The buffer
// resynchronizes at the next plausible top-level start and keeps going;
// callers surface this as a status, never as a fatal error.
type MalformedError struct {
	// Offset is the absolute byte offset within the whole stream at which
	// the fragment started (or at which the fault was detected for stray
	// delimiters).
	Offset int64
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed JSON fragment at offset %d: %s", e.Offset, e.Reason)
}

// candidate kinds for the value currently being scanned.
type candKind int

const (
	candNone       candKind = iota
	candStructural          // object or array
	candString              // bare top-level string
	candScalar              // bare top-level token (number, true, false, null)
)

// Buffer incrementally recognizes complete top-level JSON values in an
// unbounded text stream. Already-emitted prefix bytes are discarded after
// every Feed; only an incomplete suffix is retained across calls.
//
// Buffer is not safe for concurrent use; the owning widget serializes all
// calls.
type Buffer struct {
	pending []byte
	base    int64 // absolute stream offset of pending[0]
	pos     int   // next unscanned byte within pending

	kind     candKind
	start    int // candidate start within pending, -1 when kind is candNone
	depth    int // bracket nesting inside a structural candidate
	inString bool
	escaped  bool
}

// NewBuffer returns an empty ingestion buffer.
func NewBuffer() *Buffer {
	return &Buffer{start: -1}
}

// Pending reports whether an incomplete top-level value is buffered.
func (b *Buffer) Pending() bool { return b.kind != candNone }

// Consumed returns the absolute number of stream bytes scanned so far.
func (b *Buffer) Consumed() int64 { return b.base + int64(b.pos) }

// Feed appends chunk to the stream and returns every top-level value that
// completed, in stream order, along with any malformed fragments detected.
// A chunk that only extends an incomplete value returns nothing.
func (b *Buffer) Feed(chunk string) ([]value.Value, []*MalformedError) {
	b.pending = append(b.pending, chunk...)
	values, malformed := b.scan()
	b.discardPrefix()
	return values, malformed
}

// Flush terminates the stream: a pending bare scalar is closed by the
// end-of-input delimiter, while any other incomplete candidate is reported
// as malformed. The buffer is left empty and reusable.
func (b *Buffer) Flush() ([]value.Value, []*MalformedError) {
	var values []value.Value
	var malformed []*MalformedError

	switch b.kind {
	case candScalar:
		if v, err := b.finishCandidate(b.pos); err != nil {
			malformed = append(malformed, err)
		} else {
			values = append(values, v)
		}
	case candStructural, candString:
		malformed = append(malformed, &MalformedError{
			Offset: b.base + int64(b.start),
			Reason: "unterminated value at end of stream",
		})
		b.resetCandidate()
	}

	b.base += int64(len(b.pending))
	b.pending = nil
	b.pos = 0
	return values, malformed
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// scalarDelimiter reports whether c terminates a bare top-level token.
func scalarDelimiter(c byte) bool {
	switch c {
	case '{', '[', '}', ']', '"', ',', ':':
		return true
	}
	return isSpace(c)
}

func validEscape(c byte) bool {
	switch c {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't', 'u':
		return true
	}
	return false
}

func (b *Buffer) scan() ([]value.Value, []*MalformedError) {
	var values []value.Value
	var malformed []*MalformedError

	emit := func(end int) {
		if v, err := b.finishCandidate(end); err != nil {
			malformed = append(malformed, err)
			b.resync()
		} else {
			values = append(values, v)
		}
	}

	for b.pos < len(b.pending) {
		c := b.pending[b.pos]

		switch b.kind {
		case candNone:
			switch {
			case isSpace(c):
				b.pos++
			case c == '{' || c == '[':
				b.startCandidate(candStructural)
				b.depth = 1
				b.pos++
			case c == '"':
				b.startCandidate(candString)
				b.inString = true
				b.pos++
			case c == '}' || c == ']' || c == ',' || c == ':':
				malformed = append(malformed, &MalformedError{
					Offset: b.base + int64(b.pos),
					Reason: fmt.Sprintf("unexpected %q at top level", c),
				})
				b.pos++
			default:
				b.startCandidate(candScalar)
				b.pos++
			}

		case candScalar:
			if scalarDelimiter(c) {
				// The delimiter is not consumed; it is re-examined as the
				// start of whatever follows.
				emit(b.pos)
			} else {
				b.pos++
			}

		case candString:
			if done := b.stepString(c, &malformed); done {
				emit(b.pos)
			}

		case candStructural:
			if b.inString {
				b.stepString(c, &malformed)
				break
			}
			switch c {
			case '"':
				b.inString = true
				b.escaped = false
				b.pos++
			case '{', '[':
				b.depth++
				b.pos++
			case '}', ']':
				b.depth--
				b.pos++
				if b.depth == 0 {
					emit(b.pos)
				}
			default:
				b.pos++
			}
		}
	}

	return values, malformed
}

// stepString advances one byte inside a string literal. It returns true when
// the closing quote of a bare top-level string was consumed. Invalid escape
// characters are reported immediately and trigger resynchronization.
func (b *Buffer) stepString(c byte, malformed *[]*MalformedError) bool {
	switch {
	case b.escaped:
		if !validEscape(c) {
			*malformed = append(*malformed, &MalformedError{
				Offset: b.base + int64(b.pos),
				Reason: fmt.Sprintf("invalid escape character %q", c),
			})
			b.resync()
			return false
		}
		b.escaped = false
		b.pos++
	case c == '\\':
		b.escaped = true
		b.pos++
	case c == '"':
		b.inString = false
		b.pos++
		return b.kind == candString
	default:
		b.pos++
	}
	return false
}

func (b *Buffer) startCandidate(kind candKind) {
	b.kind = kind
	b.start = b.pos
	b.depth = 0
	b.inString = false
	b.escaped = false
}

func (b *Buffer) resetCandidate() {
	b.kind = candNone
	b.start = -1
	b.depth = 0
	b.inString = false
	b.escaped = false
}

// finishCandidate parses the candidate span ending at end and resets the
// scan state. Spans that balanced their brackets but do not parse (for
// example `{]`) are reported as malformed.
func (b *Buffer) finishCandidate(end int) (value.Value, *MalformedError) {
	span := string(b.pending[b.start:end])
	offset := b.base + int64(b.start)
	b.resetCandidate()

	v, err := value.Parse(span)
	if err != nil {
		return value.Value{}, &MalformedError{Offset: offset, Reason: err.Error()}
	}
	return v, nil
}

// resync skips forward to the next plausible top-level start: an unconsumed
// `{` or `[`, or a whitespace boundary. This caps memory growth on
// adversarial input since the broken candidate is discarded immediately.
func (b *Buffer) resync() {
	b.resetCandidate()
	for b.pos < len(b.pending) {
		c := b.pending[b.pos]
		if c == '{' || c == '[' || isSpace(c) {
			return
		}
		b.pos++
	}
}

// discardPrefix drops bytes that can never be scanned again, keeping only
// the open candidate (if any) plus the unscanned tail.
func (b *Buffer) discardPrefix() {
	keepFrom := b.pos
	if b.start >= 0 {
		keepFrom = b.start
	}
	if keepFrom == 0 {
		return
	}
	b.pending = append(b.pending[:0], b.pending[keepFrom:]...)
	b.base += int64(keepFrom)
	b.pos -= keepFrom
	if b.start >= 0 {
		b.start -= keepFrom
	}
}
