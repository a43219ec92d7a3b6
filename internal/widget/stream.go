package widget

import (
	"strings"

	"github.com/go-logr/logr"

	"github.com/oakwood-commons/jsonpane/internal/collapse"
	"github.com/oakwood-commons/jsonpane/internal/flatten"
	"github.com/oakwood-commons/jsonpane/internal/ingest"
	"github.com/oakwood-commons/jsonpane/internal/retain"
	"github.com/oakwood-commons/jsonpane/internal/value"
	"github.com/oakwood-commons/jsonpane/internal/viewport"
)

// State describes the stream widget's lifecycle.
type State int

const (
	// StateEmpty means no feed has occurred yet; render shows a
	// placeholder.
	StateEmpty State = iota
	// StateStreaming means input has arrived and an incomplete fragment
	// is still buffered.
	StateStreaming
	// StateIdle means input has arrived and nothing is pending.
	StateIdle
)

// Options configures a stream widget instance.
type Options struct {
	Flatten flatten.Options
	Retain  retain.Policy

	// Indent is the number of spaces per tree depth; 0 means 2.
	Indent int

	// Log receives ingestion and degrade notices; zero value discards.
	Log logr.Logger
}

// Stream is the orchestrating widget: it owns the ingestion buffer, the
// retained top-level values, the collapse store, the flattened rows, and
// the cursor/viewport. A single goroutine must drive all mutating calls;
// the only internal parallelism is the read-only flatten fan-out.
type Stream struct {
	opts Options

	buf    *ingest.Buffer
	values []value.Value
	first  int // stream index of values[0], advanced by eviction

	store *collapse.Store
	rows  []flatten.Row

	cursor int
	vp     viewport.Controller

	fedOnce   bool
	degraded  bool
	malformed *ingest.MalformedError
}

// NewStream returns an empty stream widget.
func NewStream(opts Options) *Stream {
	if opts.Indent <= 0 {
		opts.Indent = 2
	}
	if opts.Log.GetSink() == nil {
		opts.Log = logr.Discard()
	}
	opts.Flatten.Log = opts.Log
	return &Stream{
		opts:   opts,
		buf:    ingest.NewBuffer(),
		store:  collapse.NewStore(),
		cursor: -1,
	}
}

// State reports the widget lifecycle state.
func (s *Stream) State() State {
	switch {
	case !s.fedOnce:
		return StateEmpty
	case s.buf.Pending():
		return StateStreaming
	default:
		return StateIdle
	}
}

// Rows returns the full current row sequence.
func (s *Stream) Rows() []flatten.Row { return s.rows }

// RowCount returns the number of display rows.
func (s *Stream) RowCount() int { return len(s.rows) }

// Cursor returns the selected row index, or -1 when there are no rows.
func (s *Stream) Cursor() int { return s.cursor }

// ViewportStart returns the index of the first visible row.
func (s *Stream) ViewportStart() int { return s.vp.Start }

// ValueCount returns how many top-level values are retained.
func (s *Stream) ValueCount() int { return len(s.values) }

// LastMalformed returns the most recent malformed-fragment report, if any.
// It is a status, not an error: the widget keeps working.
func (s *Stream) LastMalformed() *ingest.MalformedError { return s.malformed }

// Degraded reports whether any flatten fell back to sequential execution.
func (s *Stream) Degraded() bool { return s.degraded }

// ClearStatus drops the malformed and degrade statuses.
func (s *Stream) ClearStatus() {
	s.malformed = nil
	s.degraded = false
}

// SetHeight sets the viewport height and re-windows the cursor.
func (s *Stream) SetHeight(h int) {
	if h == s.vp.Height {
		return
	}
	s.vp.Height = h
	s.reposition()
}

// FeedText ingests a text chunk. It re-flattens only when at least one new
// top-level value completed; partial-fragment feeds never change the view.
// The return value reports whether a redraw is required (new rows or a new
// malformed status).
func (s *Stream) FeedText(chunk string) bool {
	s.fedOnce = true
	values, malformed := s.buf.Feed(chunk)
	return s.ingest(values, malformed)
}

// Flush signals end of stream, closing any pending bare scalar and
// reporting an unterminated fragment as malformed.
func (s *Stream) Flush() bool {
	if !s.fedOnce {
		return false
	}
	values, malformed := s.buf.Flush()
	return s.ingest(values, malformed)
}

func (s *Stream) ingest(values []value.Value, malformed []*ingest.MalformedError) bool {
	for _, m := range malformed {
		s.opts.Log.Info("malformed fragment skipped", "offset", m.Offset, "reason", m.Reason)
		s.malformed = m
	}
	if len(values) == 0 {
		return len(malformed) > 0
	}

	s.values = append(s.values, values...)
	s.values, s.first = s.opts.Retain.Apply(s.values, s.first)
	s.reflatten()
	return true
}

// ToggleAtCursor folds or unfolds the container under the cursor. Scalar
// rows and empty documents are no-ops. After re-flattening the cursor stays
// on the toggled container.
func (s *Stream) ToggleAtCursor() bool {
	row, ok := s.rowAtCursor()
	if !ok || row.Kind == flatten.RowScalar {
		return false
	}
	s.store.Toggle(row.Path)
	s.reflatten()
	s.cursorToPath(row.Path)
	return true
}

// ExpandAtCursor unfolds the container under the cursor; no-op if it is not
// collapsed.
func (s *Stream) ExpandAtCursor() bool { return s.setAtCursor(false) }

// CollapseAtCursor folds the container under the cursor; no-op for scalars
// and already-folded containers.
func (s *Stream) CollapseAtCursor() bool { return s.setAtCursor(true) }

func (s *Stream) setAtCursor(collapsed bool) bool {
	row, ok := s.rowAtCursor()
	if !ok || row.Kind == flatten.RowScalar {
		return false
	}
	if s.store.IsCollapsed(row.Path) == collapsed {
		return false
	}
	s.store.Set(row.Path, collapsed)
	s.reflatten()
	s.cursorToPath(row.Path)
	return true
}

// MoveCursor moves the selection by delta rows, clamped to the document,
// and re-windows the viewport with minimal movement. Empty documents are a
// no-op.
func (s *Stream) MoveCursor(delta int) bool {
	if len(s.rows) == 0 {
		return false
	}
	prevCursor, prevStart := s.cursor, s.vp.Start
	start, clamped := s.vp.Reposition(s.cursor+delta, len(s.rows))
	s.cursor = clamped
	return clamped != prevCursor || start != prevStart
}

// EvictBefore discards every top-level value older than the one p belongs
// to. Collapse entries for evicted paths are left in place; they are
// harmless and cheap.
func (s *Stream) EvictBefore(p value.Path) bool {
	root := p.Root()
	if root <= s.first {
		return false
	}
	drop := root - s.first
	if drop > len(s.values) {
		drop = len(s.values)
	}
	if drop == 0 {
		return false
	}
	s.values = append([]value.Value(nil), s.values[drop:]...)
	s.first += drop
	s.reflatten()
	return true
}

// RowsInView returns the rows inside the current viewport. Pure read.
func (s *Stream) RowsInView() []flatten.Row {
	if len(s.rows) == 0 {
		return nil
	}
	end := s.vp.Start + s.vp.Height
	if s.vp.Height <= 0 {
		end = s.vp.Start + 1
	}
	if end > len(s.rows) {
		end = len(s.rows)
	}
	if s.vp.Start >= end {
		return nil
	}
	return s.rows[s.vp.Start:end]
}

// CursorPath returns the path of the selected row, or nil.
func (s *Stream) CursorPath() value.Path {
	if row, ok := s.rowAtCursor(); ok {
		return row.Path
	}
	return nil
}

// Indent returns a row's leading indentation.
func (s *Stream) Indent(row flatten.Row) string {
	return strings.Repeat(" ", s.opts.Indent*row.Depth)
}

// Render implements Widget: one plain-text line per visible row, the
// selected row marked, everything truncated to width.
func (s *Stream) Render(width, height int) []string {
	s.SetHeight(height)
	if s.State() == StateEmpty || len(s.rows) == 0 {
		return []string{fitLine("(no data)", width)}
	}

	view := s.RowsInView()
	lines := make([]string, 0, len(view))
	for i, row := range view {
		marker := "  "
		if s.vp.Start+i == s.cursor {
			marker = "❯ "
		}
		lines = append(lines, fitLine(marker+s.Indent(row)+row.Text, width))
	}
	return lines
}

// HandleKey implements Widget.
func (s *Stream) HandleKey(k Key) bool {
	page := s.vp.Height
	if page < 1 {
		page = 1
	}
	switch k {
	case KeyUp:
		return s.MoveCursor(-1)
	case KeyDown:
		return s.MoveCursor(1)
	case KeyPageUp:
		return s.MoveCursor(-page)
	case KeyPageDown:
		return s.MoveCursor(page)
	case KeyTop:
		return s.MoveCursor(-len(s.rows))
	case KeyBottom:
		return s.MoveCursor(len(s.rows))
	case KeyToggle:
		return s.ToggleAtCursor()
	case KeyExpand:
		return s.ExpandAtCursor()
	case KeyCollapse:
		return s.CollapseAtCursor()
	default:
		return false
	}
}

func (s *Stream) rowAtCursor() (flatten.Row, bool) {
	if s.cursor < 0 || s.cursor >= len(s.rows) {
		return flatten.Row{}, false
	}
	return s.rows[s.cursor], true
}

func (s *Stream) reflatten() {
	rows, degraded := flatten.Flatten(s.values, s.first, s.store, s.opts.Flatten)
	s.rows = rows
	if degraded {
		s.degraded = true
	}
	s.reposition()
}

func (s *Stream) reposition() {
	_, clamped := s.vp.Reposition(s.cursor, len(s.rows))
	s.cursor = clamped
}

// cursorToPath parks the cursor on the open or summary row of the given
// path; if the path vanished (pruned by an ancestor collapse) the cursor is
// simply re-clamped.
func (s *Stream) cursorToPath(p value.Path) {
	key := p.String()
	for i, row := range s.rows {
		if row.Kind != flatten.RowArrayClose && row.Kind != flatten.RowObjectClose &&
			row.Path.String() == key {
			s.cursor = i
			break
		}
	}
	s.reposition()
}
