package widget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/jsonpane/internal/flatten"
	"github.com/oakwood-commons/jsonpane/internal/retain"
	"github.com/oakwood-commons/jsonpane/internal/value"
)

func newTestStream(height int) *Stream {
	s := NewStream(Options{})
	s.SetHeight(height)
	return s
}

func TestStreamFeedScenario(t *testing.T) {
	s := newTestStream(10)
	assert.Equal(t, StateEmpty, s.State())

	redraw := s.FeedText(`{"a":1,"b":[2,3]}`)
	assert.True(t, redraw)
	assert.Equal(t, StateIdle, s.State())

	require.Equal(t, 7, s.RowCount())
	assert.Equal(t, 0, s.Cursor())
	assert.Equal(t, 0, s.ViewportStart())

	rows := s.Rows()
	assert.Equal(t, flatten.RowObjectOpen, rows[0].Kind)
	assert.Equal(t, 0, rows[0].Depth)
	assert.Equal(t, flatten.RowScalar, rows[1].Kind)
	assert.Equal(t, 1, rows[1].Depth)
	assert.Equal(t, flatten.RowArrayOpen, rows[2].Kind)
	assert.Equal(t, 1, rows[2].Depth)
	assert.Equal(t, 2, rows[3].Depth)
	assert.Equal(t, 2, rows[4].Depth)
	assert.Equal(t, flatten.RowArrayClose, rows[5].Kind)
	assert.Equal(t, flatten.RowObjectClose, rows[6].Kind)
}

func TestStreamToggleScenario(t *testing.T) {
	s := newTestStream(10)
	s.FeedText(`{"a":1,"b":[2,3]}`)

	// Move to the array-open row for "b" and fold it.
	s.MoveCursor(2)
	require.True(t, s.ToggleAtCursor())

	require.Equal(t, 5, s.RowCount())
	summary := s.Rows()[2]
	assert.Equal(t, flatten.RowCollapsed, summary.Kind)
	assert.Equal(t, 1, summary.Depth)
	assert.Equal(t, 2, summary.Count)

	// Cursor stays on the folded container.
	assert.Equal(t, 2, s.Cursor())

	// Unfolding restores the original rows exactly.
	require.True(t, s.ToggleAtCursor())
	assert.Equal(t, 7, s.RowCount())
	assert.Equal(t, 2, s.Cursor())
}

func TestStreamToggleOnScalarIsNoop(t *testing.T) {
	s := newTestStream(10)
	s.FeedText(`{"a":1}`)
	s.MoveCursor(1)
	assert.False(t, s.ToggleAtCursor())
	assert.Equal(t, 3, s.RowCount())
}

func TestStreamExpandCollapseAtCursor(t *testing.T) {
	s := newTestStream(10)
	s.FeedText(`[[1],[2]]`)

	assert.False(t, s.ExpandAtCursor()) // already expanded
	assert.True(t, s.CollapseAtCursor())
	assert.Equal(t, 1, s.RowCount())
	assert.False(t, s.CollapseAtCursor()) // already collapsed
	assert.True(t, s.ExpandAtCursor())
	assert.Equal(t, 8, s.RowCount())
}

func TestStreamTwoTopLevelValues(t *testing.T) {
	s := newTestStream(10)
	s.FeedText(`{"x":1}`)
	s.FeedText(`{"y":2}`)

	assert.Equal(t, 2, s.ValueCount())
	require.Equal(t, 6, s.RowCount())
	assert.Equal(t, "[0]", s.Rows()[0].Path.String())
	assert.Equal(t, "[1]", s.Rows()[3].Path.String())
}

func TestStreamPartialFeedDoesNotChangeView(t *testing.T) {
	s := newTestStream(10)
	s.FeedText(`{"x":1}`)
	s.MoveCursor(2)

	redraw := s.FeedText(`{"y":`)
	assert.False(t, redraw)
	assert.Equal(t, StateStreaming, s.State())
	assert.Equal(t, 3, s.RowCount())
	assert.Equal(t, 2, s.Cursor())

	redraw = s.FeedText(`2}`)
	assert.True(t, redraw)
	assert.Equal(t, 6, s.RowCount())
	// Streamed growth does not move the cursor or the viewport.
	assert.Equal(t, 2, s.Cursor())
	assert.Equal(t, 0, s.ViewportStart())
}

func TestStreamMalformedFragmentIsNonFatal(t *testing.T) {
	s := newTestStream(10)
	s.FeedText(`{"x":1}`)
	before := s.RowCount()

	redraw := s.FeedText(`{"a":`)
	assert.False(t, redraw)
	redraw = s.Flush()
	assert.True(t, redraw) // the status changed, even though rows did not

	assert.Equal(t, before, s.RowCount())
	require.NotNil(t, s.LastMalformed())
	assert.Contains(t, s.LastMalformed().Reason, "unterminated")

	s.ClearStatus()
	assert.Nil(t, s.LastMalformed())
}

func TestStreamEmptyNavigationIsNoop(t *testing.T) {
	s := newTestStream(10)
	assert.False(t, s.MoveCursor(1))
	assert.False(t, s.ToggleAtCursor())
	assert.Equal(t, -1, s.Cursor())
	assert.Equal(t, []string{"(no data)"}, s.Render(40, 10))
}

func TestStreamCursorAndViewport(t *testing.T) {
	s := newTestStream(3)
	s.FeedText(`[1,2,3,4,5,6,7,8]`)
	require.Equal(t, 10, s.RowCount())

	// Walk below the window: viewport follows minimally.
	s.MoveCursor(4)
	assert.Equal(t, 4, s.Cursor())
	assert.Equal(t, 2, s.ViewportStart())

	view := s.RowsInView()
	require.Len(t, view, 3)
	assert.Equal(t, "2,", view[0].Text)

	// Clamped at the end.
	s.MoveCursor(100)
	assert.Equal(t, 9, s.Cursor())
	assert.Equal(t, 7, s.ViewportStart())
}

func TestStreamHandleKey(t *testing.T) {
	s := newTestStream(4)
	s.FeedText(`[1,2,3,4,5,6,7,8]`)

	assert.True(t, s.HandleKey(KeyDown))
	assert.Equal(t, 1, s.Cursor())
	assert.True(t, s.HandleKey(KeyPageDown))
	assert.Equal(t, 5, s.Cursor())
	assert.True(t, s.HandleKey(KeyBottom))
	assert.Equal(t, 9, s.Cursor())
	assert.True(t, s.HandleKey(KeyTop))
	assert.Equal(t, 0, s.Cursor())
	assert.False(t, s.HandleKey(KeyUp))
	assert.True(t, s.HandleKey(KeyToggle))
	assert.Equal(t, 1, s.RowCount())
}

func TestStreamRender(t *testing.T) {
	s := newTestStream(10)
	s.FeedText(`{"a":1}`)

	lines := s.Render(40, 10)
	require.Len(t, lines, 3)
	assert.Equal(t, "❯ {", lines[0])
	assert.Equal(t, `    "a": 1`, lines[1])
	assert.Equal(t, "  }", lines[2])

	// Width truncation ellipsizes.
	narrow := s.Render(5, 10)
	assert.Equal(t, "    …", narrow[1])
}

func TestStreamRetention(t *testing.T) {
	s := NewStream(Options{Retain: retain.Policy{MaxValues: 2}})
	s.SetHeight(10)
	s.FeedText(`{"a":1} {"b":2} {"c":3} `)

	assert.Equal(t, 2, s.ValueCount())
	// Paths keep their original stream indices after eviction.
	assert.Equal(t, "[1]", s.Rows()[0].Path.String())
	assert.Equal(t, "[2]", s.Rows()[3].Path.String())
}

func TestStreamEvictBefore(t *testing.T) {
	s := newTestStream(10)
	s.FeedText(`{"a":1} {"b":2} {"c":3} `)
	require.Equal(t, 3, s.ValueCount())

	ok := s.EvictBefore(value.Path{value.Index(2)})
	assert.True(t, ok)
	assert.Equal(t, 1, s.ValueCount())
	assert.Equal(t, "[2]", s.Rows()[0].Path.String())

	assert.False(t, s.EvictBefore(value.Path{value.Index(1)}))
}

func TestStreamCollapseSurvivesGrowth(t *testing.T) {
	s := newTestStream(10)
	s.FeedText(`{"a":[1,2]}`)
	s.MoveCursor(1)
	require.True(t, s.ToggleAtCursor())
	require.Equal(t, 3, s.RowCount())

	// New top-level values arrive; the earlier collapse still holds.
	s.FeedText(`{"b":9}`)
	rows := s.Rows()
	assert.Equal(t, flatten.RowCollapsed, rows[1].Kind)
	assert.Equal(t, 6, s.RowCount())
}
