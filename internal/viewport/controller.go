// Package viewport computes the visible window over a flat row sequence.
package viewport

// Controller tracks the viewport start and height and repositions itself
// with a minimal-movement policy: the window only moves when the cursor
// would otherwise leave it, and then by the smallest possible amount.
type Controller struct {
	Start  int
	Height int
}

// Reposition clamps cursor into [0, rowCount) and moves the viewport just
// enough to contain it. It returns the new viewport start and the clamped
// cursor. With rowCount == 0 the viewport resets to 0 and the cursor is
// disabled (-1).
//
// Growth of rowCount never moves an in-range viewport, so streamed appends
// do not yank the view away from what the user is looking at.
func (c *Controller) Reposition(cursor, rowCount int) (start, clamped int) {
	if rowCount <= 0 {
		c.Start = 0
		return 0, -1
	}

	if cursor < 0 {
		cursor = 0
	}
	if cursor >= rowCount {
		cursor = rowCount - 1
	}

	height := c.Height
	if height < 1 {
		height = 1
	}

	switch {
	case cursor < c.Start:
		c.Start = cursor
	case cursor >= c.Start+height:
		c.Start = cursor - height + 1
	}

	maxStart := rowCount - height
	if maxStart < 0 {
		maxStart = 0
	}
	if c.Start > maxStart {
		c.Start = maxStart
	}
	if c.Start < 0 {
		c.Start = 0
	}

	return c.Start, cursor
}
