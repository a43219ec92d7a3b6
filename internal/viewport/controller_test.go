package viewport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRepositionEmpty(t *testing.T) {
	c := &Controller{Start: 5, Height: 10}
	start, cursor := c.Reposition(3, 0)
	assert.Equal(t, 0, start)
	assert.Equal(t, -1, cursor)
}

func TestRepositionClampsCursor(t *testing.T) {
	c := &Controller{Height: 10}

	_, cursor := c.Reposition(-4, 7)
	assert.Equal(t, 0, cursor)

	_, cursor = c.Reposition(99, 7)
	assert.Equal(t, 6, cursor)
}

func TestRepositionMinimalMovement(t *testing.T) {
	c := &Controller{Start: 10, Height: 5}

	// Cursor already inside the window: no movement.
	start, cursor := c.Reposition(12, 100)
	assert.Equal(t, 10, start)
	assert.Equal(t, 12, cursor)

	// Cursor just below the window: scroll down by exactly one.
	start, _ = c.Reposition(15, 100)
	assert.Equal(t, 11, start)

	// Cursor far above the window: window snaps to the cursor.
	start, _ = c.Reposition(2, 100)
	assert.Equal(t, 2, start)
}

func TestRepositionClampsStart(t *testing.T) {
	c := &Controller{Start: 90, Height: 10}

	// Row count shrank (collapse); start pulls back into range.
	start, cursor := c.Reposition(50, 60)
	assert.Equal(t, 50, start)
	assert.Equal(t, 50, cursor)

	// Fewer rows than the window height: start pins to zero.
	c = &Controller{Start: 3, Height: 10}
	start, _ = c.Reposition(2, 4)
	assert.Equal(t, 0, start)
}

func TestRepositionGrowthKeepsWindow(t *testing.T) {
	c := &Controller{Start: 4, Height: 5}
	start, cursor := c.Reposition(6, 20)
	assert.Equal(t, 4, start)
	assert.Equal(t, 6, cursor)

	// More rows streamed in; nothing moves.
	start, cursor = c.Reposition(6, 500)
	assert.Equal(t, 4, start)
	assert.Equal(t, 6, cursor)
}

func TestRepositionInvariant(t *testing.T) {
	// After any reposition the cursor lies within the window.
	c := &Controller{Height: 7}
	for rows := 1; rows < 40; rows++ {
		for cur := -3; cur < rows+3; cur++ {
			start, clamped := c.Reposition(cur, rows)
			assert.GreaterOrEqual(t, clamped, start)
			assert.Less(t, clamped, start+c.Height)
			assert.GreaterOrEqual(t, clamped, 0)
			assert.Less(t, clamped, rows)
		}
	}
}
