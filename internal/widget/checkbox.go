package widget

import "github.com/oakwood-commons/jsonpane/internal/viewport"

// Checkbox is a multi-selection list: listbox navigation plus a per-item
// checked mark toggled in place.
type Checkbox struct {
	items   []string
	checked map[int]struct{}
	cursor  int
	vp      viewport.Controller
}

// NewCheckbox returns a checkbox list over the given items, all unchecked.
func NewCheckbox(items []string) *Checkbox {
	cb := &Checkbox{items: items, checked: make(map[int]struct{}), cursor: -1}
	if len(items) > 0 {
		cb.cursor = 0
	}
	return cb
}

// Checked returns the indices of checked items in ascending order.
func (c *Checkbox) Checked() []int {
	var out []int
	for i := range c.items {
		if _, ok := c.checked[i]; ok {
			out = append(out, i)
		}
	}
	return out
}

// Render implements Widget.
func (c *Checkbox) Render(width, height int) []string {
	c.vp.Height = height
	_, c.cursor = c.vp.Reposition(c.cursor, len(c.items))

	end := c.vp.Start + height
	if end > len(c.items) {
		end = len(c.items)
	}
	out := make([]string, 0, end-c.vp.Start)
	for i := c.vp.Start; i < end; i++ {
		marker := "  "
		if i == c.cursor {
			marker = "❯ "
		}
		box := "[ ] "
		if _, ok := c.checked[i]; ok {
			box = "[x] "
		}
		out = append(out, fitLine(marker+box+c.items[i], width))
	}
	return out
}

// HandleKey implements Widget.
func (c *Checkbox) HandleKey(k Key) bool {
	if len(c.items) == 0 {
		return false
	}
	if k == KeyToggle {
		if _, ok := c.checked[c.cursor]; ok {
			delete(c.checked, c.cursor)
		} else {
			c.checked[c.cursor] = struct{}{}
		}
		return true
	}

	page := c.vp.Height
	if page < 1 {
		page = 1
	}
	var delta int
	switch k {
	case KeyUp:
		delta = -1
	case KeyDown:
		delta = 1
	case KeyPageUp:
		delta = -page
	case KeyPageDown:
		delta = page
	case KeyTop:
		delta = -len(c.items)
	case KeyBottom:
		delta = len(c.items)
	default:
		return false
	}
	prevCursor, prevStart := c.cursor, c.vp.Start
	_, c.cursor = c.vp.Reposition(c.cursor+delta, len(c.items))
	return c.cursor != prevCursor || c.vp.Start != prevStart
}
