package widget

import "github.com/oakwood-commons/jsonpane/internal/viewport"

// Listbox is a scrollable single-selection list sharing the stream widget's
// viewport mechanics.
type Listbox struct {
	items  []string
	cursor int
	vp     viewport.Controller
}

// NewListbox returns a listbox over the given items.
func NewListbox(items []string) *Listbox {
	lb := &Listbox{items: items, cursor: -1}
	if len(items) > 0 {
		lb.cursor = 0
	}
	return lb
}

// Selected returns the index of the selected item, or -1 when empty.
func (l *Listbox) Selected() int { return l.cursor }

// Render implements Widget.
func (l *Listbox) Render(width, height int) []string {
	l.vp.Height = height
	_, l.cursor = l.vp.Reposition(l.cursor, len(l.items))

	end := l.vp.Start + height
	if end > len(l.items) {
		end = len(l.items)
	}
	out := make([]string, 0, end-l.vp.Start)
	for i := l.vp.Start; i < end; i++ {
		marker := "  "
		if i == l.cursor {
			marker = "❯ "
		}
		out = append(out, fitLine(marker+l.items[i], width))
	}
	return out
}

// HandleKey implements Widget.
func (l *Listbox) HandleKey(k Key) bool {
	if len(l.items) == 0 {
		return false
	}
	page := l.vp.Height
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
		delta = -len(l.items)
	case KeyBottom:
		delta = len(l.items)
	default:
		return false
	}
	prevCursor, prevStart := l.cursor, l.vp.Start
	_, l.cursor = l.vp.Reposition(l.cursor+delta, len(l.items))
	return l.cursor != prevCursor || l.vp.Start != prevStart
}
