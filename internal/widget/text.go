package widget

// Text is the simplest peer widget: a static block of lines with scroll but
// no selection.
type Text struct {
	lines []string
	start int
	h     int
}

// NewText returns a text widget over the given lines.
func NewText(lines []string) *Text {
	return &Text{lines: lines}
}

// Render implements Widget.
func (t *Text) Render(width, height int) []string {
	t.h = height
	t.clamp()
	end := t.start + height
	if end > len(t.lines) {
		end = len(t.lines)
	}
	out := make([]string, 0, end-t.start)
	for _, line := range t.lines[t.start:end] {
		out = append(out, fitLine(line, width))
	}
	return out
}

// HandleKey implements Widget: up/down/page keys scroll the block.
func (t *Text) HandleKey(k Key) bool {
	page := t.h
	if page < 1 {
		page = 1
	}
	prev := t.start
	switch k {
	case KeyUp:
		t.start--
	case KeyDown:
		t.start++
	case KeyPageUp:
		t.start -= page
	case KeyPageDown:
		t.start += page
	case KeyTop:
		t.start = 0
	case KeyBottom:
		t.start = len(t.lines)
	default:
		return false
	}
	t.clamp()
	return t.start != prev
}

func (t *Text) clamp() {
	max := len(t.lines) - t.h
	if max < 0 {
		max = 0
	}
	if t.start > max {
		t.start = max
	}
	if t.start < 0 {
		t.start = 0
	}
}
