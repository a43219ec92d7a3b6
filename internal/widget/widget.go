// Package widget holds the interactive widgets that share the render/event
// contract consumed by the host prompt runtime: the streaming JSON tree plus
// the simpler text, listbox, and checkbox peers.
package widget

import "github.com/mattn/go-runewidth"

// Key is a structured navigation event already decoded by the host; the
// widgets never read the terminal themselves.
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyTop
	KeyBottom
	KeyToggle
	KeyExpand
	KeyCollapse
)

// Widget is the contract every widget implements for the host runtime.
type Widget interface {
	// Render produces at most height display lines, each truncated to
	// width terminal cells.
	Render(width, height int) []string

	// HandleKey applies a navigation event and reports whether the view
	// changed and needs a redraw.
	HandleKey(k Key) bool
}

// fitLine truncates s to width terminal cells, ellipsizing when content is
// cut. Width is measured in cells, not bytes, so wide runes count double.
func fitLine(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
