package ui

import "github.com/oakwood-commons/jsonpane/internal/widget"

// KeyMode represents the keybinding mode for the UI.
type KeyMode string

const (
	// KeyModeVim enables vim-style keybindings (j/k navigation, / search).
	KeyModeVim KeyMode = "vim"
	// KeyModeEmacs enables emacs-style keybindings with ctrl modifiers.
	KeyModeEmacs KeyMode = "emacs"
	// KeyModeFunction disables single-key shortcuts, arrows and function keys only.
	KeyModeFunction KeyMode = "function"
)

// DefaultKeyMode is the default keybinding mode.
const DefaultKeyMode = KeyModeVim

// ValidKeyModes lists all valid key modes for validation.
var ValidKeyModes = []KeyMode{KeyModeVim, KeyModeEmacs, KeyModeFunction}

// IsValidKeyMode checks if a key mode string is valid.
func IsValidKeyMode(mode string) bool {
	for _, m := range ValidKeyModes {
		if string(m) == mode {
			return true
		}
	}
	return false
}

// Action represents a UI action triggered by a keybinding.
type Action string

const (
	ActionNone      Action = ""
	ActionUp        Action = "up"
	ActionDown      Action = "down"
	ActionPageUp    Action = "page_up"
	ActionPageDown  Action = "page_down"
	ActionTop       Action = "top"
	ActionBottom    Action = "bottom"
	ActionToggle    Action = "toggle"
	ActionExpand    Action = "expand"
	ActionCollapse  Action = "collapse"
	ActionSearch    Action = "search"
	ActionNextMatch Action = "next_match"
	ActionPrevMatch Action = "prev_match"
	ActionHelp      Action = "help"
	ActionQuit      Action = "quit"
	ActionPendingG  Action = "pending_g" // waiting for the second key of gg
)

// sharedKeyBindings apply in every mode: arrows, paging, function keys.
var sharedKeyBindings = map[string]Action{
	"up":     ActionUp,
	"down":   ActionDown,
	"pgup":   ActionPageUp,
	"pgdown": ActionPageDown,
	"home":   ActionTop,
	"end":    ActionBottom,
	"enter":  ActionToggle,
	"right":  ActionExpand,
	"left":   ActionCollapse,
	"f1":     ActionHelp,
	"f3":     ActionSearch,
	"f10":    ActionQuit,
	"ctrl+c": ActionQuit,
}

// vimKeyBindings map keys to actions for vim mode.
var vimKeyBindings = map[string]Action{
	"j":     ActionDown,
	"k":     ActionUp,
	"h":     ActionCollapse,
	"l":     ActionExpand,
	"g":     ActionPendingG,
	"G":     ActionBottom,
	"/":     ActionSearch,
	"n":     ActionNextMatch,
	"N":     ActionPrevMatch,
	"space": ActionToggle,
	"?":     ActionHelp,
	"q":     ActionQuit,
}

// emacsKeyBindings map keys to actions for emacs mode.
var emacsKeyBindings = map[string]Action{
	"ctrl+n": ActionDown,
	"ctrl+p": ActionUp,
	"ctrl+v": ActionPageDown,
	"alt+v":  ActionPageUp,
	"alt+<":  ActionTop,
	"alt+>":  ActionBottom,
	"ctrl+b": ActionCollapse,
	"ctrl+f": ActionExpand,
	"ctrl+s": ActionSearch,
	"ctrl+r": ActionPrevMatch,
	"ctrl+q": ActionQuit,
}

// keyResolver turns key strings into actions, tracking the vim gg sequence.
type keyResolver struct {
	mode    KeyMode
	pending string
}

// Resolve maps a key press to an action. ActionNone means the key is unbound.
func (r *keyResolver) Resolve(keyStr string) Action {
	if r.mode == KeyModeVim && r.pending == "g" {
		r.pending = ""
		if keyStr == "g" {
			return ActionTop
		}
		// The pending g is consumed without action; fall through so the
		// key can still match its own binding.
	}

	action, ok := sharedKeyBindings[keyStr]
	if !ok {
		switch r.mode {
		case KeyModeVim:
			action = vimKeyBindings[keyStr]
		case KeyModeEmacs:
			action = emacsKeyBindings[keyStr]
		}
	}

	if action == ActionPendingG {
		r.pending = "g"
		return ActionNone
	}
	return action
}

// widgetKey translates a navigation action into the widget event, or KeyNone
// for actions the host handles itself (search, help, quit).
func widgetKey(a Action) widget.Key {
	switch a {
	case ActionUp:
		return widget.KeyUp
	case ActionDown:
		return widget.KeyDown
	case ActionPageUp:
		return widget.KeyPageUp
	case ActionPageDown:
		return widget.KeyPageDown
	case ActionTop:
		return widget.KeyTop
	case ActionBottom:
		return widget.KeyBottom
	case ActionToggle:
		return widget.KeyToggle
	case ActionExpand:
		return widget.KeyExpand
	case ActionCollapse:
		return widget.KeyCollapse
	default:
		return widget.KeyNone
	}
}
