package ui

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"charm.land/lipgloss/v2"
)

// Theme defines the colors used across the UI. Host apps can supply their own.
type Theme struct {
	KeyColor     color.Color // object keys
	StringColor  color.Color // string scalars
	NumberColor  color.Color // number scalars
	LiteralColor color.Color // true/false/null
	PunctColor   color.Color // braces, brackets, commas
	SummaryColor color.Color // collapsed-container summaries
	CursorFG     color.Color // selected row foreground
	CursorBG     color.Color // selected row background
	MatchBG      color.Color // search match background
	StatusColor  color.Color // normal status bar text
	StatusError  color.Color // malformed-fragment warning
	HelpColor    color.Color // help overlay text
}

func darkTheme() Theme {
	return Theme{
		KeyColor:     lipgloss.Color("81"),
		StringColor:  lipgloss.Color("114"),
		NumberColor:  lipgloss.Color("215"),
		LiteralColor: lipgloss.Color("176"),
		PunctColor:   lipgloss.Color("244"),
		SummaryColor: lipgloss.Color("245"),
		CursorFG:     lipgloss.Color("250"),
		CursorBG:     lipgloss.Color("24"),
		MatchBG:      lipgloss.Color("58"),
		StatusColor:  lipgloss.Color("81"),
		StatusError:  lipgloss.Color("203"),
		HelpColor:    lipgloss.Color("245"),
	}
}

func lightTheme() Theme {
	return Theme{
		KeyColor:     lipgloss.Color("25"),
		StringColor:  lipgloss.Color("28"),
		NumberColor:  lipgloss.Color("130"),
		LiteralColor: lipgloss.Color("90"),
		PunctColor:   lipgloss.Color("240"),
		SummaryColor: lipgloss.Color("242"),
		CursorFG:     lipgloss.Color("235"),
		CursorBG:     lipgloss.Color("153"),
		MatchBG:      lipgloss.Color("229"),
		StatusColor:  lipgloss.Color("25"),
		StatusError:  lipgloss.Color("124"),
		HelpColor:    lipgloss.Color("242"),
	}
}

func monoTheme() Theme {
	gray := lipgloss.Color("250")
	return Theme{
		KeyColor:     gray,
		StringColor:  gray,
		NumberColor:  gray,
		LiteralColor: gray,
		PunctColor:   lipgloss.Color("244"),
		SummaryColor: lipgloss.Color("244"),
		CursorFG:     lipgloss.Color("232"),
		CursorBG:     gray,
		MatchBG:      lipgloss.Color("238"),
		StatusColor:  gray,
		StatusError:  gray,
		HelpColor:    lipgloss.Color("244"),
	}
}

// themePresets holds the built-in palettes.
var themePresets = map[string]Theme{
	"dark":  darkTheme(),
	"light": lightTheme(),
	"mono":  monoTheme(),
}

// DefaultThemeName is the theme used when none is configured.
const DefaultThemeName = "dark"

var currentTheme Theme

// SetTheme overrides the global theme.
func SetTheme(t Theme) {
	currentTheme = t
}

// SetThemeByName selects one of the built-in themes.
func SetThemeByName(name string) error {
	if th, ok := themePresets[name]; ok {
		SetTheme(th)
		return nil
	}
	return fmt.Errorf("unknown theme %q (available: %s)", name, availableThemeNames())
}

// CurrentTheme returns the currently configured theme.
func CurrentTheme() Theme {
	if currentTheme == (Theme{}) {
		currentTheme = themePresets[DefaultThemeName]
	}
	return currentTheme
}

func availableThemeNames() string {
	names := make([]string, 0, len(themePresets))
	for name := range themePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// IsValidTheme checks whether name is a built-in theme.
func IsValidTheme(name string) bool {
	_, ok := themePresets[name]
	return ok
}
