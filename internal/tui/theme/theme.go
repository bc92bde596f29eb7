// Package theme defines the color palettes of the saastrack dashboard.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme is a palette of color roles. Cards and tab content render on
// Surface; the frame and status bar render on Background.
type Theme struct {
	Name string

	Background    lipgloss.Color
	Surface       lipgloss.Color
	SurfaceHover  lipgloss.Color // active tab, selected row
	SurfaceBright lipgloss.Color // editing cursor
	Border        lipgloss.Color
	BorderAccent  lipgloss.Color // card titles, focus

	TextDim     lipgloss.Color // axes, hints
	TextMuted   lipgloss.Color // labels
	TextPrimary lipgloss.Color

	Accent       lipgloss.Color
	AccentBright lipgloss.Color

	// Series and status colors.
	Green       lipgloss.Color
	GreenBright lipgloss.Color
	Orange      lipgloss.Color
	Red         lipgloss.Color
	Blue        lipgloss.Color
	BlueBright  lipgloss.Color
	Yellow      lipgloss.Color
	Magenta     lipgloss.Color
	Cyan        lipgloss.Color
}

// Active is the currently selected theme.
var Active = FlexokiDark

// FlexokiDark is the default palette.
var FlexokiDark = Theme{
	Name:          "flexoki-dark",
	Background:    "#100F0F",
	Surface:       "#1C1B1A",
	SurfaceHover:  "#282726",
	SurfaceBright: "#343331",
	Border:        "#403E3C",
	BorderAccent:  "#3AA99F",
	TextDim:       "#575653",
	TextMuted:     "#878580",
	TextPrimary:   "#FFFCF0",
	Accent:        "#3AA99F",
	AccentBright:  "#5BC8BE",
	Green:         "#879A39",
	GreenBright:   "#A3B859",
	Orange:        "#DA702C",
	Red:           "#D14D41",
	Blue:          "#4385BE",
	BlueBright:    "#6BA3D6",
	Yellow:        "#D0A215",
	Magenta:       "#CE5D97",
	Cyan:          "#24837B",
}

// CatppuccinMocha is the pastel Catppuccin palette.
var CatppuccinMocha = Theme{
	Name:          "catppuccin-mocha",
	Background:    "#1E1E2E",
	Surface:       "#313244",
	SurfaceHover:  "#45475A",
	SurfaceBright: "#585B70",
	Border:        "#585B70",
	BorderAccent:  "#89B4FA",
	TextDim:       "#6C7086",
	TextMuted:     "#A6ADC8",
	TextPrimary:   "#CDD6F4",
	Accent:        "#89B4FA",
	AccentBright:  "#B4D0FB",
	Green:         "#A6E3A1",
	GreenBright:   "#C6F6C1",
	Orange:        "#FAB387",
	Red:           "#F38BA8",
	Blue:          "#89B4FA",
	BlueBright:    "#B4D0FB",
	Yellow:        "#F9E2AF",
	Magenta:       "#F5C2E7",
	Cyan:          "#94E2D5",
}

// TokyoNight uses cool blues and purples.
var TokyoNight = Theme{
	Name:          "tokyo-night",
	Background:    "#1A1B26",
	Surface:       "#24283B",
	SurfaceHover:  "#343A52",
	SurfaceBright: "#414868",
	Border:        "#565F89",
	BorderAccent:  "#7AA2F7",
	TextDim:       "#565F89",
	TextMuted:     "#A9B1D6",
	TextPrimary:   "#C0CAF5",
	Accent:        "#7AA2F7",
	AccentBright:  "#A9C1FF",
	Green:         "#9ECE6A",
	GreenBright:   "#B9E87A",
	Orange:        "#FF9E64",
	Red:           "#F7768E",
	Blue:          "#7AA2F7",
	BlueBright:    "#A9C1FF",
	Yellow:        "#E0AF68",
	Magenta:       "#BB9AF7",
	Cyan:          "#7DCFFF",
}

// Terminal sticks to the 16 ANSI colors so it follows the terminal's own scheme.
var Terminal = Theme{
	Name:          "terminal",
	Background:    "0",
	Surface:       "0",
	SurfaceHover:  "8",
	SurfaceBright: "8",
	Border:        "8",
	BorderAccent:  "6",
	TextDim:       "8",
	TextMuted:     "7",
	TextPrimary:   "15",
	Accent:        "6",
	AccentBright:  "14",
	Green:         "2",
	GreenBright:   "10",
	Orange:        "3",
	Red:           "1",
	Blue:          "4",
	BlueBright:    "12",
	Yellow:        "3",
	Magenta:       "5",
	Cyan:          "6",
}

// GruvboxDark is a low-contrast retro palette.
var GruvboxDark = Theme{
	Name:          "gruvbox-dark",
	Background:    "#1D2021",
	Surface:       "#282828",
	SurfaceHover:  "#3C3836",
	SurfaceBright: "#504945",
	Border:        "#504945",
	BorderAccent:  "#D79921",
	TextDim:       "#665C54",
	TextMuted:     "#A89984",
	TextPrimary:   "#EBDBB2",
	Accent:        "#D79921",
	AccentBright:  "#FABD2F",
	Green:         "#98971A",
	GreenBright:   "#B8BB26",
	Orange:        "#FE8019",
	Red:           "#FB4934",
	Blue:          "#458588",
	BlueBright:    "#83A598",
	Yellow:        "#FABD2F",
	Magenta:       "#D3869B",
	Cyan:          "#8EC07C",
}

// All lists the selectable palettes in display order.
var All = []Theme{FlexokiDark, CatppuccinMocha, TokyoNight, GruvboxDark, Terminal}

// ByName returns the named theme, or FlexokiDark when the name is unknown.
func ByName(name string) Theme {
	if t, ok := Lookup(name); ok {
		return t
	}
	return FlexokiDark
}

// Lookup reports whether name is a known theme.
func Lookup(name string) (Theme, bool) {
	for _, t := range All {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

// Names lists the theme names in display order.
func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = t.Name
	}
	return names
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}

// Good is the color of on-target values.
func (t Theme) Good() lipgloss.Color { return t.GreenBright }

// Info is the color of neutral-positive values.
func (t Theme) Info() lipgloss.Color { return t.BlueBright }

// Warn is the color of values that need attention.
func (t Theme) Warn() lipgloss.Color { return t.Yellow }

// Bad is the color of off-target values.
func (t Theme) Bad() lipgloss.Color { return t.Red }
