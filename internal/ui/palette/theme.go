// Package palette maps the user's colour theme onto Fyne.
package palette

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"pomodoro/internal/core/model"
)

// Palette is the set of colours a theme overrides.
type Palette struct {
	Background color.NRGBA
	Surface    color.NRGBA
	Primary    color.NRGBA
	Foreground color.NRGBA
}

var (
	slate900 = color.NRGBA{R: 0x0f, G: 0x17, B: 0x2a, A: 0xff}
	slate800 = color.NRGBA{R: 0x1e, G: 0x29, B: 0x3b, A: 0xff}
	white    = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

var palettes = map[model.Theme]Palette{
	model.ThemePurple: {
		Background: color.NRGBA{R: 0x3b, G: 0x13, B: 0x5c, A: 0xff},
		Surface:    color.NRGBA{R: 0x58, G: 0x1c, B: 0x87, A: 0xff},
		Primary:    color.NRGBA{R: 0xc0, G: 0x84, B: 0xfc, A: 0xff},
		Foreground: white,
	},
	model.ThemeBlue: {
		Background: color.NRGBA{R: 0x17, G: 0x25, B: 0x54, A: 0xff},
		Surface:    color.NRGBA{R: 0x1e, G: 0x3a, B: 0x8a, A: 0xff},
		Primary:    color.NRGBA{R: 0x60, G: 0xa5, B: 0xfa, A: 0xff},
		Foreground: white,
	},
	model.ThemeGreen: {
		Background: color.NRGBA{R: 0x05, G: 0x2e, B: 0x16, A: 0xff},
		Surface:    color.NRGBA{R: 0x14, G: 0x53, B: 0x2d, A: 0xff},
		Primary:    color.NRGBA{R: 0x4a, G: 0xde, B: 0x80, A: 0xff},
		Foreground: white,
	},
	model.ThemeDark: {
		Background: slate900,
		Surface:    slate800,
		Primary:    color.NRGBA{R: 0x94, G: 0xa3, B: 0xb8, A: 0xff},
		Foreground: white,
	},
}

// For returns the palette of name, or purple for unknown names.
func For(name model.Theme) Palette {
	if palette, ok := palettes[name]; ok {
		return palette
	}
	return palettes[model.ThemePurple]
}

// ModeColor is the badge colour of a timer mode.
func ModeColor(mode model.Mode) color.NRGBA {
	switch mode {
	case model.ModeShortBreak:
		return color.NRGBA{R: 0xfa, G: 0xcc, B: 0x15, A: 0xff}
	case model.ModeLongBreak:
		return color.NRGBA{R: 0xf8, G: 0x71, B: 0x71, A: 0xff}
	case model.ModeManualBreak:
		return color.NRGBA{R: 0xc0, G: 0x84, B: 0xfc, A: 0xff}
	default:
		return color.NRGBA{R: 0x4a, G: 0xde, B: 0x80, A: 0xff}
	}
}

// Theme is a dark Fyne theme tinted by a Palette.
type Theme struct {
	name    model.Theme
	palette Palette
	base    fyne.Theme
}

var _ fyne.Theme = (*Theme)(nil)

// New creates the Fyne theme for name.
func New(name model.Theme) *Theme {
	return &Theme{name: name, palette: For(name), base: theme.DefaultTheme()}
}

// Name returns the theme the palette was built from.
func (custom *Theme) Name() model.Theme {
	return custom.name
}

func (custom *Theme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground:
		return custom.palette.Background
	case theme.ColorNameButton, theme.ColorNameInputBackground, theme.ColorNameMenuBackground, theme.ColorNameOverlayBackground:
		return custom.palette.Surface
	case theme.ColorNamePrimary, theme.ColorNameFocus, theme.ColorNameHyperlink:
		return custom.palette.Primary
	case theme.ColorNameForeground:
		return custom.palette.Foreground
	}
	return custom.base.Color(name, theme.VariantDark)
}

func (custom *Theme) Font(style fyne.TextStyle) fyne.Resource {
	return custom.base.Font(style)
}

func (custom *Theme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return custom.base.Icon(name)
}

func (custom *Theme) Size(name fyne.ThemeSizeName) float32 {
	return custom.base.Size(name)
}
