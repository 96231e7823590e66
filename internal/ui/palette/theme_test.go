package palette

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"

	"pomodoro/internal/core/model"
)

func TestEveryThemeHasPalette(t *testing.T) {
	for _, name := range model.Themes {
		assert.Contains(t, palettes, name)
		assert.Equal(t, palettes[name], For(name))
	}
	assert.Equal(t, palettes[model.ThemePurple], For("neon"))
}

func TestThemeColors(t *testing.T) {
	custom := New(model.ThemeGreen)
	assert.Equal(t, model.ThemeGreen, custom.Name())
	assert.Equal(t, For(model.ThemeGreen).Background, custom.Color(theme.ColorNameBackground, theme.VariantLight))
	assert.Equal(t, For(model.ThemeGreen).Primary, custom.Color(theme.ColorNamePrimary, theme.VariantDark))
	assert.Equal(t, theme.DefaultTheme().Color(theme.ColorNameError, theme.VariantDark), custom.Color(theme.ColorNameError, theme.VariantLight))
	assert.NotNil(t, custom.Font(fyne.TextStyle{Bold: true}))
}

func TestModeColorsDiffer(t *testing.T) {
	seen := map[string]bool{}
	for _, mode := range []model.Mode{model.ModeFocus, model.ModeShortBreak, model.ModeLongBreak, model.ModeManualBreak} {
		c := ModeColor(mode)
		seen[string([]byte{c.R, c.G, c.B})] = true
	}
	assert.Len(t, seen, 4)
}
