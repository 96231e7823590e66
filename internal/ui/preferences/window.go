package preferences

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"pomodoro/internal/core/model"
)

// Window handles the preferences UI.
type Window struct {
	window        fyne.Window
	settings      model.Settings
	onSave        func(model.Settings)
	onPreview     func(sound string)
	durations     []*widget.Entry
	sound         *widget.Check
	notifications *widget.Check
	autoStart     *widget.Check
	reducedMotion *widget.Check
	theme         *widget.Select
	selectedSound *widget.Select
}

// New creates a preferences window. onPreview plays a sound preset.
func New(app fyne.App, settings model.Settings, onSave func(model.Settings), onPreview func(string)) *Window {
	window := app.NewWindow("Pomodoro Settings")

	prefs := &Window{
		window:        window,
		onSave:        onSave,
		onPreview:     onPreview,
		sound:         widget.NewCheck("Sound", nil),
		notifications: widget.NewCheck("Desktop notifications", nil),
		autoStart:     widget.NewCheck("Auto-start next interval", nil),
		reducedMotion: widget.NewCheck("Reduce motion", nil),
	}

	themes := make([]string, 0, len(model.Themes))
	for _, name := range model.Themes {
		themes = append(themes, string(name))
	}
	prefs.theme = widget.NewSelect(themes, nil)
	prefs.selectedSound = widget.NewSelect(model.SoundPresets, nil)

	durations := container.New(layout.NewFormLayout())
	for _, field := range durationFields {
		entry := widget.NewEntry()
		prefs.durations = append(prefs.durations, entry)
		durations.Add(widget.NewLabel(field.label))
		durations.Add(container.NewBorder(nil, nil, nil, widget.NewLabel("min"), entry))
	}

	preview := widget.NewButton("Preview", func() {
		if prefs.onPreview != nil {
			prefs.onPreview(prefs.selectedSound.Selected)
		}
	})

	form := container.NewVBox(
		widget.NewLabelWithStyle("Timer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		durations,
		prefs.autoStart,
		widget.NewLabelWithStyle("Notifications", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		prefs.sound,
		container.NewBorder(nil, nil, widget.NewLabel("Sound preset"), preview, prefs.selectedSound),
		prefs.notifications,
		widget.NewLabelWithStyle("Appearance", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewBorder(nil, nil, widget.NewLabel("Theme"), nil, prefs.theme),
		prefs.reducedMotion,
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	saveButton.Importance = widget.HighImportance
	cancelButton := widget.NewButton("Cancel", window.Hide)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(420, 520))
	window.SetCloseIntercept(window.Hide)

	prefs.UpdateSettings(settings)
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings model.Settings) {
	prefs.settings = settings
	for i, field := range durationFields {
		prefs.durations[i].SetText(minutesText(field.get(settings)))
	}
	prefs.sound.SetChecked(settings.SoundEnabled)
	prefs.notifications.SetChecked(settings.DesktopNotifications)
	prefs.autoStart.SetChecked(settings.AutoStartBreaks)
	prefs.reducedMotion.SetChecked(settings.ReducedMotion)
	prefs.theme.SetSelected(string(settings.Theme))
	prefs.selectedSound.SetSelected(settings.SelectedSound)
}

// Settings returns the values currently entered. Invalid durations keep
// their previous value.
func (prefs *Window) Settings() model.Settings {
	settings := prefs.settings
	for i, field := range durationFields {
		if seconds, ok := parseMinutes(prefs.durations[i].Text); ok {
			field.set(&settings, seconds)
		}
	}
	settings.SoundEnabled = prefs.sound.Checked
	settings.DesktopNotifications = prefs.notifications.Checked
	settings.AutoStartBreaks = prefs.autoStart.Checked
	settings.ReducedMotion = prefs.reducedMotion.Checked
	settings.Theme = model.Theme(prefs.theme.Selected)
	settings.SelectedSound = prefs.selectedSound.Selected
	return settings.Normalize()
}

func (prefs *Window) handleSave() {
	settings := prefs.Settings()
	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}
