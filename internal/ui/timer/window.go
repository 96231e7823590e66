// Package timer is the view window: the countdown, its controls, the task
// list and the motivational quote.
package timer

import (
	"fmt"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/tasks"
	"pomodoro/internal/core/timekeeper"
	"pomodoro/internal/ui/palette"
)

// Controls is the timer the window drives.
type Controls interface {
	Toggle()
	Reset()
	StartManualBreak()
	SetFocusDuration(seconds int) model.Settings
}

// TaskList is the task registry the window edits.
type TaskList interface {
	Add(text string) (model.Task, error)
	Toggle(id string) error
	Select(id string) error
	Delete(id string) error
}

// Callbacks defines window action handlers.
type Callbacks struct {
	OnPreferences     func()
	OnStatistics      func()
	OnToggleTheme     func()
	OnSettingsChanged func(model.Settings)
}

// Window is the view timer window.
type Window struct {
	window    fyne.Window
	controls  Controls
	taskList  TaskList
	callbacks Callbacks

	modeBadge   *canvas.Rectangle
	modeText    *canvas.Text
	display     *canvas.Text
	remaining   *widget.Label
	progress    *widget.ProgressBar
	session     *widget.Label
	completed   *widget.Label
	toggle      *widget.Button
	manualBreak *widget.Button
	presets     map[int]*widget.Button
	currentTask *widget.Label
	quote       *widget.Label
	taskEntry   *widget.Entry
	taskHeader  *widget.Label
	taskView    *widget.List

	tasks []model.Task
	state timekeeper.State
}

// New creates the main window. banner is placed above the timer.
func New(app fyne.App, controls Controls, taskList TaskList, banner fyne.CanvasObject, callbacks Callbacks) *Window {
	view := &Window{
		window:      app.NewWindow("Pomodoro"),
		controls:    controls,
		taskList:    taskList,
		callbacks:   callbacks,
		modeBadge:   canvas.NewRectangle(palette.ModeColor(model.ModeFocus)),
		modeText:    canvas.NewText(timekeeper.ModeLabel(model.ModeFocus), color.Black),
		display:     canvas.NewText("25:00", color.White),
		remaining:   widget.NewLabel("remaining"),
		progress:    widget.NewProgressBar(),
		session:     widget.NewLabel("Session #1"),
		completed:   widget.NewLabel("0 completed today"),
		currentTask: widget.NewLabel(""),
		quote:       widget.NewLabel(""),
		taskEntry:   widget.NewEntry(),
		taskHeader:  widget.NewLabel("Tasks"),
		presets:     make(map[int]*widget.Button),
	}

	view.modeBadge.CornerRadius = 12
	view.modeText.TextStyle = fyne.TextStyle{Bold: true}
	view.modeText.Alignment = fyne.TextAlignCenter
	view.display.TextSize = 72
	view.display.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	view.display.Alignment = fyne.TextAlignCenter
	view.remaining.Alignment = fyne.TextAlignCenter
	view.progress.TextFormatter = func() string { return "" }
	view.currentTask.Hide()
	view.quote.Wrapping = fyne.TextWrapWord
	view.quote.Alignment = fyne.TextAlignCenter
	view.quote.TextStyle = fyne.TextStyle{Italic: true}

	view.toggle = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), view.handleToggle)
	view.toggle.Importance = widget.HighImportance
	reset := widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), view.handleReset)
	view.manualBreak = widget.NewButton("Take a break", view.handleManualBreak)

	presetRow := container.NewHBox(layout.NewSpacer())
	for _, preset := range model.FocusPresets {
		seconds := int(preset / time.Second)
		button := widget.NewButton(fmt.Sprintf("%dm", seconds/60), func() { view.handlePreset(seconds) })
		view.presets[seconds] = button
		presetRow.Add(button)
	}
	presetRow.Add(layout.NewSpacer())

	view.taskEntry.SetPlaceHolder("What are you working on?")
	view.taskEntry.OnSubmitted = func(string) { view.handleAddTask() }
	view.taskView = widget.NewList(view.taskCount, newTaskRow, view.bindTaskRow)

	header := container.NewHBox(
		layout.NewSpacer(),
		widget.NewButtonWithIcon("", theme.ColorPaletteIcon(), invoke(callbacks.OnToggleTheme)),
		widget.NewButtonWithIcon("", theme.InfoIcon(), invoke(callbacks.OnStatistics)),
		widget.NewButtonWithIcon("", theme.SettingsIcon(), invoke(callbacks.OnPreferences)),
	)
	badge := container.NewCenter(container.NewStack(view.modeBadge, container.NewPadded(view.modeText)))
	timerPanel := container.NewVBox(
		header,
		badge,
		view.display,
		view.remaining,
		view.progress,
		container.NewHBox(view.session, layout.NewSpacer(), view.completed),
		container.NewHBox(layout.NewSpacer(), view.toggle, reset, view.manualBreak, layout.NewSpacer()),
		presetRow,
		view.currentTask,
	)
	taskPanel := container.NewBorder(
		container.NewVBox(
			view.taskHeader,
			container.NewBorder(nil, nil, nil, widget.NewButtonWithIcon("", theme.ContentAddIcon(), view.handleAddTask), view.taskEntry),
		),
		view.quote, nil, nil,
		view.taskView,
	)

	var top fyne.CanvasObject = timerPanel
	if banner != nil {
		top = container.NewVBox(banner, timerPanel)
	}
	view.window.SetContent(container.NewBorder(top, nil, nil, nil, taskPanel))
	view.window.Resize(fyne.NewSize(440, 760))
	view.bindKeys()
	return view
}

func invoke(callback func()) func() {
	return func() {
		if callback != nil {
			callback()
		}
	}
}

// Window returns the underlying Fyne window.
func (view *Window) Window() fyne.Window {
	return view.window
}

// Show displays the window.
func (view *Window) Show() {
	view.window.Show()
	view.window.RequestFocus()
}

// Render redraws the timer from state. Call it on the UI goroutine.
func (view *Window) Render(state timekeeper.State, settings model.Settings) {
	view.state = state

	view.modeBadge.FillColor = palette.ModeColor(state.Mode)
	view.modeBadge.Refresh()
	view.modeText.Text = timekeeper.ModeLabel(state.Mode)
	view.modeText.Refresh()
	view.display.Text = timekeeper.Display(state)
	view.display.Refresh()
	view.remaining.SetText(timekeeper.RemainingLabel(state))
	view.progress.SetValue(timekeeper.Progress(state, settings))
	view.session.SetText(fmt.Sprintf("Session #%d", state.SessionCount+1))
	view.window.SetTitle(fmt.Sprintf("%s - %s", timekeeper.Display(state), timekeeper.ModeLabel(state.Mode)))

	if state.Running {
		view.toggle.SetText("Pause")
		view.toggle.SetIcon(theme.MediaPauseIcon())
	} else {
		view.toggle.SetText("Start")
		view.toggle.SetIcon(theme.MediaPlayIcon())
	}

	for seconds, button := range view.presets {
		importance := widget.MediumImportance
		if settings.FocusSeconds == seconds {
			importance = widget.HighImportance
		}
		if button.Importance != importance {
			button.Importance = importance
			button.Refresh()
		}
	}
	view.renderCurrentTask()
}

// RenderTasks redraws the task list.
func (view *Window) RenderTasks(list []model.Task, counts tasks.Counts) {
	view.tasks = list
	view.taskHeader.SetText(fmt.Sprintf("Tasks (%d/%d done)", counts.Completed, counts.Total))
	view.taskView.Refresh()
	view.renderCurrentTask()
}

// SetCompletedToday shows today's finished focus sessions.
func (view *Window) SetCompletedToday(count int) {
	view.completed.SetText(fmt.Sprintf("%d completed today", count))
}

// SetQuote shows a motivational quote.
func (view *Window) SetQuote(text string) {
	view.quote.SetText(text)
}

func (view *Window) renderCurrentTask() {
	text := ""
	if view.state.ActiveTaskID != "" {
		for _, task := range view.tasks {
			if task.ID == view.state.ActiveTaskID {
				text = task.Text
				break
			}
		}
	}
	if text == "" {
		view.currentTask.Hide()
		return
	}
	view.currentTask.SetText("Working on: " + text)
	view.currentTask.Show()
}

func (view *Window) bindKeys() {
	canvas := view.window.Canvas()
	canvas.SetOnTypedKey(view.handleKey)
	for _, key := range []fyne.KeyName{fyne.KeyS, fyne.KeyT} {
		canvas.AddShortcut(&desktop.CustomShortcut{KeyName: key, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) {
			view.handleShortcut(key)
		})
	}
}

// handleKey runs the unmodified key bindings: space toggles, R resets.
func (view *Window) handleKey(event *fyne.KeyEvent) {
	switch event.Name {
	case fyne.KeySpace:
		view.handleToggle()
	case fyne.KeyR:
		view.handleReset()
	}
}

// handleShortcut runs the Ctrl/Cmd bindings: S preferences, T statistics.
func (view *Window) handleShortcut(key fyne.KeyName) {
	switch key {
	case fyne.KeyS:
		invoke(view.callbacks.OnPreferences)()
	case fyne.KeyT:
		invoke(view.callbacks.OnStatistics)()
	}
}

func (view *Window) handleToggle() {
	view.controls.Toggle()
}

func (view *Window) handleReset() {
	view.controls.Reset()
}

func (view *Window) handleManualBreak() {
	view.controls.StartManualBreak()
}

func (view *Window) handlePreset(seconds int) {
	settings := view.controls.SetFocusDuration(seconds)
	if view.callbacks.OnSettingsChanged != nil {
		view.callbacks.OnSettingsChanged(settings)
	}
}

func (view *Window) handleAddTask() {
	if _, err := view.taskList.Add(view.taskEntry.Text); err != nil {
		return
	}
	view.taskEntry.SetText("")
}
