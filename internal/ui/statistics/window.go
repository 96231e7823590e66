package statistics

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/stats"
)

// Messages shown by the data management dialogs.
const (
	importWarning = "This will overwrite your current data. Continue?"
	clearWarning  = "This will delete all your data including statistics and tasks. This cannot be undone!"
)

var errInvalidFile = errors.New("invalid file format")

// Actions performs the data management requests of the window.
type Actions struct {
	ExportName func() string
	Export     func(io.Writer) error
	Validate   func([]byte) error
	Import     func([]byte) error
	Clear      func() error
}

// Window shows today's and this week's totals and the recent sessions.
type Window struct {
	window  fyne.Window
	actions Actions
	recent  []stats.RecentSession

	todaySessions *widget.Label
	todayFocus    *widget.Label
	todayBreaks   *widget.Label
	productivity  *widget.Label
	weekSessions  *widget.Label
	weekFocus     *widget.Label
	weekBreaks    *widget.Label
	recentList    *widget.List

	confirm func(title, message string, callback func(bool))
	showErr func(error)
}

// New creates the statistics window.
func New(app fyne.App, actions Actions) *Window {
	window := app.NewWindow("Statistics")
	screen := &Window{
		window:        window,
		actions:       actions,
		todaySessions: widget.NewLabel("0"),
		todayFocus:    widget.NewLabel("0h 0m"),
		todayBreaks:   widget.NewLabel("0"),
		productivity:  widget.NewLabel("0%"),
		weekSessions:  widget.NewLabel("0"),
		weekFocus:     widget.NewLabel("0h 0m"),
		weekBreaks:    widget.NewLabel("0"),
	}
	screen.confirm = func(title, message string, callback func(bool)) {
		dialog.ShowConfirm(title, message, callback, window)
	}
	screen.showErr = func(err error) {
		dialog.ShowError(err, window)
	}

	screen.recentList = widget.NewList(
		func() int { return len(screen.recent) },
		func() fyne.CanvasObject { return widget.NewLabel("🍅 25 min at 00:00") },
		func(id widget.ListItemID, object fyne.CanvasObject) {
			object.(*widget.Label).SetText(recentLine(screen.recent[id]))
		},
	)

	today := container.New(layout.NewFormLayout(),
		widget.NewLabel("Sessions"), screen.todaySessions,
		widget.NewLabel("Focus time"), screen.todayFocus,
		widget.NewLabel("Breaks"), screen.todayBreaks,
		widget.NewLabel("Productivity"), screen.productivity,
	)
	week := container.New(layout.NewFormLayout(),
		widget.NewLabel("Sessions"), screen.weekSessions,
		widget.NewLabel("Focus time"), screen.weekFocus,
		widget.NewLabel("Breaks"), screen.weekBreaks,
	)
	totals := container.NewGridWithColumns(2,
		widget.NewCard("Today", "", today),
		widget.NewCard("This week", "", week),
	)

	buttons := container.NewHBox(
		widget.NewButton("Export", screen.handleExport),
		widget.NewButton("Import", screen.handleImport),
		layout.NewSpacer(),
		widget.NewButton("Clear all data", screen.handleClear),
	)

	recent := container.NewBorder(
		widget.NewLabelWithStyle("Recent sessions", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		nil, nil, nil, screen.recentList,
	)
	window.SetContent(container.NewBorder(totals, buttons, nil, nil, recent))
	window.Resize(fyne.NewSize(460, 480))
	window.SetCloseIntercept(window.Hide)
	return screen
}

// Show displays the window.
func (screen *Window) Show() {
	screen.window.Show()
	screen.window.RequestFocus()
}

// Update redraws the window from statistics. Call it on the UI goroutine.
func (screen *Window) Update(statistics model.Statistics) {
	screen.todaySessions.SetText(strconv.Itoa(statistics.Today.Sessions))
	screen.todayFocus.SetText(stats.FocusTimeLabel(statistics.Today.FocusMinutes))
	screen.todayBreaks.SetText(strconv.Itoa(statistics.Today.Breaks))
	screen.productivity.SetText(stats.Productivity(statistics.Today))
	screen.weekSessions.SetText(strconv.Itoa(statistics.Weekly.Sessions))
	screen.weekFocus.SetText(stats.FocusTimeLabel(statistics.Weekly.FocusMinutes))
	screen.weekBreaks.SetText(strconv.Itoa(statistics.Weekly.Breaks))
	screen.recent = stats.Recent(statistics, stats.RecentLimit, time.Local)
	screen.recentList.Refresh()
}

func recentLine(session stats.RecentSession) string {
	return fmt.Sprintf("%s %d min at %s", session.Icon, session.Minutes, session.Time)
}

func (screen *Window) handleExport() {
	save := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			screen.showErr(err)
			return
		}
		if writer == nil {
			return
		}
		defer writer.Close()
		if err := screen.actions.Export(writer); err != nil {
			screen.showErr(err)
		}
	}, screen.window)
	if screen.actions.ExportName != nil {
		save.SetFileName(screen.actions.ExportName())
	}
	save.Show()
}

func (screen *Window) handleImport() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			screen.showErr(err)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()
		data, err := io.ReadAll(reader)
		if err != nil {
			screen.showErr(err)
			return
		}
		screen.importData(data)
	}, screen.window)
}

func (screen *Window) importData(data []byte) {
	if err := screen.actions.Validate(data); err != nil {
		screen.showErr(errInvalidFile)
		return
	}
	screen.confirm("Import data", importWarning, func(ok bool) {
		if !ok {
			return
		}
		if err := screen.actions.Import(data); err != nil {
			screen.showErr(err)
		}
	})
}

func (screen *Window) handleClear() {
	screen.confirm("Clear data", clearWarning, func(ok bool) {
		if !ok {
			return
		}
		if err := screen.actions.Clear(); err != nil {
			screen.showErr(err)
		}
	})
}
