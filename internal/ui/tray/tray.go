package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"pomodoro/internal/core/model"
	"pomodoro/internal/core/timekeeper"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnToggle      func()
	OnReset       func()
	OnManualBreak func()
	OnPreferences func()
	OnStatistics  func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app        desktop.App
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	breakItem  *fyne.MenuItem
	items      []*fyne.MenuItem
	callbacks  Callbacks
	status     string
}

// New creates a tray manager with the provided callbacks. A nil app
// keeps the menu in memory only.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Ready", nil)
	manager.statusItem.Disabled = true
	manager.toggleItem = fyne.NewMenuItem("Start", invoke(callbacks.OnToggle))
	manager.breakItem = fyne.NewMenuItem("Take a break", invoke(callbacks.OnManualBreak))

	manager.items = []*fyne.MenuItem{
		manager.statusItem,
		fyne.NewMenuItem("Show timer", invoke(callbacks.OnShow)),
		fyne.NewMenuItemSeparator(),
		manager.toggleItem,
		fyne.NewMenuItem("Reset", invoke(callbacks.OnReset)),
		manager.breakItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", invoke(callbacks.OnPreferences)),
		fyne.NewMenuItem("Statistics", invoke(callbacks.OnStatistics)),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", invoke(callbacks.OnQuit)),
	}
	manager.refreshMenu()
	return manager
}

func invoke(callback func()) func() {
	return func() {
		if callback != nil {
			callback()
		}
	}
}

// Update reflects the timer state in the menu.
func (manager *Manager) Update(state timekeeper.State) {
	status := timekeeper.StatusLine(state)
	label := "Start"
	if state.Running {
		label = "Pause"
	} else if state.Paused {
		label = "Resume"
	}
	inManualBreak := state.Mode == model.ModeManualBreak && state.Running

	if status == manager.status && label == manager.toggleItem.Label && inManualBreak == manager.breakItem.Disabled {
		return
	}
	manager.status = status
	manager.statusItem.Label = fmt.Sprintf("%s %s", timekeeper.ModeIcon(state.Mode), status)
	manager.toggleItem.Label = label
	manager.breakItem.Disabled = inManualBreak
	manager.refreshMenu()
}

// Menu returns the current menu.
func (manager *Manager) Menu() *fyne.Menu {
	return fyne.NewMenu("Pomodoro", manager.items...)
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.Menu())
	}
}
