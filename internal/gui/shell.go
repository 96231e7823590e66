// Package gui assembles the desktop application: persistence, the timer
// engine, its collaborators and every window.
package gui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/jonboulle/clockwork"

	"pomodoro/internal/config"
	"pomodoro/internal/core/clock"
	"pomodoro/internal/core/model"
	"pomodoro/internal/core/stats"
	"pomodoro/internal/core/tasks"
	"pomodoro/internal/core/timekeeper"
	"pomodoro/internal/notify"
	"pomodoro/internal/quotes"
	"pomodoro/internal/sound"
	"pomodoro/internal/storage"
	"pomodoro/internal/ui/overlay"
	"pomodoro/internal/ui/palette"
	"pomodoro/internal/ui/preferences"
	"pomodoro/internal/ui/statistics"
	"pomodoro/internal/ui/timer"
	"pomodoro/internal/ui/tray"
	"pomodoro/resources"
)

// AppID is the Fyne application id.
const AppID = "io.github.pomodoro.timer"

// eventBuffer is the engine subscription depth for the UI.
const eventBuffer = 16

// Options configures a Shell. Zero values select production defaults.
type Options struct {
	Config      config.Config
	Logger      *slog.Logger
	App         fyne.App
	Store       storage.Store
	Clock       clockwork.Clock
	Scheduler   clock.Scheduler
	AudioOpener sound.Opener
	Quotes      quotes.Source
}

// Shell owns the running application.
type Shell struct {
	app       fyne.App
	logger    *slog.Logger
	clock     clockwork.Clock
	store     storage.Store
	ownsStore bool

	keeper     *timekeeper.TimeKeeper
	recorder   *stats.Recorder
	registry   *tasks.Registry
	audio      *sound.AudioContext
	dispatcher *notify.Dispatcher
	loader     *quotes.Loader

	main   *timer.Window
	prefs  *preferences.Window
	stats  *statistics.Window
	banner *overlay.Banner
	tray   *tray.Manager

	cancel context.CancelFunc
	done   chan struct{}
}

// New builds the application without showing it.
func New(options Options) (*Shell, error) {
	logger := options.Logger
	if logger == nil {
		logger = slog.Default()
	}
	clk := options.Clock
	if clk == nil {
		clk = clock.System()
	}
	scheduler := options.Scheduler
	if scheduler == nil {
		scheduler = clock.NewScheduler(clk)
	}
	fyneApp := options.App
	if fyneApp == nil {
		fyneApp = app.NewWithID(AppID)
	}

	shell := &Shell{
		app:    fyneApp,
		logger: logger,
		clock:  clk,
		store:  options.Store,
		done:   make(chan struct{}),
	}
	if shell.store == nil {
		store, err := openStore(fyneApp, options.Config.Storage)
		if err != nil {
			return nil, err
		}
		shell.store = store
		shell.ownsStore = true
	}

	settings, err := storage.LoadSettings(shell.store)
	if err != nil {
		logger.Warn("settings unavailable, using defaults", "error", err)
	}

	shell.recorder = stats.NewRecorder(shell.store, clk, logger.With("component", "stats"))
	shell.registry = tasks.NewRegistry(shell.store, clk, logger.With("component", "tasks"))
	shell.audio = sound.NewAudioContext(options.AudioOpener, logger.With("component", "sound"))
	shell.banner = overlay.NewBanner(clk)
	shell.dispatcher = notify.NewDispatcher(notify.Options{
		Settings: shell.settings,
		Player:   shell.audio,
		Sender:   fyneApp,
		Banner:   shell.showBanner,
		Logger:   logger.With("component", "notify"),
	})
	shell.keeper = timekeeper.New(settings, timekeeper.Dependencies{
		Clock:     clk,
		Scheduler: scheduler,
		Tasks:     shell.registry,
		Recorder:  shell.recorder,
		Notifier:  shell.dispatcher,
		Logger:    logger.With("component", "timer"),
	})
	shell.registry.SetOnDelete(shell.keeper.DetachTask)

	source := options.Quotes
	if source == nil && !options.Config.Quotes.Offline && options.Config.Quotes.URL != "" {
		source = &quotes.HTTPSource{URL: options.Config.Quotes.URL, Timeout: options.Config.Quotes.Timeout}
	}
	shell.loader = quotes.NewLoader(source, logger.With("component", "quotes"))

	shell.buildWindows(settings)

	shell.recorder.SetOnChange(func(statistics model.Statistics) {
		fyne.Do(func() { shell.renderStatistics(statistics) })
	})
	shell.registry.SetOnChange(func(list []model.Task) {
		counts := tasks.CountOf(list)
		fyne.Do(func() { shell.main.RenderTasks(list, counts) })
	})
	shell.recorder.Load()
	shell.registry.Load()

	lifecycle := fyneApp.Lifecycle()
	lifecycle.SetOnExitedForeground(shell.hostHidden)
	lifecycle.SetOnEnteredForeground(shell.hostVisible)

	shell.applyTheme(settings.Theme)
	shell.render(shell.keeper.Snapshot())
	return shell, nil
}

func openStore(fyneApp fyne.App, storageConfig config.StorageConfig) (storage.Store, error) {
	if strings.EqualFold(storageConfig.Backend, storage.BackendPreferences) {
		return storage.NewPreferencesStore(fyneApp.Preferences()), nil
	}
	store, err := storage.Open(storage.Options{Backend: storageConfig.Backend, DataDir: storageConfig.DataDir})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return store, nil
}

func (shell *Shell) buildWindows(settings model.Settings) {
	shell.prefs = preferences.New(shell.app, settings, shell.applySettings, shell.preview)
	shell.stats = statistics.New(shell.app, statistics.Actions{
		ExportName: func() string { return storage.ExportFileName(shell.clock.Now()) },
		Export:     shell.export,
		Validate:   storage.Validate,
		Import:     shell.importData,
		Clear:      shell.clearData,
	})
	shell.main = timer.New(shell.app, shell.keeper, shell.registry, shell.banner.Object(), timer.Callbacks{
		OnPreferences:     shell.prefs.Show,
		OnStatistics:      shell.stats.Show,
		OnToggleTheme:     shell.toggleTheme,
		OnSettingsChanged: shell.saveSettings,
	})
	shell.main.Window().SetMaster()
	shell.main.SetQuote(shell.loader.Random().String())

	icon := resources.MustIcon(resources.IconApp)
	shell.app.SetIcon(icon)
	if desk, ok := shell.app.(desktop.App); ok {
		shell.tray = tray.New(desk, tray.Callbacks{
			OnShow:        shell.main.Show,
			OnToggle:      shell.keeper.Toggle,
			OnReset:       shell.keeper.Reset,
			OnManualBreak: shell.keeper.StartManualBreak,
			OnPreferences: shell.prefs.Show,
			OnStatistics:  shell.stats.Show,
			OnQuit:        shell.app.Quit,
		})
		desk.SetSystemTrayIcon(icon)
	}
}

// Run shows the main window and blocks until the application quits.
func (shell *Shell) Run() {
	shell.Start()
	shell.main.Show()
	shell.app.Run()
	shell.Close()
}

// Start begins forwarding engine events to the windows and loads quotes.
func (shell *Shell) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	shell.cancel = cancel
	events := shell.keeper.Subscribe(eventBuffer)
	go func() {
		defer close(shell.done)
		for event := range events {
			state := event.State
			fyne.Do(func() { shell.render(state) })
		}
	}()
	go func() {
		shell.loader.Load(ctx)
		if ctx.Err() != nil {
			return
		}
		quote := shell.loader.Random().String()
		fyne.Do(func() { shell.main.SetQuote(quote) })
	}()
}

// ShowMain raises the main window.
func (shell *Shell) ShowMain() {
	shell.main.Show()
}

// Close stops the engine and releases the audio device and store.
func (shell *Shell) Close() {
	if shell.cancel != nil {
		shell.cancel()
		shell.cancel = nil
		shell.keeper.Close()
		<-shell.done
	} else {
		shell.keeper.Close()
	}
	if err := shell.audio.Close(); err != nil {
		shell.logger.Warn("close audio", "error", err)
	}
	if shell.ownsStore {
		if err := storage.Close(shell.store); err != nil {
			shell.logger.Warn("close store", "error", err)
		}
		shell.ownsStore = false
	}
}

func (shell *Shell) hostHidden() {
	shell.keeper.OnHostHidden()
	shell.audio.Suspend()
}

func (shell *Shell) hostVisible() {
	shell.keeper.OnHostVisible()
	shell.audio.Resume()
}

func (shell *Shell) settings() model.Settings {
	return shell.keeper.Settings()
}

func (shell *Shell) render(state timekeeper.State) {
	shell.main.Render(state, shell.keeper.Settings())
	if shell.tray != nil {
		shell.tray.Update(state)
	}
}

func (shell *Shell) renderStatistics(statistics model.Statistics) {
	shell.stats.Update(statistics)
	shell.main.SetCompletedToday(statistics.Today.Sessions)
}

func (shell *Shell) showBanner(message notify.Message) {
	shell.banner.Show(message, shell.keeper.Settings().ReducedMotion)
	quote := shell.loader.Random().String()
	fyne.Do(func() { shell.main.SetQuote(quote) })
}

// applySettings is the preferences save handler.
func (shell *Shell) applySettings(settings model.Settings) {
	shell.keeper.UpdateSettings(settings)
	shell.saveSettings(shell.keeper.Settings())
}

// saveSettings persists settings and brings every view in line with them.
func (shell *Shell) saveSettings(settings model.Settings) {
	if err := storage.SaveSettings(shell.store, settings); err != nil {
		shell.logger.Error("persist settings", "error", err)
	}
	shell.prefs.UpdateSettings(settings)
	shell.applyTheme(settings.Theme)
}

func (shell *Shell) toggleTheme() {
	settings := shell.keeper.Settings()
	settings.Theme = settings.NextTheme()
	shell.applySettings(settings)
}

func (shell *Shell) applyTheme(name model.Theme) {
	if current, ok := shell.app.Settings().Theme().(*palette.Theme); ok && current.Name() == name {
		return
	}
	shell.app.Settings().SetTheme(palette.New(name))
}

func (shell *Shell) preview(name string) {
	if err := shell.audio.Play(name); err != nil {
		shell.logger.Warn("preview sound", "sound", name, "error", err)
	}
}

func (shell *Shell) export(writer io.Writer) error {
	data, err := storage.Export(shell.store, shell.clock.Now())
	if err != nil {
		return err
	}
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

func (shell *Shell) importData(data []byte) error {
	if err := storage.Import(shell.store, data, shell.clock.Now(), nil); err != nil {
		return err
	}
	shell.reload()
	return nil
}

func (shell *Shell) clearData() error {
	if err := storage.Clear(shell.store); err != nil {
		return err
	}
	shell.reload()
	return nil
}

// reload rereads every document and restarts the timer from scratch.
func (shell *Shell) reload() {
	settings, err := storage.LoadSettings(shell.store)
	if err != nil {
		shell.logger.Warn("settings unavailable, using defaults", "error", err)
	}
	shell.keeper.UpdateSettings(settings)
	shell.keeper.Reset()
	shell.recorder.Load()
	shell.registry.Load()
	shell.prefs.UpdateSettings(shell.keeper.Settings())
	shell.applyTheme(settings.Theme)
}
