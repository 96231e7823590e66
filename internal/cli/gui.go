package cli

import (
	"errors"

	"fyne.io/fyne/v2"
	"github.com/spf13/cobra"

	"pomodoro/internal/config"
	"pomodoro/internal/gui"
	"pomodoro/internal/platform"
)

func (run *runner) runGUI(_ *cobra.Command, _ []string) error {
	guard, err := platform.AcquireSingleInstance(config.AppName)
	if errors.Is(err, platform.ErrAlreadyRunning) {
		run.logger.Info("already running, raising the existing window")
		return platform.Activate(config.AppName)
	}
	if err != nil {
		return err
	}
	defer func() {
		if err := guard.Release(); err != nil {
			run.logger.Warn("release instance lock", "error", err)
		}
	}()

	shell, err := gui.New(gui.Options{Config: run.config, Logger: run.logger})
	if err != nil {
		return err
	}
	go guard.Serve(func() {
		fyne.Do(shell.ShowMain)
	})
	shell.Run()
	return nil
}
