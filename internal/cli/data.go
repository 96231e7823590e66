package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"pomodoro/internal/core/stats"
	"pomodoro/internal/storage"
)

func (run *runner) exportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export [file]",
		Short: "Export settings, statistics and tasks as JSON",
		Long:  "Export writes every document to file, to a dated file in the current directory when omitted, or to stdout for \"-\".",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run.withStore(func(store storage.Store) error {
				now := time.Now()
				data, err := storage.Export(store, now)
				if err != nil {
					return err
				}
				target := storage.ExportFileName(now)
				if len(args) == 1 {
					target = args[0]
				}
				if target == "-" {
					_, err := cmd.OutOrStdout().Write(append(data, '\n'))
					return err
				}
				if err := os.WriteFile(target, data, 0o644); err != nil {
					return fmt.Errorf("write export: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", target)
				return nil
			})
		},
	}
}

func (run *runner) importCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a previously exported file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read import: %w", err)
			}
			return run.withStore(func(store storage.Store) error {
				confirm := func() bool {
					return yes || run.ask(cmd, "This will overwrite your current data. Continue?")
				}
				if err := storage.Import(store, data, time.Now(), confirm); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Import complete.")
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Overwrite without asking")
	return cmd
}

func (run *runner) clearCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all settings, statistics and tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes && !run.ask(cmd, "This will delete all your data including statistics and tasks. This cannot be undone!") {
				return storage.ErrImportCancelled
			}
			return run.withStore(func(store storage.Store) error {
				if err := storage.Clear(store); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "All data cleared.")
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Clear without asking")
	return cmd
}

func (run *runner) statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show today's and this week's statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run.withStore(func(store storage.Store) error {
				recorder := stats.NewRecorder(store, nil, run.logger)
				recorder.Load()
				statistics := recorder.Snapshot()

				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "Today (%s)\n", statistics.Today.Date)
				fmt.Fprintf(out, "  Sessions:     %d\n", statistics.Today.Sessions)
				fmt.Fprintf(out, "  Focus time:   %s\n", stats.FocusTimeLabel(statistics.Today.FocusMinutes))
				fmt.Fprintf(out, "  Breaks:       %d\n", statistics.Today.Breaks)
				fmt.Fprintf(out, "  Productivity: %s\n", stats.Productivity(statistics.Today))
				fmt.Fprintln(out, "This week")
				fmt.Fprintf(out, "  Sessions:     %d\n", statistics.Weekly.Sessions)
				fmt.Fprintf(out, "  Focus time:   %s\n", stats.FocusTimeLabel(statistics.Weekly.FocusMinutes))
				fmt.Fprintf(out, "  Breaks:       %d\n", statistics.Weekly.Breaks)

				recent := stats.Recent(statistics, stats.RecentLimit, time.Local)
				if len(recent) == 0 {
					fmt.Fprintln(out, "No sessions recorded yet.")
					return nil
				}
				fmt.Fprintf(out, "Recent sessions (%d)\n", len(recent))
				for _, session := range recent {
					fmt.Fprintf(out, "  %s  %s %d min\n", session.Time, session.Icon, session.Minutes)
				}
				return nil
			})
		},
	}
}

// ask prompts on the command's input and reports a yes answer.
func (run *runner) ask(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", question)
	answer, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
