package main

import (
	"context"
	"io"

	"speedread/internal/errors"
	"speedread/internal/log"
	"speedread/internal/tui"
	"speedread/internal/watch"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func tuiCmd(opts *options) *cobra.Command {
	var (
		watchDir    string
		noAltScreen bool
	)

	cmd := &cobra.Command{
		Use:   "tui [file]",
		Short: "Read in the terminal",
		Long: `Read in the terminal. Drop a file on the terminal window (most terminals
paste its path), pass it as an argument, or copy it into the --watch
directory. Use the mouse wheel or the arrow keys to change the speed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}

			// The terminal belongs to the UI; logs only go to the log file
			logger := setupLogging(cfg, io.Discard)
			defer logger.Close()

			classifier, err := cfg.Classifier()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			modelOpts := tui.Options{
				Reader:     newReader(ctx, cfg, tui.CellTheme(cfg.ReaderTheme()), logger),
				Classifier: classifier,
			}
			if len(args) > 0 {
				modelOpts.File = args[0]
			}
			log.LogWithFields(log.F("file", modelOpts.File), log.F("watch", watchDir)).Debug("terminal options")

			if watchDir != "" {
				w, err := watch.New(classifier, logger)
				if err != nil {
					return err
				}
				defer w.Stop()
				if err := w.AddDirectory(watchDir); err != nil {
					return err
				}
				if err := w.Start(); err != nil {
					return err
				}
				modelOpts.Arrivals = w.Arrivals()
			}

			programOpts := []tea.ProgramOption{tea.WithMouseCellMotion(), tea.WithContext(ctx)}
			if !noAltScreen {
				programOpts = append(programOpts, tea.WithAltScreen())
			}

			logger.Infof("starting speedread %s in the terminal", version)
			p := tea.NewProgram(tui.New(modelOpts), programOpts...)
			if _, err := p.Run(); err != nil {
				log.LogWithError(err).With(log.F("watch", watchDir)).Error("TUI exited")
				return errors.Wrap(err, "error running TUI")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&watchDir, "watch", "w", "", "directory whose new files are loaded as drops")
	cmd.Flags().BoolVar(&noAltScreen, "no-alt-screen", false, "draw inline instead of on the alternate screen")

	return cmd
}
