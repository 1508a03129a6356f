package main

import (
	"context"
	"os/signal"
	"syscall"

	"speedread/internal/errors"
	"speedread/internal/gui"
	"speedread/internal/log"

	"github.com/spf13/cobra"
)

func guiCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "gui",
		Short: "Open the desktop window (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(cmd, opts)
		},
	}
}

// runGUI opens the window and blocks until it is closed
func runGUI(cmd *cobra.Command, opts *options) error {
	if !gui.IsGUIAvailable() {
		return errors.New("this build has no GUI; use 'speedread tui'")
	}

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	logger := setupLogging(cfg, cmd.ErrOrStderr())
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	r := newReader(ctx, cfg, cfg.ReaderTheme(), logger)
	log.Infof("starting speedread %s", version)
	if err := gui.Run(ctx, cfg, r, logger); err != nil {
		log.LogError(err, "GUI exited")
		return errors.Wrap(err, "error running GUI")
	}
	return nil
}
