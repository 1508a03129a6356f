package main

import (
	"context"
	"fmt"
	"io"

	"speedread/internal/config"
	"speedread/internal/errors"
	"speedread/internal/loader"
	"speedread/internal/log"
	"speedread/internal/reader"

	"github.com/spf13/cobra"
)

// options holds the persistent flags
type options struct {
	cfgFile string
	speed   float64
	debug   bool
	jsonLog bool
}

// NewRootCmd creates the root command. Without a subcommand it opens the
// desktop window.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&options{})
}

func newRootCmd(opts *options) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "speedread",
		Short:   "Read a text file one word at a time",
		Long:    `Speedread shows a dropped text file one word at a time at an adjustable number of words per minute. Scroll to change the speed.`,
		Version: version,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(cmd, opts)
		},
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default is $HOME/.config/speedread/config.yaml)")
	flags.Float64Var(&opts.speed, "speed", 0, "initial speed in words per minute")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	flags.BoolVar(&opts.jsonLog, "json-log", false, "write logs as JSON lines")

	rootCmd.AddCommand(guiCmd(opts))
	rootCmd.AddCommand(tuiCmd(opts))

	return rootCmd
}

// loadConfig reads the configuration and applies flag overrides. A missing
// default config file means defaults; an explicit --config must load.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.cfgFile != "" {
		cfg, err = config.LoadConfigFile(opts.cfgFile)
		if err != nil {
			return nil, err
		}
	} else {
		cfg, err = config.LoadConfig()
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\nUsing default settings.\n", err)
			cfg = config.New()
		}
	}

	flags := cmd.Flags()
	if flags.Changed("speed") {
		cfg.Playback.Speed = opts.speed
	}
	if flags.Changed("debug") {
		cfg.Logging.Debug = opts.debug
	}
	if flags.Changed("json-log") {
		cfg.Logging.JSON = opts.jsonLog
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

// setupLogging configures the package logger from cfg, writing to out.
func setupLogging(cfg *config.Config, out io.Writer) *log.Logger {
	logOpts := []log.Option{log.WithOutput(out)}
	if cfg.Logging.JSON {
		logOpts = append(logOpts, log.WithJSON())
	}
	if cfg.Logging.File != "" {
		logOpts = append(logOpts, log.WithFile(cfg.Logging.File))
	}
	log.Configure(logOpts...)
	log.SetDebug(cfg.Logging.Debug)
	return log.Default()
}

// newReader builds the reader and the loader service it reads files with.
// The loader stops when ctx is done.
func newReader(ctx context.Context, cfg *config.Config, theme reader.Theme, logger *log.Logger) *reader.Reader {
	l := loader.New(ctx, loader.WithLogger(logger))
	return reader.New(l, cfg.PlaybackSettings(), theme, logger)
}
