// Package cli provides the command-line interface for yoink.
package cli

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/klauern/yoink/internal/config"
	"github.com/klauern/yoink/internal/logging"
	"github.com/klauern/yoink/internal/model"
	"github.com/klauern/yoink/internal/ui"
)

var (
	// Version is the current version of the application.
	Version = "dev"
	// Commit is the git commit hash.
	Commit = "unknown"
	// BuildDate is the date and time of the build.
	BuildDate = "unknown"
)

// Run executes the CLI application with the given context and arguments.
func Run(ctx context.Context, args []string) error {
	app := &cli.Command{
		Name:      "yoink",
		Usage:     "Pull configuration into a dotfiles directory and push it back out",
		UsageText: "yoink [options] <path>",
		Description: `Synchronize every descriptor found at <path>. A descriptor is a small TOML
   file ending in .yoink that names a resource; the data file next to it, with the
   extension removed, holds the resource's contents.

   Examples:
     yoink dots                 # pull every descriptor in ./dots
     yoink -r dots              # include subdirectories
     yoink push dots/bashrc.yoink`,
		Version: Version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Enable verbose output (info level logging)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug output (debug level logging, implies verbose)",
			},
			&cli.BoolFlag{
				Name:  "no-color",
				Usage: "Disable colored output",
			},
			&cli.BoolFlag{
				Name:  "log-json",
				Usage: "Write log records as JSON",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Path to the configuration file",
			},
			&cli.BoolFlag{
				Name:    "recursive",
				Aliases: []string{"r"},
				Usage:   "Descend into subdirectories",
			},
			&cli.BoolFlag{
				Name:  "chdir",
				Usage: "Change into each descriptor's directory while syncing it",
			},
			&cli.BoolFlag{
				Name:  "push",
				Usage: "Push instead of using the configured default direction",
				Local: true,
			},
		},
		Before: before,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := configFrom(ctx)
			direction := cfg.GetDirection()
			if cmd.Bool("push") {
				direction = model.Push
			}
			return runSync(ctx, cmd, direction)
		},
		Commands: []*cli.Command{
			pullCommand(),
			pushCommand(),
			newCommand(),
			configCommand(),
			versionCommand(),
		},
	}
	return app.Run(ctx, args)
}

// before loads the configuration and sets up colors and logging. Both the
// configuration and the logger travel to command actions through the context.
func before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return ctx, err
	}
	configureColors(cmd, cfg)
	logger := configureLogging(cmd, cfg)
	return logging.NewContext(withConfig(ctx, cfg), logger), nil
}

type configKey struct{}

func withConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// configFrom returns the configuration loaded by the root command, or the defaults.
func configFrom(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok && cfg != nil {
		return cfg
	}
	return config.Default()
}

func loadConfig(cmd *cli.Command) (*config.Config, error) {
	if path := cmd.String("config"); path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

// configureColors sets up color output based on CLI flags and configuration.
func configureColors(cmd *cli.Command, cfg *config.Config) {
	if cmd.Bool("no-color") {
		ui.DisableColors()
		return
	}
	ui.SetColorMode(cfg.Output.Color)
}

// configureLogging sets up the logging level based on CLI flags.
// Without flags only warnings and errors are logged; status lines cover the rest.
func configureLogging(cmd *cli.Command, cfg *config.Config) *slog.Logger {
	opts := logging.DefaultOptions()
	opts.Level = logging.LevelWarn
	opts.JSON = cmd.Bool("log-json")

	if cmd.Bool("debug") {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
	} else if cmd.Bool("verbose") || cfg.Output.Verbose {
		opts.Level = slog.LevelInfo
	}

	logger := logging.New(opts)
	logging.SetDefault(logger)

	logger.Debug("logging configured", slog.String("level", opts.Level.String()))

	return logger
}
