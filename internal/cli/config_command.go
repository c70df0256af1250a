package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/klauern/yoink/internal/config"
	"github.com/klauern/yoink/internal/ui"
)

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage yoink configuration",
		Commands: []*cli.Command{
			configShowCommand(),
			configPathCommand(),
			configInitCommand(),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return showConfig(configFrom(ctx), "yaml", configSource(cmd))
		},
	}
}

func configShowCommand() *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Display the effective configuration",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Value:   "yaml",
				Usage:   "Output format (yaml, json)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return showConfig(configFrom(ctx), cmd.String("format"), configSource(cmd))
		},
	}
}

func configPathCommand() *cli.Command {
	return &cli.Command{
		Name:  "path",
		Usage: "Print the configuration file path",
		Action: func(_ context.Context, _ *cli.Command) error {
			fmt.Println(config.FilePath())
			return nil
		},
	}
}

func configInitCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write a configuration file with default values",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "Overwrite an existing configuration file",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			path := config.FilePath()
			if config.Exists() && !cmd.Bool("force") {
				return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
			}
			if err := config.Default().SaveToPath(path); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			fmt.Println(ui.StatusSuccess(fmt.Sprintf("Created config file: %s", path)))
			return nil
		},
	}
}

// configSource returns the file the effective configuration was read from, or "".
func configSource(cmd *cli.Command) string {
	if path := cmd.String("config"); path != "" {
		return path
	}
	if config.Exists() {
		return config.FilePath()
	}
	return ""
}

func showConfig(cfg *config.Config, format, source string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(cfg)
	case "yaml", "":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Println("# yoink configuration")
		if source != "" {
			fmt.Printf("# Loaded from: %s\n", source)
		} else {
			fmt.Println("# Using default configuration (no config file)")
		}
		fmt.Print(string(data))
		return nil
	default:
		return fmt.Errorf("unsupported format %q (valid: yaml, json)", format)
	}
}
