package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"

	"github.com/klauern/yoink/internal/descriptor"
	"github.com/klauern/yoink/internal/logging"
	"github.com/klauern/yoink/internal/model"
	"github.com/klauern/yoink/internal/ui"
)

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "new",
		Usage: "Create a descriptor for a resource",
		UsageText: `yoink new <descriptor> --resource <path> [options]
   yoink new dots/bashrc --resource ~/.bashrc
   yoink new dots/dconf --style dconf --resource ~/.config/dconf/user --exclude /org/gnome/shell/`,
		Description: `Write a descriptor file. The extension is added when <descriptor> does not
   already end in it. Relative resource paths are resolved against the descriptor's
   directory when syncing.

   Styles:
     bytes  Raw file contents, copied verbatim
     dconf  dconf settings database, serialized as 'key = value' lines (pull only)`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "style",
				Aliases: []string{"s"},
				Value:   string(model.StyleBytes),
				Usage:   "Resource style (bytes, dconf)",
			},
			&cli.StringFlag{
				Name:     "resource",
				Aliases:  []string{"p"},
				Usage:    "Path of the resource to sync",
				Required: true,
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "Key prefix to leave out of a dconf pull (repeatable)",
			},
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "Overwrite an existing descriptor",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return errors.New("expected exactly one argument: <descriptor>")
			}
			cfg := configFrom(ctx)
			path := descriptorPath(cmd.Args().First(), cfg.GetExtension())

			styleCfg, err := styleConfig(cmd.String("style"), cmd.String("resource"), cmd.StringSlice("exclude"))
			if err != nil {
				return err
			}

			if err := descriptor.Write(afero.NewOsFs(), path, styleCfg, cmd.Bool("force")); err != nil {
				return fmt.Errorf("failed to write descriptor: %w", err)
			}

			logging.Info("created descriptor",
				logging.Descriptor(path),
				logging.Style(styleCfg.Style().String()),
				logging.Resource(styleCfg.ResourcePath()),
			)
			fmt.Println(ui.StatusSuccess(fmt.Sprintf("Created '%s'", path)))
			fmt.Printf("  Data file: %s\n", model.AssociatedPath(path))
			return nil
		},
	}
}

// descriptorPath appends the descriptor extension unless name already carries it.
func descriptorPath(name, ext string) string {
	if descriptor.HasExtension(name, ext) {
		return name
	}
	return name + "." + ext
}

func styleConfig(style, resource string, exclude []string) (model.StyleConfig, error) {
	st, err := model.ParseStyle(style)
	if err != nil {
		return nil, err
	}

	switch st {
	case model.StyleDconf:
		return model.DconfConfig{Path: resource, Exclude: exclude}, nil
	default:
		if len(exclude) > 0 {
			fmt.Println(ui.StatusWarning(fmt.Sprintf("--exclude is ignored for the %s style", st)))
		}
		return model.BytesConfig{Path: resource}, nil
	}
}
