package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"

	"github.com/klauern/yoink/internal/logging"
	"github.com/klauern/yoink/internal/model"
	"github.com/klauern/yoink/internal/progress"
	"github.com/klauern/yoink/internal/sync"
	"github.com/klauern/yoink/internal/ui"
)

func pullCommand() *cli.Command {
	return &cli.Command{
		Name:      "pull",
		Usage:     "Copy resources into their data files",
		UsageText: "yoink pull [options] <path>",
		Description: `Read every resource named by the descriptors at <path> and write its
   contents into the data file next to the descriptor.

   Examples:
     yoink pull dots
     yoink pull -r dots
     yoink pull dots/dconf/user.yoink`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runSync(ctx, cmd, model.Pull)
		},
	}
}

func pushCommand() *cli.Command {
	return &cli.Command{
		Name:      "push",
		Usage:     "Write data files back to their resources",
		UsageText: "yoink push [options] <path>",
		Description: `Write the contents of each data file at <path> back to the resource its
   descriptor names. Styles that cannot be written (dconf) fail per descriptor.

   Examples:
     yoink push dots/bashrc.yoink
     yoink push -r dots`,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runSync(ctx, cmd, model.Push)
		},
	}
}

// runSync syncs the single path argument in direction, printing one status line
// per descriptor.
func runSync(ctx context.Context, cmd *cli.Command, direction model.Direction) error {
	args := cmd.Args()
	if args.Len() != 1 {
		return errors.New("expected exactly one argument: <path>")
	}
	path := args.First()

	cfg := configFrom(ctx)
	recursive := cmd.Bool("recursive") || cfg.Sync.Recursive
	changeDir := cmd.Bool("chdir") || cfg.Sync.ChangeDir

	bar := progress.New(progress.Options{
		Max:         -1,
		Description: ui.Title(direction.String()) + "ing",
		Disabled:    !cfg.Output.Progress,
	})

	opts := sync.DefaultOptions()
	opts.Extension = cfg.GetExtension()
	opts.ChangeDir = changeDir
	opts.OnResult = func(fr sync.FileResult) {
		_ = bar.Clear()
		if fr.Success() {
			fmt.Println(ui.Synced(direction.PastTense(), fr.Descriptor))
		} else {
			fmt.Println(ui.SyncFailed(fr.Descriptor, sync.Cause(fr.Error)))
		}
		_ = bar.Add(1)
	}
	opts.OnSkip = func(skipped, reason string) {
		_ = bar.Clear()
		fmt.Println(ui.StatusSkipped(fmt.Sprintf("%s (%s)", skipped, reason)))
	}

	log := logging.WithContext(ctx).With(
		logging.Path(path),
		logging.Direction(direction.String()),
	)
	log.Debug("starting sync", "recursive", recursive, "chdir", changeDir)

	done := logging.Timer(direction.String())
	result, err := sync.New(afero.NewOsFs(), opts).Run(path, direction, recursive)
	_ = bar.Finish()
	done()

	if result != nil {
		log.Info("sync finished",
			logging.Count(result.TotalProcessed()),
			slog.Int("failed", result.Failures()),
		)
	}

	var be *sync.BatchError
	if errors.As(err, &be) && result != nil {
		fmt.Println()
		fmt.Print(result.Summary())
	}
	return err
}
