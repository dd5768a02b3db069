package cmd

import (
	"context"
	"fmt"

	kerrors "github.com/PolarWolf314/theca/internal/errors"
	"github.com/PolarWolf314/theca/internal/ui"
	"github.com/PolarWolf314/theca/internal/utils"
	"github.com/PolarWolf314/theca/internal/workflows"
	"github.com/spf13/cobra"
)

var delCmd = &cobra.Command{
	Use:     "del <id>...",
	Aliases: []string{"delete", "rm"},
	Short:   "Delete notes by id",
	Long: `Deletes one or more notes from the current profile.

Ids that do not exist are reported and skipped; the other notes are still
deleted.

Examples:
  theca del 3
  theca del 3 4 9 --yes`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDel,
}

func runDel(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting del command")

	ids, err := utils.ParseIDs(args)
	if err != nil {
		return err
	}

	spinner, cleanup := startSpinner("Deleting notes...", verbose)
	defer cleanup()

	question := fmt.Sprintf("Delete note %s from profile %s?", utils.FormatIDs(ids), settings.Profile)
	if len(ids) > 1 {
		question = fmt.Sprintf("Delete notes %s from profile %s?", utils.FormatIDs(ids), settings.Profile)
	}
	if err := confirmOrAbort(spinner, question); err != nil {
		return fail(spinner, err)
	}

	result, err := workflows.Delete(context.Background(), newWorkspace(spinner), workflows.DeleteOptions{
		Profile: settings.Profile,
		IDs:     ids,
	})
	if err != nil {
		return fail(spinner, err)
	}

	var msg string
	if len(result.Deleted) > 0 {
		msg = ui.Success.Sprint("✓") + fmt.Sprintf(" Deleted %s from profile %s",
			utils.FormatIDs(result.Deleted), ui.Highlight.Sprint(result.Profile))
	}
	if len(result.NotFound) > 0 {
		if msg != "" {
			msg += "\n"
		}
		msg += ui.Warning.Sprint("⚠") + " Not found: " + utils.FormatIDs(result.NotFound)
	}
	spinner.FinalMSG = msg
	Logger.Infof("Deleted %d notes, %d not found", len(result.Deleted), len(result.NotFound))

	if len(result.Deleted) == 0 {
		return &reportedError{err: fmt.Errorf("%w: %s", kerrors.ErrNoteNotFound, utils.FormatIDs(result.NotFound))}
	}
	return nil
}
