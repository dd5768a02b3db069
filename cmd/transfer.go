package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/PolarWolf314/theca/internal/ui"
	"github.com/PolarWolf314/theca/internal/utils"
	"github.com/PolarWolf314/theca/internal/workflows"
	"github.com/spf13/cobra"
)

var transferCmd = &cobra.Command{
	Use:   "transfer <id> <target-profile>",
	Short: "Move a note to another profile",
	Long: `Moves a note from the current profile to another profile, where it gets
a new id. The target profile is written first, so a failure can leave the
note in both profiles but never in neither.

Examples:
  theca transfer 3 work
  theca -p work transfer 7 default`,
	Args: cobra.ExactArgs(2),
	RunE: runTransfer,
}

func runTransfer(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting transfer command")

	ids, err := utils.ParseIDs(args[:1])
	if err != nil {
		return err
	}

	spinner, cleanup := startSpinner("Transferring note...", verbose)
	defer cleanup()

	result, err := workflows.Transfer(context.Background(), newWorkspace(spinner), workflows.TransferOptions{
		Source: settings.Profile,
		Target: args[1],
		ID:     ids[0],
	})
	var dup *workflows.DuplicatedError
	if errors.As(err, &dup) {
		spinner.FinalMSG = ui.Warning.Sprint("⚠") + " " + dup.Error() + "\n" +
			ui.Info.Sprint("→") + " Delete it by hand with " + ui.Code.Sprintf("theca -p %s del %d", dup.Result.Source, dup.Result.SourceID)
		return &reportedError{err: err}
	}
	if err != nil {
		return fail(spinner, err)
	}

	Logger.Infof("Moved note %d from %s to %s as %d", result.SourceID, result.Source, result.Target, result.TargetID)
	spinner.FinalMSG = ui.Success.Sprint("✓") + fmt.Sprintf(" Moved note #%d to profile %s as #%d",
		result.SourceID, ui.Highlight.Sprint(result.Target), result.TargetID)
	return nil
}
