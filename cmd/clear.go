package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/theca/internal/ui"
	"github.com/PolarWolf314/theca/internal/workflows"
	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every note of the current profile",
	Long: `Deletes every note of the current profile. Note ids are not reused
afterwards.

Asks for confirmation unless --yes is given.`,
	Args: cobra.NoArgs,
	RunE: runClear,
}

func runClear(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting clear command")

	spinner, cleanup := startSpinner("Clearing profile...", verbose)
	defer cleanup()

	if err := confirmOrAbort(spinner, fmt.Sprintf("Delete every note in profile %s?", settings.Profile)); err != nil {
		return fail(spinner, err)
	}

	result, err := workflows.Clear(context.Background(), newWorkspace(spinner), settings.Profile)
	if err != nil {
		return fail(spinner, err)
	}

	Logger.Infof("Removed %d notes from %s", result.Removed, result.Profile)
	spinner.FinalMSG = ui.Success.Sprint("✓") + fmt.Sprintf(" Removed %d notes from profile %s",
		result.Removed, ui.Highlight.Sprint(result.Profile))
	return nil
}
