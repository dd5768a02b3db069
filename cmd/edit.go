package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/theca/internal/notes"
	"github.com/PolarWolf314/theca/internal/ui"
	"github.com/PolarWolf314/theca/internal/utils"
	"github.com/PolarWolf314/theca/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	editTitle  string
	editBody   string
	editStatus string
	editEditor bool
	editStdin  bool
)

func init() {
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "new title")
	editCmd.Flags().StringVarP(&editBody, "body", "b", "", "new body (\"-\" reads stdin)")
	editCmd.Flags().StringVarP(&editStatus, "status", "s", "", "new status (none, started, urgent)")
	editCmd.Flags().BoolVarP(&editEditor, "editor", "e", false, "edit the body in the external editor")
	editCmd.Flags().BoolVar(&editStdin, "stdin", false, "read the new body from stdin")
	editCmd.MarkFlagsMutuallyExclusive("body", "stdin")
}

// resetEditCommandState resets the edit command's global state for testing.
func resetEditCommandState() {
	editTitle = ""
	editBody = ""
	editStatus = ""
	editEditor = false
	editStdin = false
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change the title, body or status of a note",
	Long: `Changes the given fields of a note. Fields without a flag are kept.

Examples:
  theca edit 3 --status started
  theca edit 3 --title "buy oat milk"
  theca edit 3 --editor
  theca edit 3 --body ""`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func runEdit(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting edit command")

	ids, err := utils.ParseIDs(args)
	if err != nil {
		return err
	}

	var fields notes.EditFields
	if cmd.Flags().Changed("title") {
		fields.Title = &editTitle
	}
	if cmd.Flags().Changed("body") || editStdin {
		body, err := readBody(editBody, editStdin)
		if err != nil {
			return err
		}
		fields.Body = &body
	}
	if cmd.Flags().Changed("status") {
		status, err := notes.ParseStatusFlag(editStatus)
		if err != nil {
			return err
		}
		fields.Status = &status
	}

	spinner, cleanup := startSpinner("Editing note...", verbose)
	defer cleanup()

	opts := workflows.EditOptions{Profile: settings.Profile, ID: ids[0], Fields: fields}
	if editEditor {
		opts.Editor = editor(spinner, settings.Profile)
	}

	result, err := workflows.Edit(context.Background(), newWorkspace(spinner), opts)
	if err != nil {
		return fail(spinner, err)
	}

	if !result.Changed {
		spinner.FinalMSG = ui.Warning.Sprint("⚠") + fmt.Sprintf(" Nothing to change for note #%d", ids[0]) + "\n" +
			ui.Info.Sprint("→") + " Use " + ui.Flag.Sprint("--title") + ", " + ui.Flag.Sprint("--body") + ", " +
			ui.Flag.Sprint("--status") + " or " + ui.Flag.Sprint("--editor")
		return nil
	}

	Logger.Infof("Edited note %d in %s", result.Note.ID, result.Profile)
	spinner.FinalMSG = ui.Success.Sprint("✓") + fmt.Sprintf(" Updated note #%d in profile %s",
		result.Note.ID, ui.Highlight.Sprint(result.Profile))
	return nil
}
