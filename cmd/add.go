package cmd

import (
	"context"
	"fmt"

	"github.com/PolarWolf314/theca/internal/ui"
	"github.com/PolarWolf314/theca/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	addStatus string
	addEditor bool
	addStdin  bool
)

func init() {
	addCmd.Flags().StringVarP(&addStatus, "status", "s", "", "status of the note (none, started, urgent)")
	addCmd.Flags().BoolVarP(&addEditor, "editor", "e", false, "write the body in the external editor")
	addCmd.Flags().BoolVar(&addStdin, "stdin", false, "read the body from stdin")
	addCmd.MarkFlagsMutuallyExclusive("editor", "stdin")
}

// resetAddCommandState resets the add command's global state for testing.
func resetAddCommandState() {
	addStatus = ""
	addEditor = false
	addStdin = false
}

var addCmd = &cobra.Command{
	Use:   "add <title> [body]",
	Short: "Add a note to the current profile",
	Long: `Adds a note to the current profile and prints its id.

The body may be given as the second argument, read from stdin with "-" or
--stdin, or written in your editor with --editor.

Examples:
  theca add "buy milk"
  theca add "write report" "due friday" --status urgent
  echo "long text" | theca add "from a pipe" -
  theca add "thoughts" --editor`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting add command")

	status, err := parseStatus(addStatus)
	if err != nil {
		return err
	}
	opts := workflows.AddOptions{Profile: settings.Profile, Title: args[0]}
	if status != nil {
		opts.Status = *status
	}

	var bodyArg string
	if len(args) == 2 {
		bodyArg = args[1]
	}
	if opts.Body, err = readBody(bodyArg, addStdin); err != nil {
		return err
	}

	spinner, cleanup := startSpinner("Adding note...", verbose)
	defer cleanup()

	if addEditor {
		opts.Editor = editor(spinner, settings.Profile)
	}

	result, err := workflows.Add(context.Background(), newWorkspace(spinner), opts)
	if err != nil {
		return fail(spinner, err)
	}

	Logger.Infof("Added note %d to %s", result.ID, result.Profile)
	spinner.FinalMSG = ui.Success.Sprint("✓") + fmt.Sprintf(" Added note #%d to profile %s",
		result.ID, ui.Highlight.Sprint(result.Profile))
	return nil
}
