package cmd

import (
	"bytes"
	"context"

	"github.com/PolarWolf314/theca/internal/notes"
	"github.com/PolarWolf314/theca/internal/ui"
	"github.com/PolarWolf314/theca/internal/utils"
	"github.com/PolarWolf314/theca/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	viewCondensed bool
	viewYAML      bool
)

func init() {
	viewCmd.Flags().BoolVarP(&viewCondensed, "condensed", "c", false, "condensed output")
	viewCmd.Flags().BoolVar(&viewYAML, "yaml", false, "output as YAML")
}

// resetViewCommandState resets the view command's global state for testing.
func resetViewCommandState() {
	viewCondensed = false
	viewYAML = false
}

var viewCmd = &cobra.Command{
	Use:     "view <id>",
	Aliases: []string{"show"},
	Short:   "Show a note with its body",
	Long: `Shows a single note with its body. "theca <id>" is a shortcut.

Examples:
  theca view 3
  theca 3
  theca view 3 --yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func runView(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting view command")

	ids, err := utils.ParseIDs(args)
	if err != nil {
		return err
	}

	spinner, cleanup := startSpinner("Loading note...", verbose)
	defer cleanup()

	h, err := workflows.Open(context.Background(), newWorkspace(spinner), settings.Profile)
	if err != nil {
		return fail(spinner, err)
	}
	note, err := h.Profile.Get(ids[0])
	if err != nil {
		return fail(spinner, err)
	}

	var buf bytes.Buffer
	if viewYAML {
		err = ui.WriteYAML(&buf, []notes.Note{note})
	} else {
		err = ui.WriteNote(&buf, note, viewCondensed || settings.Condensed)
	}
	if err != nil {
		return fail(spinner, err)
	}
	spinner.FinalMSG = buf.String()
	return nil
}
