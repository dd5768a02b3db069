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
	listLimit     int
	listDateSort  bool
	listReverse   bool
	listStatus    string
	listCondensed bool
	listYAML      bool
)

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "show at most this many notes")
	listCmd.Flags().BoolVarP(&listDateSort, "date-sort", "t", false, "sort by last touched instead of id")
	listCmd.Flags().BoolVarP(&listReverse, "reverse", "r", false, "reverse the order")
	listCmd.Flags().StringVarP(&listStatus, "status", "s", "", "only show notes with this status")
	listCmd.Flags().BoolVarP(&listCondensed, "condensed", "c", false, "condensed output")
	listCmd.Flags().BoolVar(&listYAML, "yaml", false, "output as YAML")
}

// resetListCommandState resets the list command's global state for testing.
func resetListCommandState() {
	listLimit = 0
	listDateSort = false
	listReverse = false
	listStatus = ""
	listCondensed = false
	listYAML = false
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the notes of the current profile",
	Long: `Lists the notes of the current profile, ordered by id.

Examples:
  theca list
  theca list --date-sort --reverse --limit 5
  theca list --status urgent
  theca list --yaml`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting list command")

	status, err := parseStatus(listStatus)
	if err != nil {
		return err
	}

	spinner, cleanup := startSpinner("Loading notes...", verbose)
	defer cleanup()

	h, err := workflows.Open(context.Background(), newWorkspace(spinner), settings.Profile)
	if err != nil {
		return fail(spinner, err)
	}

	list := h.Profile.List(notes.ListOptions{
		SortByDate: listDateSort || settings.DateSort,
		Reverse:    listReverse,
		Limit:      listLimit,
		Status:     status,
	})
	Logger.Debugf("Listing %d of %d notes", len(list), h.Profile.Len())

	out, err := renderNotes(list, listCondensed || settings.Condensed, listYAML)
	if err != nil {
		return fail(spinner, err)
	}
	if out == "" {
		out = ui.Info.Sprint("ℹ") + " No notes in profile " + ui.Highlight.Sprint(h.Profile.Name)
	}
	spinner.FinalMSG = out
	return nil
}

// renderNotes formats a note list as a table or YAML. An empty table
// renders as the empty string.
func renderNotes(list []notes.Note, condensed, asYAML bool) (string, error) {
	var buf bytes.Buffer
	if asYAML {
		if err := ui.WriteYAML(&buf, list); err != nil {
			return "", err
		}
		return buf.String(), nil
	}

	if len(list) == 0 {
		return "", nil
	}
	if err := ui.WriteTable(&buf, list, ui.TableOptions{
		Condensed: condensed,
		Width:     utils.TerminalWidth(),
	}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
