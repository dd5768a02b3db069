package cmd

import (
	"context"

	"github.com/PolarWolf314/theca/internal/notes"
	"github.com/PolarWolf314/theca/internal/ui"
	"github.com/PolarWolf314/theca/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	searchBody       bool
	searchRegex      bool
	searchIgnoreCase bool
	searchLimit      int
	searchStatus     string
	searchDateSort   bool
	searchReverse    bool
	searchCondensed  bool
	searchYAML       bool
)

func init() {
	searchCmd.Flags().BoolVarP(&searchBody, "body", "b", false, "search note bodies instead of titles")
	searchCmd.Flags().BoolVarP(&searchRegex, "regex", "x", false, "treat the pattern as a regular expression")
	searchCmd.Flags().BoolVarP(&searchIgnoreCase, "ignore-case", "i", false, "match case-insensitively")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "show at most this many notes")
	searchCmd.Flags().StringVarP(&searchStatus, "status", "s", "", "only show notes with this status")
	searchCmd.Flags().BoolVarP(&searchDateSort, "date-sort", "t", false, "sort by last touched instead of id")
	searchCmd.Flags().BoolVarP(&searchReverse, "reverse", "r", false, "reverse the order")
	searchCmd.Flags().BoolVarP(&searchCondensed, "condensed", "c", false, "condensed output")
	searchCmd.Flags().BoolVar(&searchYAML, "yaml", false, "output as YAML")
}

// resetSearchCommandState resets the search command's global state for testing.
func resetSearchCommandState() {
	searchBody = false
	searchRegex = false
	searchIgnoreCase = false
	searchLimit = 0
	searchStatus = ""
	searchDateSort = false
	searchReverse = false
	searchCondensed = false
	searchYAML = false
}

var searchCmd = &cobra.Command{
	Use:   "search <pattern>",
	Short: "Search notes by title or body",
	Long: `Lists the notes whose title, or body with --body, contains the pattern.

With --regex the pattern is a Go regular expression (RE2 syntax).

Examples:
  theca search milk
  theca search "^deploy" --regex
  theca search todo --body --ignore-case`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting search command")

	status, err := parseStatus(searchStatus)
	if err != nil {
		return err
	}

	spinner, cleanup := startSpinner("Searching notes...", verbose)
	defer cleanup()

	h, err := workflows.Open(context.Background(), newWorkspace(spinner), settings.Profile)
	if err != nil {
		return fail(spinner, err)
	}

	list, err := h.Profile.Search(notes.SearchOptions{
		Pattern:    args[0],
		InBody:     searchBody,
		Regex:      searchRegex,
		IgnoreCase: searchIgnoreCase,
		ListOptions: notes.ListOptions{
			SortByDate: searchDateSort || settings.DateSort,
			Reverse:    searchReverse,
			Limit:      searchLimit,
			Status:     status,
		},
	})
	if err != nil {
		return fail(spinner, err)
	}
	Logger.Debugf("%d notes match %q", len(list), args[0])

	out, err := renderNotes(list, searchCondensed || settings.Condensed, searchYAML)
	if err != nil {
		return fail(spinner, err)
	}
	if out == "" {
		out = ui.Info.Sprint("ℹ") + " No notes match " + ui.Highlight.Sprint(args[0])
	}
	spinner.FinalMSG = out
	return nil
}
