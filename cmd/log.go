package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PolarWolf314/theca/internal/audit"
	"github.com/PolarWolf314/theca/internal/workflows"
	"github.com/spf13/cobra"
)

var (
	logLimit     int
	logReverse   bool
	logUser      string
	logOperation string
	logSince     string
	logUntil     string
	logOneline   bool
	logJSON      bool
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "limit", "n", 0, "limit number of entries shown")
	logCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	logCmd.Flags().StringVar(&logUser, "user", "", "filter by system user")
	logCmd.Flags().StringVar(&logOperation, "op", "", "filter by operation type (comma-separated)")
	logCmd.Flags().StringVar(&logSince, "since", "", "show entries after date (YYYY-MM-DD)")
	logCmd.Flags().StringVar(&logUntil, "until", "", "show entries before date (YYYY-MM-DD)")
	logCmd.Flags().BoolVar(&logOneline, "oneline", false, "compact one-line format")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
}

// resetLogCommandState resets the log command's global state for testing.
func resetLogCommandState() {
	logLimit = 0
	logReverse = false
	logUser = ""
	logOperation = ""
	logSince = ""
	logUntil = ""
	logOneline = false
	logJSON = false
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the operation log of the profile folder",
	Long: `Displays the log of changes made to the profiles in the profile folder.

Entries only name profiles and note ids; note contents are never logged.
The log covers every profile unless --profile is given.

Examples:
  theca log                          # View full log
  theca log -n 10                    # Last 10 entries
  theca log --reverse                # Most recent first
  theca log -p work                  # Only the work profile
  theca log --op add,del             # Filter by operation
  theca log --since 2024-01-01       # Filter by date
  theca log --json                   # JSON output`,
	Args: cobra.NoArgs,
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting log command")

	spinner, cleanup := startSpinner("Loading operation log...", verbose)
	defer cleanup()

	opts := workflows.LogOptions{
		Limit:      logLimit,
		Reverse:    logReverse,
		User:       logUser,
		Operations: logOperation,
		Since:      logSince,
		Until:      logUntil,
	}
	if cmd.Flags().Changed("profile") || cmd.Flags().Changed("profile-path") {
		opts.Profile = settings.Profile
	}

	result, err := workflows.Log(context.Background(), newWorkspace(spinner), opts)
	if err != nil {
		return fail(spinner, err)
	}

	Logger.Debugf("Parsed %d entries from the operation log", result.TotalEntriesBeforeFilter)
	Logger.Debugf("After filtering: %d entries", len(result.Entries))

	if len(result.Entries) == 0 {
		if result.TotalEntriesBeforeFilter == 0 {
			spinner.FinalMSG = "No log entries found."
		} else {
			spinner.FinalMSG = "No log entries found matching the filters."
		}
		return nil
	}

	if logJSON {
		out, err := formatLogJSON(result.Entries)
		if err != nil {
			return fail(spinner, err)
		}
		spinner.FinalMSG = out
		return nil
	}

	if logOneline {
		spinner.FinalMSG = formatLogOneline(result.Entries)
		return nil
	}

	spinner.FinalMSG = formatLogDefault(result.Entries)
	return nil
}

func formatLogJSON(entries []audit.Entry) (string, error) {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal entries to JSON: %w", err)
	}
	return string(data), nil
}

func formatLogOneline(entries []audit.Entry) string {
	var b strings.Builder
	for _, e := range entries {
		date := workflows.FormatDate(e.Timestamp)
		details := workflows.FormatDetailsOneline(e)
		fmt.Fprintf(&b, "%s %s %s %s %s\n", date, e.User, e.Operation, e.Profile, details)
	}
	return b.String()
}

func formatLogDefault(entries []audit.Entry) string {
	var b strings.Builder
	for _, e := range entries {
		datetime := workflows.FormatDateTime(e.Timestamp)
		details := workflows.FormatDetails(e)
		fmt.Fprintf(&b, "%-19s  %-12s  %-15s  %-12s  %s\n",
			datetime, e.User, e.Operation, e.Profile, details)
	}
	return b.String()
}
