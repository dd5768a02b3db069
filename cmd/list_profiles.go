package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PolarWolf314/theca/internal/ui"
	"github.com/PolarWolf314/theca/internal/workflows"
	"github.com/spf13/cobra"
)

var listProfilesJSON bool

func init() {
	listProfilesCmd.Flags().BoolVar(&listProfilesJSON, "json", false, "output as JSON")
}

// resetListProfilesCommandState resets the list-profiles command's global state for testing.
func resetListProfilesCommandState() {
	listProfilesJSON = false
}

var listProfilesCmd = &cobra.Command{
	Use:   "list-profiles [pattern]",
	Short: "List the profiles in the profile folder",
	Long: `Lists the profiles in the profile folder. The optional pattern filters
profile names with glob syntax, including ** and {a,b}.

Examples:
  theca list-profiles
  theca list-profiles "work*"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runListProfiles,
}

func runListProfiles(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting list-profiles command")

	pattern := ""
	if len(args) == 1 {
		pattern = args[0]
	}

	spinner, cleanup := startSpinner("Listing profiles...", verbose)
	defer cleanup()

	infos, err := workflows.ListProfiles(context.Background(), newWorkspace(spinner), pattern)
	if err != nil {
		return fail(spinner, err)
	}

	if listProfilesJSON {
		data, err := json.MarshalIndent(infos, "", "  ")
		if err != nil {
			return fail(spinner, fmt.Errorf("failed to marshal profiles to JSON: %w", err))
		}
		spinner.FinalMSG = string(data)
		return nil
	}

	if len(infos) == 0 {
		spinner.FinalMSG = ui.Info.Sprint("ℹ") + " No profiles found in " + ui.Path.Sprint(settings.ProfilesFolder)
		return nil
	}

	var b strings.Builder
	for _, info := range infos {
		line := info.Name
		switch {
		case info.Legacy:
			line += " " + ui.Warning.Sprint("(legacy format)")
		case info.Encrypted:
			line += " " + ui.Muted.Sprint("encrypted")
		}
		if info.Name == settings.Profile && !info.Legacy {
			line = ui.Success.Sprint("*") + " " + line
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}
	spinner.FinalMSG = b.String()
	return nil
}
