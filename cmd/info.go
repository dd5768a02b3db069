package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/PolarWolf314/theca/internal/notes"
	"github.com/PolarWolf314/theca/internal/ui"
	"github.com/PolarWolf314/theca/internal/workflows"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Summarise the current profile",
	Long: `Shows the profile file, whether it is encrypted and how many notes it
holds per status.`,
	Args: cobra.NoArgs,
	RunE: runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting info command")

	spinner, cleanup := startSpinner("Loading profile...", verbose)
	defer cleanup()

	result, err := workflows.Info(context.Background(), newWorkspace(spinner), settings.Profile)
	if err != nil {
		return fail(spinner, err)
	}

	spinner.FinalMSG = formatInfo(result)
	return nil
}

func formatInfo(r *workflows.InfoResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", ui.Highlight.Sprint(r.Name), ui.Path.Sprint(r.Path))

	encrypted := "no"
	if r.Encrypted {
		encrypted = "yes"
		if r.Seal != nil {
			encrypted += fmt.Sprintf(" (argon2id t=%d m=%dKiB p=%d)", r.Seal.KDF.Time, r.Seal.KDF.Memory, r.Seal.KDF.Threads)
		}
	}
	fmt.Fprintf(&b, "  %-14s %s\n", "Encrypted:", encrypted)
	fmt.Fprintf(&b, "  %-14s %d\n", "Notes:", r.Stats.Total)
	for _, st := range notes.Statuses {
		fmt.Fprintf(&b, "  %-14s %d\n", st.String()+":", r.Stats.ByStatus[st])
	}
	fmt.Fprintf(&b, "  %-14s %d\n", "Last id:", r.LastID)
	if r.Stats.Oldest != nil {
		fmt.Fprintf(&b, "  %-14s #%d %s\n", "Oldest:", r.Stats.Oldest.ID, r.Stats.Oldest.LastTouched.Format(ui.TimeLayout))
	}
	if r.Stats.Newest != nil {
		fmt.Fprintf(&b, "  %-14s #%d %s\n", "Newest:", r.Stats.Newest.ID, r.Stats.Newest.LastTouched.Format(ui.TimeLayout))
	}
	return b.String()
}
