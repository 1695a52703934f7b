package cli

import (
	"fmt"

	"github.com/Perdyx/auto-recon/internal/tools"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check installed external tools and versions",
	RunE: func(cmd *cobra.Command, args []string) error {
		checker := tools.NewChecker()
		statuses := checker.CheckAll()
		defs := tools.All()

		green := color.New(color.FgGreen)
		red := color.New(color.FgRed)
		yellow := color.New(color.FgYellow)

		for i, s := range statuses {
			switch {
			case !s.Installed:
				red.Printf("  ✗ %-14s not installed", s.Name)
				fmt.Printf("  (%s)\n", defs[i].Install)
			case s.Outdated:
				yellow.Printf("  ! %-14s %s (want >= %s)\n", s.Name, s.Version, defs[i].MinVersion)
			default:
				v := s.Version
				if v == "" {
					v = "installed"
				}
				green.Printf("  ✓ %-14s %s\n", s.Name, v)
			}
		}

		if missing := checker.MissingRequired(); len(missing) > 0 {
			fmt.Println()
			yellow.Printf("Missing required tools: %v\n", missing)
		}
		return nil
	},
}
