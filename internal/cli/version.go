package cli

import (
	"fmt"

	"github.com/Perdyx/auto-recon/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the auto-recon version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("auto-recon v%s\n", version.Version)
	},
}
