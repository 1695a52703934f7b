package cli

import (
	"fmt"

	"github.com/Perdyx/auto-recon/internal/scope"
	"github.com/Perdyx/auto-recon/internal/textio"
	"github.com/spf13/cobra"
)

var scopeCmd = &cobra.Command{
	Use:   "scope",
	Short: "Manage scope definitions",
}

var scopeNewCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create a new scope with an empty roots file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := scope.NewStore(cfg.ScopeDir())
		if err := store.Create(args[0]); err != nil {
			return err
		}
		fmt.Printf("Created scope %q. Add root domains to %s\n", args[0], store.RootsPath(args[0]))
		return nil
	},
}

var scopeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered scopes",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := scope.NewStore(cfg.ScopeDir())
		scopes, err := store.List()
		if err != nil {
			return err
		}
		if len(scopes) == 0 {
			fmt.Println("No scopes registered. Run 'auto-recon scope new <name>'.")
			return nil
		}
		for _, s := range scopes {
			fmt.Printf("%-24s %d roots\n", s, textio.CountLines(store.RootsPath(s)))
		}
		return nil
	},
}

func init() {
	scopeCmd.AddCommand(scopeNewCmd)
	scopeCmd.AddCommand(scopeListCmd)
}
