package cli

import (
	"fmt"

	"github.com/Perdyx/auto-recon/internal/lists"
	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Download or refresh the cached resolver and wordlist files",
	RunE: func(cmd *cobra.Command, args []string) error {
		cache := lists.NewCache(cfg.ListsDir())

		infof("refreshing resolver list")
		path, added, err := cache.RefreshResolvers(cfg.UseLargeResolverList)
		if err != nil {
			warnf("resolvers: %v", err)
		} else {
			fmt.Printf("    %s: %d new lines\n", path, added)
		}

		infof("refreshing bruteforce wordlist")
		path, added, err = cache.RefreshWordlist()
		if err != nil {
			warnf("wordlist: %v", err)
		} else {
			fmt.Printf("    %s: %d new lines\n", path, added)
		}
		return nil
	},
}
