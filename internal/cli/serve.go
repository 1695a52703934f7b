package cli

import (
	"github.com/Perdyx/auto-recon/internal/scope"
	"github.com/Perdyx/auto-recon/internal/server"
	"github.com/Perdyx/auto-recon/internal/storage"
	"github.com/spf13/cobra"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve a read-only JSON view of scopes and scan history",
	RunE: func(cmd *cobra.Command, args []string) error {
		ledger, err := storage.Open(cfg.HistoryDBPath())
		if err != nil {
			return err
		}
		defer ledger.Close()

		infof("serving on http://%s", serveAddr)
		s := server.New(cfg, scope.NewStore(cfg.ScopeDir()), ledger)
		return s.Run(serveAddr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "127.0.0.1:8787", "Listen address")
}
