package cli

import (
	"fmt"

	"github.com/Perdyx/auto-recon/internal/storage"
	"github.com/spf13/cobra"
)

var historySessionID string

var historyCmd = &cobra.Command{
	Use:   "history [scope]",
	Short: "Show past scan sessions from the history ledger",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ledger, err := storage.Open(cfg.HistoryDBPath())
		if err != nil {
			return err
		}
		defer ledger.Close()

		if historySessionID != "" {
			stages, err := ledger.Stages(historySessionID)
			if err != nil {
				return err
			}
			if len(stages) == 0 {
				fmt.Printf("No stage records for session %s\n", historySessionID)
				return nil
			}
			for _, st := range stages {
				status := "ok"
				if st.Error != "" {
					status = st.Error
				}
				fmt.Printf("%d. %-22s %-18s %6d lines  %s\n",
					st.Seq, st.Stage, st.Artifact, st.LineCount, status)
			}
			return nil
		}

		scopeFilter := ""
		if len(args) > 0 {
			scopeFilter = args[0]
		}
		sessions, err := ledger.Sessions(scopeFilter, 50)
		if err != nil {
			return err
		}
		if len(sessions) == 0 {
			fmt.Println("No recorded sessions.")
			return nil
		}
		for _, s := range sessions {
			fmt.Printf("%-40s %-12s %-22s %s\n",
				s.ID, s.Scope, s.StartTime.Local().Format("2006-01-02 15:04:05"), s.Status)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().StringVarP(&historySessionID, "session", "s", "", "Show stage detail for one session")
}
