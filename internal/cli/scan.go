package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/Perdyx/auto-recon/internal/debug"
	"github.com/Perdyx/auto-recon/internal/exec"
	"github.com/Perdyx/auto-recon/internal/lists"
	"github.com/Perdyx/auto-recon/internal/pipeline"
	"github.com/Perdyx/auto-recon/internal/scope"
	"github.com/Perdyx/auto-recon/internal/session"
	"github.com/Perdyx/auto-recon/internal/storage"
	"github.com/Perdyx/auto-recon/internal/textio"
	"github.com/Perdyx/auto-recon/internal/tools"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func runScan(cmd *cobra.Command, args []string) error {
	printBanner()

	if cfg.Debug {
		debug.Enable()
	}

	store := scope.NewStore(cfg.ScopeDir())
	firstRun, err := store.EnsureInitialized(os.Stdin, os.Stdout)
	if err != nil {
		return err
	}
	if firstRun {
		// First-run setup prompt already told the user what to do next.
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("scope argument required: auto-recon <scope>")
	}
	scopeID := args[0]

	// Scope must exist before any session directory is created.
	roots, err := store.LoadRoots(scopeID)
	if err != nil {
		return err
	}
	if len(roots) == 0 {
		warnf("scope %s has no root domains in %s", scopeID, store.RootsPath(scopeID))
	}

	checker := tools.NewChecker()
	if missing := checker.MissingRequired(); len(missing) > 0 {
		warnf("missing tools: %v (run 'auto-recon check')", missing)
	}

	// Fresh input lists. A failed refresh is logged only; the cached copy,
	// if any, keeps the scan going.
	cache := lists.NewCache(cfg.ListsDir())
	infof("refreshing resolver list")
	resolvers, added, err := cache.RefreshResolvers(cfg.UseLargeResolverList)
	if err != nil {
		warnf("resolver refresh failed: %v (using cached copy)", err)
	} else {
		fmt.Printf("    %d new resolvers\n", added)
	}

	wordlist := ""
	if cfg.DNSBruteforce {
		infof("refreshing bruteforce wordlist")
		var wlAdded int
		wordlist, wlAdded, err = cache.RefreshWordlist()
		if err != nil {
			warnf("wordlist refresh failed: %v (using cached copy)", err)
		} else {
			fmt.Printf("    %d new words\n", wlAdded)
		}
	}

	runner := exec.System{}

	if cfg.ValidateResolversOnStart {
		infof("validating resolvers")
		v := lists.NewValidator(runner, cfg.ListsDir())
		validated, err := v.Validate(resolvers, cfg.DNSThreads)
		if err != nil {
			if cfg.StrictResolverValidation {
				return fmt.Errorf("resolver validation: %w", err)
			}
			warnf("resolver validation failed, continuing with raw list: %v", err)
		} else {
			resolvers = validated
		}
	}

	sess, err := session.Begin(cfg.ScansDir(), scopeID, store.RootsPath(scopeID), cfg.Debug)
	if err != nil {
		return err
	}
	infof("session %s (%d root domains)", sess.ID, len(roots))

	ledger, err := storage.Open(cfg.HistoryDBPath())
	if err != nil {
		warnf("history ledger unavailable: %v", err)
		ledger = nil
	} else {
		defer ledger.Close()
		if err := ledger.BeginSession(sess.ID, scopeID, sess.StartTime); err != nil {
			warnf("record session: %v", err)
		}
	}

	p := pipeline.Build(pipeline.Options{
		Runner:        runner,
		Threads:       cfg.Threads,
		DNSThreads:    cfg.DNSThreads,
		DNSBruteforce: cfg.DNSBruteforce,
		Wordlist:      wordlist,
		Resolvers:     resolvers,
	})
	results := p.Run(cmd.Context(), sess)

	status := "completed"
	for i, res := range results {
		if res.Err != nil {
			status = "completed_with_errors"
		}
		if ledger != nil {
			count := textio.CountLines(sess.Path(res.Artifact))
			if err := ledger.RecordStage(sess.ID, i+1, res.Stage, res.Artifact, count, res.Err); err != nil {
				warnf("record stage %s: %v", res.Stage, err)
			}
		}
	}

	elapsed := sess.Close()
	if ledger != nil {
		if err := ledger.CloseSession(sess.ID, status, time.Now()); err != nil {
			warnf("close session record: %v", err)
		}
	}

	debug.Summary()
	color.New(color.FgGreen, color.Bold).Printf("\n[+] Scan %s finished in %s\n",
		sess.ID, session.FormatElapsed(elapsed))
	return nil
}
