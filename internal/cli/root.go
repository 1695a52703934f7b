package cli

import (
	"fmt"

	"github.com/Perdyx/auto-recon/internal/config"
	"github.com/Perdyx/auto-recon/internal/version"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "auto-recon [scope]",
		Short: "Subdomain enumeration and host fingerprinting for a named scope",
		Long: `auto-recon chains subfinder, shuffledns, puredns, dnsx and nmap into a
sequential enumeration pipeline. Scopes live under scope/<name>/roots.txt;
each run produces a timestamped session directory under scans/.`,
		Args:              cobra.MaximumNArgs(1),
		RunE:              runScan,
		PersistentPreRunE: loadConfig,
		SilenceUsage:      true,
	}
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("base-dir", "", "Working root holding scope/, scans/ and lists/ (default: ~/auto-recon)")
	pf.Bool("debug", false, "Per-tool timing logs; purges prior sessions for the scope")
	pf.Bool("bruteforce", false, "Enable the DNS bruteforce stage")
	pf.Bool("validate-resolvers", false, "Regenerate the validated resolver list before scanning")
	pf.Bool("strict-validation", false, "Treat resolver validation failure as fatal")
	pf.Bool("large-resolvers", false, "Use the extended trickest resolver list")
	pf.Int("threads", 0, "Concurrency for discovery tools (0 = config default)")
	pf.Int("dns-threads", 0, "Concurrency for DNS tools (0 = config default)")

	rootCmd.AddCommand(scopeCmd)
	rootCmd.AddCommand(installCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig builds the effective config: file and env first, then any
// flags the user actually set.
func loadConfig(cmd *cobra.Command, args []string) error {
	// A missing template is not fatal: defaults and flags still apply.
	if err := config.EnsureConfigExists(); err != nil {
		warnf("could not write config template: %v", err)
	}

	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}

	f := cmd.Flags()
	if f.Changed("base-dir") {
		cfg.BaseDir, _ = f.GetString("base-dir")
	}
	if f.Changed("debug") {
		cfg.Debug, _ = f.GetBool("debug")
	}
	if f.Changed("bruteforce") {
		cfg.DNSBruteforce, _ = f.GetBool("bruteforce")
	}
	if f.Changed("validate-resolvers") {
		cfg.ValidateResolversOnStart, _ = f.GetBool("validate-resolvers")
	}
	if f.Changed("strict-validation") {
		cfg.StrictResolverValidation, _ = f.GetBool("strict-validation")
	}
	if f.Changed("large-resolvers") {
		cfg.UseLargeResolverList, _ = f.GetBool("large-resolvers")
	}
	if f.Changed("threads") {
		cfg.Threads, _ = f.GetInt("threads")
	}
	if f.Changed("dns-threads") {
		cfg.DNSThreads, _ = f.GetInt("dns-threads")
	}
	return nil
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func printBanner() {
	cyan := color.New(color.FgCyan, color.Bold)
	gray := color.New(color.FgHiBlack)

	cyan.Println(`
   ___ ___  ______________      ________________  ____
  / _ '/ / / /_  __/ __ \______/ ___/ __/ ___/ __ \/ __ \
 / __ / /_/ / / / / /_/ /_____/ /  / _// /__/ /_/ / / / /
 \_,_/\____/ /_/  \____/     /_/  /___/\___/\____/_/ /_/`)
	gray.Printf("   subdomain enumeration pipeline  v%s\n\n", version.Version)
}

func warnf(format string, a ...interface{}) {
	color.New(color.FgYellow).Printf("[!] "+format+"\n", a...)
}

func infof(format string, a ...interface{}) {
	fmt.Printf("[*] "+format+"\n", a...)
}
