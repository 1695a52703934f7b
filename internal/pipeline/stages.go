package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Perdyx/auto-recon/internal/exec"
	"github.com/Perdyx/auto-recon/internal/session"
	"github.com/Perdyx/auto-recon/internal/textio"
)

// Discovery runs passive subdomain enumeration with subfinder over the
// session's root domains and merges results into the subdomain list.
type Discovery struct {
	Runner  exec.Runner
	Threads int
}

func (d *Discovery) Name() string     { return "subdomain discovery" }
func (d *Discovery) Artifact() string { return session.SubdomainsFile }

func (d *Discovery) Run(ctx context.Context, sess *session.Session) error {
	args := []string{"-dL", sess.Path(session.RootsFile), "-all", "-silent"}
	if d.Threads > 0 {
		args = append(args, "-t", strconv.Itoa(d.Threads))
	}

	r := d.Runner.Run("subfinder", args, &exec.Options{Ctx: ctx, Timeout: 30 * time.Minute})

	// The subdomain list must exist even when discovery comes up empty;
	// later stages consume it as a valid empty result.
	added, err := textio.AppendUnique(sess.Path(session.SubdomainsFile), exec.Lines(r.Stdout))
	if err != nil {
		return err
	}
	fmt.Printf("    subfinder: %d new subdomains\n", added)
	return r.Error
}

// Bruteforce runs wordlist-driven resolution with shuffledns for each root
// domain independently, merging discoveries into the subdomain list. Roots
// are processed sequentially; shuffledns owns the per-run parallelism.
type Bruteforce struct {
	Runner    exec.Runner
	Wordlist  string
	Resolvers string
	Threads   int
}

func (b *Bruteforce) Name() string     { return "dns bruteforce" }
func (b *Bruteforce) Artifact() string { return session.SubdomainsFile }

func (b *Bruteforce) Run(ctx context.Context, sess *session.Session) error {
	if textio.CountLines(b.Wordlist) == 0 {
		return fmt.Errorf("bruteforce wordlist missing or empty: %s", b.Wordlist)
	}
	if textio.CountLines(b.Resolvers) == 0 {
		return fmt.Errorf("resolver list missing or empty: %s", b.Resolvers)
	}

	roots, err := textio.ReadLines(sess.Path(session.RootsFile))
	if err != nil {
		return err
	}

	var firstErr error
	for _, root := range roots {
		args := []string{
			"-d", root,
			"-w", b.Wordlist,
			"-r", b.Resolvers,
			"-mode", "bruteforce",
			"-silent",
		}
		if b.Threads > 0 {
			args = append(args, "-t", strconv.Itoa(b.Threads))
		}

		r := b.Runner.Run("shuffledns", args, &exec.Options{Ctx: ctx, Timeout: 60 * time.Minute})
		if r.Error != nil && firstErr == nil {
			firstErr = fmt.Errorf("shuffledns %s: %w", root, r.Error)
		}

		added, err := textio.AppendUnique(sess.Path(session.SubdomainsFile), exec.Lines(r.Stdout))
		if err != nil {
			return err
		}
		fmt.Printf("    shuffledns %s: %d new subdomains\n", root, added)
	}
	return firstErr
}

// Resolve filters the subdomain list down to hosts that actually resolve,
// using puredns with the trusted resolver list.
type Resolve struct {
	Runner    exec.Runner
	Resolvers string
	Threads   int
}

func (r *Resolve) Name() string     { return "dns resolution" }
func (r *Resolve) Artifact() string { return session.ResolvedFile }

func (r *Resolve) Run(ctx context.Context, sess *session.Session) error {
	args := []string{"resolve", sess.Path(session.SubdomainsFile), "-q"}
	if r.Resolvers != "" {
		args = append(args, "-r", r.Resolvers)
	}
	if r.Threads > 0 {
		args = append(args, "-t", strconv.Itoa(r.Threads))
	}

	res := r.Runner.Run("puredns", args, &exec.Options{Ctx: ctx, Timeout: 60 * time.Minute})

	resolved := textio.Unique(exec.Lines(res.Stdout))
	if err := textio.WriteLines(sess.Path(session.ResolvedFile), resolved); err != nil {
		return err
	}
	fmt.Printf("    puredns: %d hosts resolved\n", len(resolved))
	return res.Error
}

// dnsxRecord is the subset of dnsx -json output the extraction cares about.
type dnsxRecord struct {
	Host string   `json:"host"`
	A    []string `json:"a"`
}

// Records extracts A records for the resolved hosts with dnsx and flattens
// them to a deduplicated IPv4 set. The intermediate JSON file is deleted
// after extraction.
type Records struct {
	Runner  exec.Runner
	Threads int
}

func (rc *Records) Name() string     { return "record extraction" }
func (rc *Records) Artifact() string { return session.IPsFile }

func (rc *Records) Run(ctx context.Context, sess *session.Session) error {
	args := []string{"-l", sess.Path(session.ResolvedFile), "-a", "-resp", "-json", "-silent"}
	if rc.Threads > 0 {
		args = append(args, "-t", strconv.Itoa(rc.Threads))
	}

	r := rc.Runner.Run("dnsx", args, &exec.Options{Ctx: ctx, Timeout: 30 * time.Minute})

	recordsPath := sess.Path(session.RecordsFile)
	if err := os.WriteFile(recordsPath, []byte(r.Stdout), 0644); err != nil {
		return err
	}
	defer os.Remove(recordsPath)

	ips := extractIPv4s(r.Stdout)
	if err := textio.WriteLines(sess.Path(session.IPsFile), ips); err != nil {
		return err
	}
	fmt.Printf("    dnsx: %d unique IPs\n", len(ips))
	return r.Error
}

// extractIPv4s parses dnsx JSON lines and returns the deduplicated IPv4
// addresses in first-seen order.
func extractIPv4s(out string) []string {
	var ips []string
	seen := make(map[string]bool)
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		var rec dnsxRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			continue
		}
		for _, a := range rec.A {
			ip := net.ParseIP(a)
			if ip == nil || ip.To4() == nil {
				continue
			}
			if !seen[a] {
				seen[a] = true
				ips = append(ips, a)
			}
		}
	}
	return ips
}

// Fingerprint runs an aggressive nmap service/version scan across the
// collected IP set, writing the human-readable report.
type Fingerprint struct {
	Runner exec.Runner
}

func (f *Fingerprint) Name() string     { return "host fingerprinting" }
func (f *Fingerprint) Artifact() string { return session.FingerprintsFile }

func (f *Fingerprint) Run(ctx context.Context, sess *session.Session) error {
	args := []string{"-sV", "-A", "-iL", sess.Path(session.IPsFile)}
	r := f.Runner.Run("nmap", args, &exec.Options{Ctx: ctx, Timeout: 4 * time.Hour})

	// The report is written even when nmap fails, so the session always
	// carries a complete artifact set.
	if err := os.WriteFile(sess.Path(session.FingerprintsFile), []byte(r.Stdout), 0644); err != nil {
		return err
	}

	count := textio.CountLines(sess.Path(session.IPsFile))
	fmt.Printf("    nmap: scanned %d IPs\n", count)
	return r.Error
}

// Options configures Build.
type Options struct {
	Runner        exec.Runner
	Threads       int
	DNSThreads    int
	DNSBruteforce bool
	Wordlist      string
	Resolvers     string
}

// Build assembles the standard stage sequence: discovery, optional
// bruteforce, resolution, record extraction, fingerprinting.
func Build(o Options) *Pipeline {
	stages := []Stage{
		&Discovery{Runner: o.Runner, Threads: o.Threads},
	}
	if o.DNSBruteforce {
		stages = append(stages, &Bruteforce{
			Runner:    o.Runner,
			Wordlist:  o.Wordlist,
			Resolvers: o.Resolvers,
			Threads:   o.DNSThreads,
		})
	}
	stages = append(stages,
		&Resolve{Runner: o.Runner, Resolvers: o.Resolvers, Threads: o.DNSThreads},
		&Records{Runner: o.Runner, Threads: o.DNSThreads},
		&Fingerprint{Runner: o.Runner},
	)
	return New(stages...)
}
