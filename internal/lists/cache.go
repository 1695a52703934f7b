// Package lists maintains locally cached copies of the remote resolver and
// wordlist sources, and drives resolver validation through dnsvalidator.
package lists

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/Perdyx/auto-recon/internal/textio"
)

// Remote list sources. The two resolver lists are mutually exclusive,
// selected by the use_large_resolver_list flag.
const (
	ResolversURL      = "https://raw.githubusercontent.com/trickest/resolvers/main/resolvers.txt"
	ResolversLargeURL = "https://raw.githubusercontent.com/trickest/resolvers/main/resolvers-extended.txt"
	WordlistURL       = "https://wordlists-cdn.assetnote.io/data/manual/best-dns-wordlist.txt"
)

// Cache refreshes cached lists under the lists/ directory.
type Cache struct {
	dir    string
	client *http.Client
}

// NewCache returns a Cache rooted at dir.
func NewCache(dir string) *Cache {
	return &Cache{
		dir:    dir,
		client: &http.Client{Timeout: 120 * time.Second},
	}
}

// Dir returns the cache root.
func (c *Cache) Dir() string { return c.dir }

// ResolversPath returns the cached resolver list path for the selected
// source.
func (c *Cache) ResolversPath(large bool) string {
	name := "resolvers.txt"
	if large {
		name = "resolvers-extended.txt"
	}
	return filepath.Join(c.dir, "trickest", name)
}

// WordlistPath returns the cached bruteforce wordlist path.
func (c *Cache) WordlistPath() string {
	return filepath.Join(c.dir, "assetnote", "best-dns-wordlist.txt")
}

// Refresh fetches url and merges new lines into dest: existing lines are
// retained, duplicates dropped, new lines appended. Safe to call
// repeatedly; a failed fetch leaves dest unchanged.
func (c *Cache) Refresh(url, dest string) (added int, err error) {
	resp, err := c.client.Get(url)
	if err != nil {
		return 0, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("fetch %s: HTTP %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", url, err)
	}

	var lines []string
	for _, l := range strings.Split(string(body), "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) == 0 {
		return 0, fmt.Errorf("fetch %s: empty response", url)
	}

	return textio.AppendUnique(dest, lines)
}

// RefreshResolvers updates the cached resolver list and returns its path.
func (c *Cache) RefreshResolvers(large bool) (string, int, error) {
	url := ResolversURL
	if large {
		url = ResolversLargeURL
	}
	dest := c.ResolversPath(large)
	added, err := c.Refresh(url, dest)
	return dest, added, err
}

// RefreshWordlist updates the cached bruteforce wordlist and returns its
// path.
func (c *Cache) RefreshWordlist() (string, int, error) {
	dest := c.WordlistPath()
	added, err := c.Refresh(WordlistURL, dest)
	return dest, added, err
}
