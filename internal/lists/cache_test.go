package lists

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/Perdyx/auto-recon/internal/textio"
)

func TestRefreshMergesAndIsIdempotent(t *testing.T) {
	body := "1.1.1.1\n8.8.8.8\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer srv.Close()

	cache := NewCache(t.TempDir())
	dest := filepath.Join(cache.Dir(), "trickest", "resolvers.txt")

	added, err := cache.Refresh(srv.URL, dest)
	if err != nil {
		t.Fatal(err)
	}
	if added != 2 {
		t.Fatalf("added = %d, want 2", added)
	}

	// Same content again: no new lines, file unchanged.
	added, err = cache.Refresh(srv.URL, dest)
	if err != nil {
		t.Fatal(err)
	}
	if added != 0 {
		t.Fatalf("second refresh added = %d, want 0", added)
	}

	// New upstream lines are appended after the existing ones.
	body = "8.8.8.8\n9.9.9.9\n"
	if _, err := cache.Refresh(srv.URL, dest); err != nil {
		t.Fatal(err)
	}
	got, _ := textio.ReadLines(dest)
	want := []string{"1.1.1.1", "8.8.8.8", "9.9.9.9"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("merged list = %v, want %v", got, want)
	}
}

func TestRefreshFailureLeavesDestinationUnchanged(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	cache := NewCache(t.TempDir())
	dest := filepath.Join(cache.Dir(), "resolvers.txt")
	if err := textio.WriteLines(dest, []string{"1.1.1.1"}); err != nil {
		t.Fatal(err)
	}
	before, _ := os.ReadFile(dest)

	if _, err := cache.Refresh(srv.URL, dest); err == nil {
		t.Fatal("expected error for HTTP 500")
	}

	after, _ := os.ReadFile(dest)
	if string(before) != string(after) {
		t.Fatalf("failed refresh changed destination: %q != %q", before, after)
	}
}

func TestResolverPathSelection(t *testing.T) {
	cache := NewCache("/lists")
	if got := cache.ResolversPath(false); filepath.Base(got) != "resolvers.txt" {
		t.Fatalf("ResolversPath(false) = %q", got)
	}
	if got := cache.ResolversPath(true); filepath.Base(got) != "resolvers-extended.txt" {
		t.Fatalf("ResolversPath(true) = %q", got)
	}
}
