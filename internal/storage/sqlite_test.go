package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestLedger(t *testing.T) *Ledger {
	t.Helper()
	l, err := Open(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { l.Close() })
	return l
}

func TestSessionLifecycle(t *testing.T) {
	l := openTestLedger(t)
	start := time.Now()

	if err := l.BeginSession("acme-1700000000", "acme", start); err != nil {
		t.Fatal(err)
	}

	sessions, err := l.Sessions("", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 1 || sessions[0].Status != "running" {
		t.Fatalf("sessions = %+v, want one running session", sessions)
	}
	if !sessions[0].EndTime.IsZero() {
		t.Fatalf("running session EndTime = %v, want zero", sessions[0].EndTime)
	}

	end := start.Add(time.Minute).UTC()
	if err := l.CloseSession("acme-1700000000", "completed", end); err != nil {
		t.Fatal(err)
	}
	sessions, err = l.Sessions("acme", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 1 || sessions[0].Status != "completed" {
		t.Fatalf("sessions = %+v, want one completed session", sessions)
	}
	if !sessions[0].EndTime.Equal(end) {
		t.Fatalf("EndTime = %v, want %v", sessions[0].EndTime, end)
	}
	if !sessions[0].StartTime.Equal(start.UTC()) {
		t.Fatalf("StartTime = %v, want %v", sessions[0].StartTime, start.UTC())
	}

	// Scope filter excludes other scopes.
	sessions, _ = l.Sessions("other", 0)
	if len(sessions) != 0 {
		t.Fatalf("sessions for unknown scope = %+v, want none", sessions)
	}
}

func TestStageRecordsOrdered(t *testing.T) {
	l := openTestLedger(t)
	if err := l.BeginSession("acme-1", "acme", time.Now()); err != nil {
		t.Fatal(err)
	}

	if err := l.RecordStage("acme-1", 1, "subdomain discovery", "subdomains.txt", 12, nil); err != nil {
		t.Fatal(err)
	}
	if err := l.RecordStage("acme-1", 2, "dns resolution", "resolved.txt", 7, errors.New("puredns: exit 1")); err != nil {
		t.Fatal(err)
	}

	stages, err := l.Stages("acme-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(stages) != 2 {
		t.Fatalf("stages = %d, want 2", len(stages))
	}
	if stages[0].Seq != 1 || stages[1].Seq != 2 {
		t.Fatalf("stage order = %d,%d, want 1,2", stages[0].Seq, stages[1].Seq)
	}
	if stages[0].LineCount != 12 {
		t.Fatalf("line count = %d, want 12", stages[0].LineCount)
	}
	if stages[1].Error == "" {
		t.Fatal("stage error not persisted")
	}
	if stages[0].ID == stages[1].ID {
		t.Fatal("stage record ids must be unique")
	}
}
