package janitor

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func TestSweep(t *testing.T) {
	dir := t.TempDir()
	now := time.Now()

	old := filepath.Join(dir, "tmp_report.pdf")
	fresh := filepath.Join(dir, "tmp_report.html")
	for _, p := range []string{old, fresh} {
		if err := os.WriteFile(p, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Chtimes(old, now.Add(-48*time.Hour), now.Add(-48*time.Hour)); err != nil {
		t.Fatal(err)
	}

	s := &TmpSweeper{Dir: dir, MaxAge: 24 * time.Hour, Lock: &sync.Mutex{}}
	removed, err := s.Sweep(now)
	if err != nil {
		t.Fatalf("Sweep() error = %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}
	if _, err := os.Stat(old); !os.IsNotExist(err) {
		t.Error("old file still exists")
	}
	if _, err := os.Stat(fresh); err != nil {
		t.Error("fresh file was removed")
	}
}

func TestSweepMissingDir(t *testing.T) {
	s := &TmpSweeper{Dir: filepath.Join(t.TempDir(), "missing"), MaxAge: time.Hour}
	if removed, err := s.Sweep(time.Now()); err != nil || removed != 0 {
		t.Errorf("Sweep() = %d, %v", removed, err)
	}
}

func TestSchedulerJobs(t *testing.T) {
	s := NewScheduler()

	if err := s.AddJob("tmp", "@hourly", func() {}); err != nil {
		t.Fatalf("AddJob() error = %v", err)
	}
	if err := s.AddJob("tmp", "@daily", func() {}); err != nil {
		t.Fatalf("replacing AddJob() error = %v", err)
	}
	if err := s.AddJob("bad", "not a schedule", func() {}); err == nil {
		t.Error("expected error for invalid schedule")
	}
	if jobs := s.Jobs(); len(jobs) != 1 || jobs[0] != "tmp" {
		t.Errorf("Jobs() = %v", jobs)
	}

	s.RemoveJob("tmp")
	if len(s.Jobs()) != 0 {
		t.Error("job was not removed")
	}
}
