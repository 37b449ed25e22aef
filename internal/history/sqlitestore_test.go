package history

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

// Compile-time interface check.
var _ Store = (*SQLiteStore)(nil)

func tempSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStoreLogAndRuns(t *testing.T) {
	s := tempSQLiteStore(t)
	want := sampleRun("AppIcon.appiconset", 12)
	want.Time = want.Time.Add(123 * time.Millisecond)

	if err := s.Log(want); err != nil {
		t.Fatal(err)
	}
	runs, err := s.Runs(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if !runs[0].Time.Equal(want.Time) {
		t.Errorf("Time = %v, want %v", runs[0].Time, want.Time)
	}
	runs[0].Time = want.Time
	if !reflect.DeepEqual(runs[0], want) {
		t.Errorf("got %+v\nwant %+v", runs[0], want)
	}
}

func TestSQLiteStoreFailedRun(t *testing.T) {
	s := tempSQLiteStore(t)
	r := sampleRun("ro", 0)
	r.Err = "not writable"
	s.Log(r)

	runs, _ := s.Runs(0)
	if len(runs) != 1 || runs[0].Err != "not writable" || runs[0].Files != nil {
		t.Fatalf("unexpected runs: %+v", runs)
	}
}

func TestSQLiteStoreRunsNewestFirst(t *testing.T) {
	s := tempSQLiteStore(t)
	for i := 0; i < 5; i++ {
		r := sampleRun(fmt.Sprintf("out%d", i), 2)
		r.Time = r.Time.Add(time.Duration(i) * time.Minute)
		if err := s.Log(r); err != nil {
			t.Fatal(err)
		}
	}

	runs, err := s.Runs(3)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	for i, want := range []string{"out4", "out3", "out2"} {
		if runs[i].OutputDir != want {
			t.Errorf("runs[%d].OutputDir = %q, want %q", i, runs[i].OutputDir, want)
		}
		if len(runs[i].Files) != 2 {
			t.Errorf("runs[%d] has %d files, want 2", i, len(runs[i].Files))
		}
	}
}

func TestSQLiteStoreClearCascades(t *testing.T) {
	s := tempSQLiteStore(t)
	s.Log(sampleRun("out", 4))

	if err := s.Clear(); err != nil {
		t.Fatal(err)
	}
	runs, _ := s.Runs(0)
	if runs != nil {
		t.Fatalf("expected no runs after Clear, got %v", runs)
	}
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM run_files`).Scan(&n); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("run_files has %d rows after Clear, want 0", n)
	}
}

func TestSQLiteStorePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	if s.Path() != path {
		t.Errorf("Path() = %q, want %q", s.Path(), path)
	}
}

func TestSQLiteStoreReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatal(err)
	}
	s.Log(sampleRun("out", 1))
	s.Close()

	s, err = NewSQLiteStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	runs, _ := s.Runs(0)
	if len(runs) != 1 {
		t.Fatalf("expected 1 run after reopen, got %d", len(runs))
	}
}

func TestSQLiteStoreMigration(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "history.log")

	fs := NewFileStore(logPath)
	older := sampleRun("first", 2)
	newer := sampleRun("second", 1)
	newer.Time = newer.Time.Add(time.Hour)
	fs.Log(older)
	fs.Log(newer)

	s, err := NewSQLiteStore(filepath.Join(dir, "history.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	runs, _ := s.Runs(0)
	if len(runs) != 2 {
		t.Fatalf("expected 2 migrated runs, got %d", len(runs))
	}
	if runs[0].OutputDir != "second" || len(runs[1].Files) != 2 {
		t.Errorf("unexpected migrated runs: %+v", runs)
	}

	if _, err := os.Stat(logPath); !os.IsNotExist(err) {
		t.Fatal("expected history.log to be renamed after migration")
	}
	if _, err := os.Stat(logPath + ".migrated"); os.IsNotExist(err) {
		t.Fatal("expected history.log.migrated to exist")
	}
}

func TestSQLiteStoreMigrationSkipsWhenNoLog(t *testing.T) {
	s := tempSQLiteStore(t)
	runs, _ := s.Runs(0)
	if runs != nil {
		t.Fatalf("expected nil runs with no log to migrate, got %v", runs)
	}
}
