package journal

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	for i := 0; i < 3; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("Open() iteration %d failed: %v", i, err)
		}
		s.Close()
	}
}

func TestOpen_SetsPragmas(t *testing.T) {
	s := openTemp(t)

	var mode string
	if err := s.db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}

	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		t.Fatalf("query user_version: %v", err)
	}
	if version != currentSchemaVersion {
		t.Errorf("user_version = %d, want %d", version, currentSchemaVersion)
	}
}

func TestOpen_RejectsNewerSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := s.db.Exec("PRAGMA user_version = 99"); err != nil {
		t.Fatalf("set user_version: %v", err)
	}
	s.Close()

	if _, err := Open(path); err == nil {
		t.Fatal("Open() accepted a newer schema version")
	}
}

func TestClose_NilDB(t *testing.T) {
	s := &Store{}
	if err := s.Close(); err != nil {
		t.Errorf("Close() on empty store: %v", err)
	}
}

func TestRecordAndList(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()
	created := time.Date(2024, time.March, 9, 14, 30, 5, 250_000_000, time.FixedZone("CET", 3600))

	for i, p := range []string{"a.fbx", "b.fbx", "a.fbx"} {
		id, err := s.Record(ctx, Entry{
			Path:      p,
			Size:      1000 + i,
			Checksum:  "00000000deadbeef",
			FileID:    "28b32aebb65ee44a829c5a1ef2b33d00",
			Creator:   "fbxport 1.0.0",
			CreatedAt: created,
		})
		if err != nil {
			t.Fatalf("Record(%d) failed: %v", i, err)
		}
		if id != int64(i+1) {
			t.Errorf("Record(%d) id = %d, want %d", i, id, i+1)
		}
	}

	all, err := s.List(ctx, 0)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("List() returned %d entries, want 3", len(all))
	}
	if all[0].ID != 3 || all[2].ID != 1 {
		t.Errorf("List() order = %d..%d, want newest first", all[0].ID, all[2].ID)
	}
	if !all[0].CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", all[0].CreatedAt, created)
	}
	if all[0].CreatedAt.Location() != time.UTC {
		t.Errorf("CreatedAt location = %v, want UTC", all[0].CreatedAt.Location())
	}
	if all[1].Size != 1001 || all[1].Path != "b.fbx" {
		t.Errorf("second entry = %+v", all[1])
	}

	limited, err := s.List(ctx, 2)
	if err != nil {
		t.Fatalf("List(2) failed: %v", err)
	}
	if len(limited) != 2 || limited[0].ID != 3 {
		t.Errorf("List(2) = %+v", limited)
	}

	forA, err := s.ForPath(ctx, "a.fbx")
	if err != nil {
		t.Fatalf("ForPath() failed: %v", err)
	}
	if len(forA) != 2 || forA[0].Size != 1002 || forA[1].Size != 1000 {
		t.Errorf("ForPath(a.fbx) = %+v", forA)
	}
}

func TestList_Empty(t *testing.T) {
	s := openTemp(t)
	entries, err := s.List(context.Background(), 10)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("List() = %+v, want empty", entries)
	}
}

func TestRecord_CancelledContext(t *testing.T) {
	s := openTemp(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Record(ctx, Entry{Path: "x.fbx"}); err == nil {
		t.Error("Record() with cancelled context succeeded")
	}
}
