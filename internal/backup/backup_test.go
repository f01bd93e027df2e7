package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func createTestDB(t *testing.T, dir string) string {
	t.Helper()
	dbPath := filepath.Join(dir, "cadence.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	defer db.Close()
	if _, err := db.Exec("CREATE TABLE notes (body TEXT)"); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	if _, err := db.Exec("INSERT INTO notes (body) VALUES ('original')"); err != nil {
		t.Fatalf("failed to insert row: %v", err)
	}
	return dbPath
}

func TestCreateAndList(t *testing.T) {
	dir := t.TempDir()
	mgr := NewManager(createTestDB(t, dir))

	path, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(path), "cadence-") {
		t.Errorf("backup name = %q, want cadence- prefix", filepath.Base(path))
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("backup file missing: %v", err)
	}

	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(backups) != 1 {
		t.Fatalf("List() returned %d backups, want 1", len(backups))
	}
	if backups[0].Path != path {
		t.Errorf("List() path = %q, want %q", backups[0].Path, path)
	}
	if backups[0].Size == 0 {
		t.Error("List() reported zero size")
	}
}

func TestCreateMissingDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "nope.db"))
	if _, err := mgr.Create(); err == nil {
		t.Fatal("Create() succeeded for a missing database")
	}
}

func TestListEmptyDir(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "cadence.db"))
	backups, err := mgr.List()
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("List() returned %d backups, want 0", len(backups))
	}
}

func TestRestore(t *testing.T) {
	dir := t.TempDir()
	dbPath := createTestDB(t, dir)
	mgr := NewManager(dbPath)

	snapshot, err := mgr.Create()
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	// Change the live database so the restore is observable.
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if _, err := db.Exec("UPDATE notes SET body = 'changed'"); err != nil {
		t.Fatalf("failed to update row: %v", err)
	}
	db.Close()

	if err := mgr.Restore(snapshot); err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}

	db, err = sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to reopen database: %v", err)
	}
	defer db.Close()
	var body string
	if err := db.QueryRow("SELECT body FROM notes").Scan(&body); err != nil {
		t.Fatalf("failed to read restored row: %v", err)
	}
	if body != "original" {
		t.Errorf("restored body = %q, want %q", body, "original")
	}
}

func TestRestoreInvalidFile(t *testing.T) {
	dir := t.TempDir()
	mgr := NewManager(createTestDB(t, dir))

	bogus := filepath.Join(dir, "bogus.db")
	if err := os.WriteFile(bogus, []byte("not a database"), 0600); err != nil {
		t.Fatalf("failed to write bogus file: %v", err)
	}
	if err := mgr.Restore(bogus); err == nil {
		t.Fatal("Restore() accepted an invalid backup file")
	}
}
