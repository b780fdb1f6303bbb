package db

import (
	"path/filepath"
	"testing"
)

func TestOpenSqlite(t *testing.T) {
	db, err := OpenSqlite(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("OpenSqlite: %v", err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow("SELECT 1").Scan(&n); err != nil || n != 1 {
		t.Fatalf("select 1 = %d, %v", n, err)
	}
}

func TestOpenSqliteBadPath(t *testing.T) {
	if _, err := OpenSqlite(filepath.Join(t.TempDir(), "missing", "dir", "cache.db")); err == nil {
		t.Fatal("expected error for unreachable path")
	}
}
