package db

import (
	"io/fs"
	"strings"
	"testing"
)

func TestEmbeddedMigrationsPaired(t *testing.T) {
	entries, err := fs.ReadDir(migrationFS, "migrations")
	if err != nil {
		t.Fatalf("read embedded migrations: %v", err)
	}
	ups, downs := map[string]bool{}, map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		}
	}
	if len(ups) != len(RequiredTables) {
		t.Fatalf("expected %d up migrations, got %d", len(RequiredTables), len(ups))
	}
	for name := range ups {
		if !downs[name] {
			t.Fatalf("migration %s has no down file", name)
		}
	}
}

func TestEveryRequiredTableIsCreated(t *testing.T) {
	var all strings.Builder
	entries, _ := fs.ReadDir(migrationFS, "migrations")
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".up.sql") {
			b, err := fs.ReadFile(migrationFS, "migrations/"+e.Name())
			if err != nil {
				t.Fatalf("read %s: %v", e.Name(), err)
			}
			all.Write(b)
		}
	}
	for _, table := range RequiredTables {
		if !strings.Contains(all.String(), "CREATE TABLE IF NOT EXISTS "+table+" (") {
			t.Fatalf("no migration creates %s", table)
		}
	}
}
