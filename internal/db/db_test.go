package db

import (
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/robalobadob/fbwordle/assets"
)

func TestMigrateIsIdempotent(t *testing.T) {
	conn, err := Open(filepath.Join(t.TempDir(), "data", "test.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer conn.Close()

	for i := 0; i < 2; i++ {
		if err := Migrate(conn, assets.Migrations()); err != nil {
			t.Fatalf("Migrate run %d: %v", i+1, err)
		}
	}

	var applied int
	if err := conn.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&applied); err != nil {
		t.Fatal(err)
	}
	if applied != 3 {
		t.Fatalf("expected 3 recorded migrations, got %d", applied)
	}
	for _, table := range []string{"game_results", "player_stats", "rotation_cursors"} {
		var name string
		err := conn.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}
}

func TestMigrateBadSQL(t *testing.T) {
	conn, err := Open(filepath.Join(t.TempDir(), "bad.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	bad := fstest.MapFS{"001_bad.sql": {Data: []byte("CREATE TABLE (;")}}
	if err := Migrate(conn, bad); err == nil {
		t.Fatal("expected error for malformed migration")
	}
	var n int
	_ = conn.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&n)
	if n != 0 {
		t.Fatalf("failed migration must not be recorded, got %d rows", n)
	}
}

func TestMigrateSelfManagedScript(t *testing.T) {
	conn, err := Open(filepath.Join(t.TempDir(), "rebuild.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()

	rebuild := `
PRAGMA foreign_keys=OFF;
BEGIN TRANSACTION;
CREATE TABLE words_new (w TEXT PRIMARY KEY, source TEXT NOT NULL DEFAULT 'answers');
INSERT INTO words_new(w) SELECT w FROM words;
DROP TABLE words;
ALTER TABLE words_new RENAME TO words;
COMMIT;
PRAGMA foreign_keys=ON;
`
	migrations := fstest.MapFS{
		"001_words.sql":   {Data: []byte(`CREATE TABLE words (w TEXT PRIMARY KEY);`)},
		"002_rebuild.sql": {Data: []byte(rebuild)},
	}
	for i := 0; i < 2; i++ {
		if err := Migrate(conn, migrations); err != nil {
			t.Fatalf("Migrate run %d: %v", i+1, err)
		}
	}

	if _, err := conn.Exec(`INSERT INTO words(w) VALUES ('bread')`); err != nil {
		t.Fatal(err)
	}
	var source string
	if err := conn.QueryRow(`SELECT source FROM words WHERE w='bread'`).Scan(&source); err != nil {
		t.Fatalf("rebuilt table: %v", err)
	}
	if source != "answers" {
		t.Fatalf("source = %q", source)
	}
	var applied int
	if err := conn.QueryRow(`SELECT COUNT(1) FROM _migrations`).Scan(&applied); err != nil {
		t.Fatal(err)
	}
	if applied != 2 {
		t.Fatalf("expected 2 recorded migrations, got %d", applied)
	}
}
