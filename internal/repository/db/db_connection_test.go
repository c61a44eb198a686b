package db

import (
	"path/filepath"
	"testing"
)

func TestInitDB_CreatesZonesTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")

	conn, err := InitDB(path)
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	defer func() { _ = conn.Close() }()

	if _, err := conn.Exec(`INSERT INTO zones (id, name, default_minutes) VALUES (1, 'Front Lawn', 15)`); err != nil {
		t.Fatalf("insert: %v", err)
	}
	var name string
	if err := conn.QueryRow(`SELECT name FROM zones WHERE id = 1`).Scan(&name); err != nil {
		t.Fatalf("select: %v", err)
	}
	if name != "Front Lawn" {
		t.Fatalf("name=%q", name)
	}
}

func TestInitDB_EnforcesPositiveValues(t *testing.T) {
	conn, err := InitDB(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	defer func() { _ = conn.Close() }()

	if _, err := conn.Exec(`INSERT INTO zones (id, name, default_minutes) VALUES (0, 'bad', 10)`); err == nil {
		t.Fatalf("expected CHECK failure for zone 0")
	}
	if _, err := conn.Exec(`INSERT INTO zones (id, name, default_minutes) VALUES (2, 'bad', 0)`); err == nil {
		t.Fatalf("expected CHECK failure for zero default minutes")
	}
}

func TestInitDB_IsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	for i := 0; i < 2; i++ {
		conn, err := InitDB(path)
		if err != nil {
			t.Fatalf("InitDB #%d: %v", i+1, err)
		}
		_ = conn.Close()
	}
}
