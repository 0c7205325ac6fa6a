package storage

import (
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) (*SQLite, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, path
}

func TestReadAbsentKey(t *testing.T) {
	db, _ := openTestDB(t)

	value, ok, err := db.Read("tasks")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if ok {
		t.Fatalf("absent key reported present, value %q", value)
	}
}

func TestWriteReadOverwrite(t *testing.T) {
	db, _ := openTestDB(t)

	if err := db.Write("tasks", []byte(`[{"id":1}]`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	value, ok, err := db.Read("tasks")
	if err != nil || !ok {
		t.Fatalf("read back: ok=%v err=%v", ok, err)
	}
	if string(value) != `[{"id":1}]` {
		t.Fatalf("value = %q", value)
	}

	// Writes are upserts.
	if err := db.Write("tasks", []byte(`[]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	value, _, _ = db.Read("tasks")
	if string(value) != `[]` {
		t.Fatalf("value after overwrite = %q", value)
	}
}

func TestValuesSurviveReopen(t *testing.T) {
	db, path := openTestDB(t)

	if err := db.Write("notes", []byte(`[{"id":9}]`)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := db.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	db2, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer db2.Close()

	value, ok, err := db2.Read("notes")
	if err != nil || !ok {
		t.Fatalf("read after reopen: ok=%v err=%v", ok, err)
	}
	if string(value) != `[{"id":9}]` {
		t.Fatalf("value = %q", value)
	}
}

func TestClearRemovesAllKeys(t *testing.T) {
	db, _ := openTestDB(t)

	for _, key := range []string{KeyTasks, KeyEvents, KeyNotes} {
		if err := db.Write(key, []byte("[]")); err != nil {
			t.Fatalf("write %s: %v", key, err)
		}
	}

	if err := db.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}

	for _, key := range []string{KeyTasks, KeyEvents, KeyNotes} {
		if _, ok, err := db.Read(key); err != nil || ok {
			t.Fatalf("key %s after clear: ok=%v err=%v", key, ok, err)
		}
	}
}

func TestMemoryMatchesContract(t *testing.T) {
	m := NewMemory()

	if _, ok, err := m.Read("tasks"); err != nil || ok {
		t.Fatalf("absent key: ok=%v err=%v", ok, err)
	}

	if err := m.Write("tasks", []byte("[1]")); err != nil {
		t.Fatalf("write: %v", err)
	}
	value, ok, err := m.Read("tasks")
	if err != nil || !ok || string(value) != "[1]" {
		t.Fatalf("read back: %q ok=%v err=%v", value, ok, err)
	}

	// The stored value is a copy, not an alias.
	value[0] = 'x'
	value2, _, _ := m.Read("tasks")
	if string(value2) != "[1]" {
		t.Fatalf("stored value aliased caller slice: %q", value2)
	}

	if err := m.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok, _ := m.Read("tasks"); ok {
		t.Fatal("key survived clear")
	}
}
