package persist

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDirSetGet(t *testing.T) {
	d, err := NewDir(t.TempDir())
	if err != nil {
		t.Fatalf("NewDir: %v", err)
	}

	if err := d.Set(KeyPages, []byte(`[{"id":"page-1"}]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, ok, err := d.Get(KeyPages)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("expected key to exist")
	}
	if string(got) != `[{"id":"page-1"}]` {
		t.Errorf("Get = %q, want stored value", got)
	}
}

func TestDirGetMissing(t *testing.T) {
	d, err := NewDir(t.TempDir())
	if err != nil {
		t.Fatalf("NewDir: %v", err)
	}

	got, ok, err := d.Get("nonexistent")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok || got != nil {
		t.Errorf("Get missing key = (%q, %v), want (nil, false)", got, ok)
	}
}

func TestDirOverwrite(t *testing.T) {
	d, err := NewDir(t.TempDir())
	if err != nil {
		t.Fatalf("NewDir: %v", err)
	}

	d.Set(KeyUsers, []byte("first"))
	if err := d.Set(KeyUsers, []byte("second")); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}

	got, _, _ := d.Get(KeyUsers)
	if string(got) != "second" {
		t.Errorf("Get after overwrite = %q, want %q", got, "second")
	}
}

func TestDirDelete(t *testing.T) {
	d, err := NewDir(t.TempDir())
	if err != nil {
		t.Fatalf("NewDir: %v", err)
	}

	d.Set(KeySession, []byte("{}"))
	if err := d.Delete(KeySession); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := d.Get(KeySession); ok {
		t.Error("expected key gone after Delete")
	}

	// Deleting an absent key is fine.
	if err := d.Delete(KeySession); err != nil {
		t.Errorf("Delete absent key: %v", err)
	}
}

func TestDirSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	d1, err := NewDir(dir)
	if err != nil {
		t.Fatalf("NewDir: %v", err)
	}
	d1.Set(KeyPages, []byte("persisted"))

	// A fresh Dir over the same path sees the write — this is the restart
	// path the document store relies on.
	d2, err := NewDir(dir)
	if err != nil {
		t.Fatalf("NewDir reopen: %v", err)
	}
	got, ok, err := d2.Get(KeyPages)
	if err != nil || !ok {
		t.Fatalf("Get after reopen = (%v, %v)", ok, err)
	}
	if string(got) != "persisted" {
		t.Errorf("Get after reopen = %q, want %q", got, "persisted")
	}
}

func TestDirLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	d, err := NewDir(dir)
	if err != nil {
		t.Fatalf("NewDir: %v", err)
	}

	for i := 0; i < 10; i++ {
		if err := d.Set(KeyPages, []byte("value")); err != nil {
			t.Fatalf("Set: %v", err)
		}
	}

	matches, _ := filepath.Glob(filepath.Join(dir, "*.tmp"))
	if len(matches) != 0 {
		t.Errorf("found leftover temp files: %v", matches)
	}
	if _, err := os.Stat(filepath.Join(dir, KeyPages+".json")); err != nil {
		t.Errorf("expected %s.json on disk: %v", KeyPages, err)
	}
}

func TestMemBehavesLikeDir(t *testing.T) {
	m := NewMem()

	if _, ok, _ := m.Get(KeyPages); ok {
		t.Fatal("fresh Mem should be empty")
	}
	m.Set(KeyPages, []byte("v"))
	got, ok, _ := m.Get(KeyPages)
	if !ok || string(got) != "v" {
		t.Errorf("Get = (%q, %v), want (v, true)", got, ok)
	}

	// Mutating the returned slice must not affect the stored copy.
	got[0] = 'x'
	again, _, _ := m.Get(KeyPages)
	if string(again) != "v" {
		t.Error("Mem returned an aliased slice")
	}

	m.Delete(KeyPages)
	if _, ok, _ := m.Get(KeyPages); ok {
		t.Error("expected key gone after Delete")
	}
}
