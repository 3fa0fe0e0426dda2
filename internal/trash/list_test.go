package trash

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func TestListPairsEntries(t *testing.T) {
	s := newTestStorage(t)
	for _, name := range []string{"alpha.txt", "beta.txt"} {
		src := filepath.Join(s.cfg.Home, name)
		writeFile(t, src, name)
		if _, err := s.Put(src); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	for _, e := range entries {
		if e.Broken() {
			t.Errorf("%s unexpectedly broken: orphan=%v decodeErr=%v", e.ID, e.Orphan, e.DecodeErr)
		}
		if e.OriginalPath() != filepath.Join(s.cfg.Home, e.ID) {
			t.Errorf("%s original path = %q", e.ID, e.OriginalPath())
		}
		if e.Size == 0 {
			t.Errorf("%s payload size not filled", e.ID)
		}
	}
	if !sort.SliceIsSorted(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID }) {
		t.Error("entries not sorted by identifier")
	}
}

func TestListOrphanMissingPayload(t *testing.T) {
	s := newTestStorage(t)
	src := filepath.Join(s.cfg.Home, "doc.txt")
	writeFile(t, src, "x")
	item, err := s.Put(src)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Remove(item.TrashPath); err != nil {
		t.Fatal(err)
	}

	entries, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Orphan != OrphanMissingPayload {
		t.Errorf("orphan = %v, want missing payload", entries[0].Orphan)
	}
	if !entries[0].Broken() {
		t.Error("orphan entry should report broken")
	}
	// The record survived, so the original path is still known.
	if entries[0].OriginalPath() != src {
		t.Errorf("original path = %q, want %q", entries[0].OriginalPath(), src)
	}
}

func TestListOrphanMissingInfo(t *testing.T) {
	s := newTestStorage(t)
	dir, err := s.locator.ResolveFor(s.cfg.Home)
	if err != nil {
		t.Fatal(err)
	}
	writeFile(t, dir.filePath("stray"), "no record")

	entries, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.Orphan != OrphanMissingInfo {
		t.Errorf("orphan = %v, want missing info record", e.Orphan)
	}
	if e.Name() != "stray" {
		t.Errorf("name falls back to identifier, got %q", e.Name())
	}
	if e.OriginalPath() != "" {
		t.Errorf("original path = %q, want empty", e.OriginalPath())
	}
}

func TestListMalformedRecord(t *testing.T) {
	s := newTestStorage(t)
	dir, err := s.locator.ResolveFor(s.cfg.Home)
	if err != nil {
		t.Fatal(err)
	}
	writeFile(t, dir.filePath("bad"), "payload")
	writeFile(t, dir.infoPath("bad"), "this is not a trash info record\n")

	entries, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.DecodeErr == nil {
		t.Fatal("malformed record yielded no decode error")
	}
	if !e.Broken() {
		t.Error("malformed entry should report broken")
	}
	// The payload still exists and is still counted.
	if e.Orphan != OrphanNone {
		t.Errorf("orphan = %v, want none", e.Orphan)
	}
}

func TestListSkipsForeignInfoFiles(t *testing.T) {
	s := newTestStorage(t)
	dir, err := s.locator.ResolveFor(s.cfg.Home)
	if err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(dir.InfoDir(), "notes.txt"), "not a record")
	writeFile(t, filepath.Join(dir.InfoDir(), "._x.trashinfo"), "resource fork")

	entries, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries, want 0", len(entries))
	}
}
