package trash

import (
	"os"
	"path/filepath"
	"testing"
)

func TestPurge(t *testing.T) {
	s := newTestStorage(t)
	for _, name := range []string{"a.txt", "b.txt"} {
		src := filepath.Join(s.cfg.Home, name)
		writeFile(t, src, "some bytes to count")
		if _, err := s.Put(src); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	report := s.Purge(entries)

	if len(report.Purged) != 2 {
		t.Errorf("purged %d, want 2", len(report.Purged))
	}
	if len(report.Failures) != 0 {
		t.Errorf("unexpected failures: %v", report.Failures)
	}
	if report.BytesFreed == 0 {
		t.Error("bytes freed not accounted")
	}

	remaining, err := s.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(remaining) != 0 {
		t.Errorf("%d entries survive the purge", len(remaining))
	}

	// The trash directory stays structurally valid for the next Put.
	dir := entries[0].Dir
	for _, sub := range []string{dir.FilesDir(), dir.InfoDir()} {
		if fi, err := os.Stat(sub); err != nil || !fi.IsDir() {
			t.Errorf("%s not intact after purge: %v", sub, err)
		}
	}
}

func TestPurgeDirectoryPayload(t *testing.T) {
	s := newTestStorage(t)
	src := filepath.Join(s.cfg.Home, "project")
	writeFile(t, filepath.Join(src, "deep", "file"), "x")
	if _, err := s.Put(src); err != nil {
		t.Fatal(err)
	}

	report, err := s.PurgeAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Purged) != 1 || len(report.Failures) != 0 {
		t.Fatalf("report = %+v", report)
	}
}

func TestPurgeMalformedRecordStillErased(t *testing.T) {
	s := newTestStorage(t)
	dir, err := s.locator.ResolveFor(s.cfg.Home)
	if err != nil {
		t.Fatal(err)
	}
	writeFile(t, dir.filePath("bad"), "payload")
	writeFile(t, dir.infoPath("bad"), "garbage\n")

	report, err := s.PurgeAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Purged) != 1 {
		t.Errorf("purged %d, want 1", len(report.Purged))
	}
	if len(report.Invalid) != 1 {
		t.Errorf("invalid %d, want 1", len(report.Invalid))
	}
	if _, err := os.Lstat(dir.filePath("bad")); !os.IsNotExist(err) {
		t.Error("malformed entry's payload survived the purge")
	}
	if _, err := os.Lstat(dir.infoPath("bad")); !os.IsNotExist(err) {
		t.Error("malformed entry's record survived the purge")
	}
}

func TestPurgeMissingPayloadNotFatal(t *testing.T) {
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

	report, err := s.PurgeAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(report.Failures) != 0 {
		t.Errorf("missing payload should not fail the purge: %v", report.Failures)
	}
	if _, err := os.Lstat(item.InfoPath); !os.IsNotExist(err) {
		t.Error("orphaned record survived the purge")
	}
}

func TestEmptyDirectory(t *testing.T) {
	s := newTestStorage(t)
	src := filepath.Join(s.cfg.Home, "doc.txt")
	writeFile(t, src, "x")
	item, err := s.Put(src)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.EmptyDirectory(item.Dir); err != nil {
		t.Fatal(err)
	}

	count, empty, err := s.Status(item.Dir)
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 || !empty {
		t.Errorf("count=%d empty=%v after emptying", count, empty)
	}

	// Emptying leaves a usable trash behind.
	writeFile(t, src, "again")
	if _, err := s.Put(src); err != nil {
		t.Errorf("trash unusable after emptying: %v", err)
	}
}

func TestStatus(t *testing.T) {
	s := newTestStorage(t)
	src := filepath.Join(s.cfg.Home, "doc.txt")
	writeFile(t, src, "x")
	item, err := s.Put(src)
	if err != nil {
		t.Fatal(err)
	}

	count, empty, err := s.Status(item.Dir)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 || empty {
		t.Errorf("count=%d empty=%v, want 1,false", count, empty)
	}
}
