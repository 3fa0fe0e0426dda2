package trash

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Orphan marks an entry whose payload and record do not pair up.
type Orphan int

const (
	// OrphanNone means the entry has both a payload and an info record
	OrphanNone Orphan = iota

	// OrphanMissingPayload means an info record exists but files/<id> is gone
	OrphanMissingPayload

	// OrphanMissingInfo means a payload exists but has no info record
	OrphanMissingInfo
)

func (o Orphan) String() string {
	switch o {
	case OrphanMissingPayload:
		return "missing payload"
	case OrphanMissingInfo:
		return "missing info record"
	default:
		return "none"
	}
}

// Entry is one trashed item as seen by the enumerator: the pairing of an
// info record with its payload, or an orphan marker when one side is
// missing, or a decode error when the record is malformed. Inconsistent
// entries are yielded, not omitted, so callers can report them.
type Entry struct {
	// Dir is the trash directory containing this entry
	Dir *Directory

	// ID is the storage identifier inside files/ and info/
	ID string

	// Info is the decoded record; nil when DecodeErr is set or the record
	// is missing
	Info *TrashInfo

	// DecodeErr is the per-entry decode failure, if any
	DecodeErr error

	// Orphan flags a payload/record mismatch
	Orphan Orphan

	// TrashPath is files/<ID>; InfoPath is info/<ID>.trashinfo
	TrashPath string
	InfoPath  string

	// Payload metadata, zero when the payload is missing
	Size    int64
	Mode    os.FileMode
	ModTime time.Time
	IsDir   bool
}

// Name returns the original base name when known, the identifier otherwise.
func (e *Entry) Name() string {
	if e.Info != nil {
		return filepath.Base(e.Info.Path)
	}
	return e.ID
}

// OriginalPath returns the recorded pre-trash path, or "" for entries
// without a usable record.
func (e *Entry) OriginalPath() string {
	if e.Info != nil {
		return e.Info.Path
	}
	return ""
}

// Broken reports whether the entry cannot be restored as-is.
func (e *Entry) Broken() bool {
	return e.Info == nil || e.Orphan != OrphanNone
}

// Filterable implementation

func (e *Entry) GetName() string { return e.Name() }
func (e *Entry) GetPath() string { return e.TrashPath }
func (e *Entry) GetDeletedAt() time.Time {
	if e.Info != nil {
		return e.Info.DeletionDate
	}
	return time.Time{}
}

// List produces the merged view of all trashed items across every known
// trash directory, sorted by directory root then identifier. The view is
// recomputed on every call; trash contents can change between invocations.
func (s *Storage) List() ([]*Entry, error) {
	dirs, err := s.locator.EnumerateKnown()
	if err != nil {
		return nil, NewStorageError("list", "", err)
	}

	var entries []*Entry
	for _, dir := range dirs {
		es, err := listDirectory(dir)
		if err != nil {
			// One unreadable trash directory must not hide the others.
			slog.Warn("failed to list trash directory", "root", dir.Root, "error", err)
			continue
		}
		entries = append(entries, es...)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Dir.Root != entries[j].Dir.Root {
			return entries[i].Dir.Root < entries[j].Dir.Root
		}
		return entries[i].ID < entries[j].ID
	})
	return entries, nil
}

func listDirectory(dir *Directory) ([]*Entry, error) {
	var entries []*Entry
	seen := make(map[string]bool)

	infos, err := os.ReadDir(dir.InfoDir())
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	for _, de := range infos {
		name := de.Name()
		if !de.Type().IsRegular() || !strings.HasSuffix(name, infoSuffix) {
			continue
		}
		if strings.HasPrefix(name, "._") {
			// macOS resource forks alongside real records
			continue
		}

		id := strings.TrimSuffix(name, infoSuffix)
		seen[id] = true

		e := &Entry{
			Dir:       dir,
			ID:        id,
			TrashPath: dir.filePath(id),
			InfoPath:  dir.infoPath(id),
		}
		e.Info, e.DecodeErr = loadInfo(e.InfoPath)

		if fi, err := os.Lstat(e.TrashPath); err == nil {
			fillPayload(e, fi)
		} else if os.IsNotExist(err) {
			e.Orphan = OrphanMissingPayload
		}
		entries = append(entries, e)
	}

	// Payloads that never got (or lost) their record are corruption, not
	// something to silently skip.
	files, err := os.ReadDir(dir.FilesDir())
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	for _, de := range files {
		id := de.Name()
		if seen[id] {
			continue
		}
		e := &Entry{
			Dir:       dir,
			ID:        id,
			Orphan:    OrphanMissingInfo,
			TrashPath: dir.filePath(id),
			InfoPath:  dir.infoPath(id),
		}
		if fi, err := de.Info(); err == nil {
			fillPayload(e, fi)
		}
		entries = append(entries, e)
	}

	return entries, nil
}

func fillPayload(e *Entry, fi fs.FileInfo) {
	e.Size = fi.Size()
	e.Mode = fi.Mode()
	e.ModTime = fi.ModTime()
	e.IsDir = fi.IsDir()
}
