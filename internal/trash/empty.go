package trash

import (
	"fmt"
	"os"

	"github.com/babarot/tt/internal/fs"
)

// PurgeFailure records one entry that could not be fully erased.
type PurgeFailure struct {
	Entry *Entry
	Err   error
}

// PurgeReport accumulates the outcome of a purge: what was erased, what
// failed, and which erased entries had unreadable records. Failures never
// abort the batch.
type PurgeReport struct {
	Purged     []*Entry
	Failures   []PurgeFailure
	Invalid    []*Entry
	BytesFreed int64
}

// Purge permanently erases the selected entries. A missing payload or info
// file is not fatal; it is recorded and the batch continues. Entries with
// malformed records are still erased and flagged as invalid in the report.
// Afterwards every touched trash directory is repaired so it stays
// structurally valid for subsequent trashing.
func (s *Storage) Purge(entries []*Entry) *PurgeReport {
	report := &PurgeReport{}
	touched := make(map[string]*Directory)

	for _, e := range entries {
		touched[e.Dir.Root] = e.Dir

		if e.DecodeErr != nil {
			report.Invalid = append(report.Invalid, e)
		}

		if size, err := fs.DirSize(e.TrashPath); err == nil {
			report.BytesFreed += size
		}

		var firstErr error
		if err := os.RemoveAll(e.TrashPath); err != nil {
			firstErr = fmt.Errorf("remove payload: %w", err)
		}
		if err := os.Remove(e.InfoPath); err != nil && !os.IsNotExist(err) && firstErr == nil {
			firstErr = fmt.Errorf("remove info: %w", err)
		}

		if firstErr != nil {
			report.Failures = append(report.Failures, PurgeFailure{Entry: e, Err: firstErr})
			continue
		}
		report.Purged = append(report.Purged, e)
	}

	for _, dir := range touched {
		if err := dir.EnsureStructure(); err != nil {
			report.Failures = append(report.Failures, PurgeFailure{
				Entry: &Entry{Dir: dir},
				Err:   fmt.Errorf("repair trash structure: %w", err),
			})
		}
	}
	return report
}

// PurgeAll erases everything in every known trash directory.
func (s *Storage) PurgeAll() (*PurgeReport, error) {
	entries, err := s.List()
	if err != nil {
		return nil, err
	}
	return s.Purge(entries), nil
}

// EmptyDirectory erases the full contents of one trash directory by
// replacing its files/ and info/ subtrees with fresh empty ones.
func (s *Storage) EmptyDirectory(dir *Directory) error {
	for _, sub := range []string{dir.FilesDir(), dir.InfoDir()} {
		if fi, err := os.Lstat(sub); err == nil && fi.IsDir() {
			if err := os.RemoveAll(sub); err != nil {
				return NewStorageError("empty", sub, err)
			}
		}
	}
	if err := dir.EnsureStructure(); err != nil {
		return NewStorageError("empty", dir.Root, err)
	}
	return nil
}

// Status returns the number of payload entries in a trash directory and
// whether it is completely empty.
func (s *Storage) Status(dir *Directory) (count int, empty bool, err error) {
	files, err := os.ReadDir(dir.FilesDir())
	if err != nil && !os.IsNotExist(err) {
		return 0, false, NewStorageError("status", dir.FilesDir(), err)
	}
	infos, err := os.ReadDir(dir.InfoDir())
	if err != nil && !os.IsNotExist(err) {
		return 0, false, NewStorageError("status", dir.InfoDir(), err)
	}
	return len(files), len(files) == 0 && len(infos) == 0, nil
}
