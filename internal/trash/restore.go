package trash

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"
)

// Restore moves a trashed entry back to its recorded original path and
// removes its metadata record. It never overwrites: an existing filesystem
// entry at the destination refuses the restore and leaves the trashed item
// untouched. Missing ancestor directories are not recreated; silently doing
// so could restore into an unintended location.
func (s *Storage) Restore(e *Entry) error {
	if e.DecodeErr != nil {
		return NewStorageError("restore", e.InfoPath, e.DecodeErr)
	}
	if e.Info == nil {
		return NewStorageError("restore", e.InfoPath,
			&DecodeError{Path: e.InfoPath, Field: infoPathKey, Err: errors.New("no usable record")})
	}

	dst := e.Info.Path

	if _, err := os.Lstat(dst); err == nil {
		return NewStorageError("restore", dst, ErrDestinationExists)
	} else if !os.IsNotExist(err) {
		return NewStorageError("restore", dst, err)
	}

	parent := filepath.Dir(dst)
	if fi, err := os.Stat(parent); err != nil {
		if os.IsNotExist(err) {
			return NewStorageError("restore", dst, ErrDestinationUnavailable)
		}
		return NewStorageError("restore", dst, err)
	} else if !fi.IsDir() {
		return NewStorageError("restore", dst, ErrDestinationUnavailable)
	}

	if _, err := os.Lstat(e.TrashPath); err != nil {
		if os.IsNotExist(err) {
			return NewStorageError("restore", e.TrashPath, ErrTrashedItemMissing)
		}
		return NewStorageError("restore", e.TrashPath, err)
	}

	if err := os.Rename(e.TrashPath, dst); err != nil {
		if errors.Is(err, syscall.EXDEV) {
			return NewStorageError("restore", dst, ErrCrossDevice)
		}
		return NewStorageError("restore", dst, fmt.Errorf("failed to move out of trash: %w", err))
	}

	// The payload is safely back; a stray info file is a cleanup nuisance,
	// not a data-loss risk, so this is reported but not rolled back.
	if err := os.Remove(e.InfoPath); err != nil {
		slog.Warn("restored but failed to remove trash info", "info", e.InfoPath, "error", err)
	}

	slog.Debug("restored", "id", e.ID, "dst", dst)
	return nil
}
