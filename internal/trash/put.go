package trash

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/babarot/tt/internal/trash/mount"
)

// The collision counter starts at 2, matching the behavior of common file
// managers: when "file.txt" is taken, the next one becomes "file.2.txt".
const collisionCounterStart = 2

// Put moves the filesystem entry at src into the trash directory resolved
// for its filesystem. The metadata record is written and durable before the
// payload is renamed, so an interruption can never leave a payload in
// files/ without recoverable provenance.
func (s *Storage) Put(src string) (*TrashedItem, error) {
	abs, err := filepath.Abs(src)
	if err != nil {
		return nil, NewStorageError("put", src, err)
	}

	if _, err := os.Lstat(abs); err != nil {
		if os.IsNotExist(err) {
			return nil, NewStorageError("put", src, ErrNotFound)
		}
		return nil, NewStorageError("put", src, err)
	}

	// Reject trashing the trash itself, or anything already inside one, for
	// every trash directory currently known, before any mutation.
	inTrash, err := s.locator.Known(abs)
	if err != nil {
		return nil, NewStorageError("put", src, err)
	}
	if inTrash {
		return nil, NewStorageError("put", src, ErrAlreadyInTrash)
	}

	dir, err := s.locator.ResolveFor(abs)
	if err != nil {
		return nil, NewStorageError("put", src, err)
	}

	// Guaranteed by construction, but re-validated before the transfer: the
	// rename below must never silently degrade into a copy.
	same, err := mount.SameDevice(abs, dir.FilesDir())
	if err != nil {
		return nil, NewStorageError("put", src, err)
	}
	if !same {
		return nil, NewStorageError("put", src, ErrCrossDevice)
	}

	item, err := s.transfer(abs, dir)
	if err != nil {
		return nil, NewStorageError("put", src, err)
	}

	slog.Debug("trashed", "src", abs, "id", item.ID, "trash", dir.Root)
	return item, nil
}

func (s *Storage) transfer(abs string, dir *Directory) (*TrashedItem, error) {
	info := &TrashInfo{
		Path:         abs,
		DeletionDate: s.now(),
	}

	// Pick an identifier free in both namespaces and claim it by creating
	// the info file with O_EXCL. Losing the race to another process shows up
	// as os.ErrExist here, in which case the probe simply moves on to the
	// next candidate.
	id, infoPath, err := s.claimIdentifier(abs, dir, info)
	if err != nil {
		return nil, fmt.Errorf("failed to write trash info: %w", err)
	}

	dst := dir.filePath(id)
	if err := os.Rename(abs, dst); err != nil {
		// The record was written first; without the payload it would be an
		// orphan, so it must go. A failed cleanup is reported, never hidden.
		if rmErr := os.Remove(infoPath); rmErr != nil {
			slog.Warn("failed to clean up trash info after move failure",
				"info", infoPath, "error", rmErr)
		}
		if errors.Is(err, syscall.EXDEV) {
			return nil, ErrCrossDevice
		}
		return nil, fmt.Errorf("failed to move into trash: %w", err)
	}

	return &TrashedItem{
		Dir:       dir,
		ID:        id,
		Info:      info,
		TrashPath: dst,
		InfoPath:  infoPath,
	}, nil
}

func (s *Storage) claimIdentifier(abs string, dir *Directory, info *TrashInfo) (string, string, error) {
	base := filepath.Base(abs)
	id := base
	counter := collisionCounterStart

	for {
		infoPath := dir.infoPath(id)

		// Keep files/ and info/ in lock-step: the name must be free in both.
		if _, err := os.Lstat(dir.filePath(id)); err == nil {
			id = collisionName(base, counter)
			counter++
			continue
		}

		err := info.Save(infoPath)
		if err == nil {
			return id, infoPath, nil
		}
		if os.IsExist(err) {
			id = collisionName(base, counter)
			counter++
			continue
		}
		return "", "", err
	}
}

// collisionName inserts n before the first dot of base, so that
// "archive.tar.gz" becomes "archive.2.tar.gz" rather than
// "archive.tar.2.gz". Dotfiles and extensionless names get a plain suffix:
// ".config" -> ".config.2", "no_ext" -> "no_ext.2".
func collisionName(base string, n int) string {
	if dot := strings.Index(base, "."); dot > 0 {
		return fmt.Sprintf("%s.%d%s", base[:dot], n, base[dot:])
	}
	return fmt.Sprintf("%s.%d", base, n)
}
