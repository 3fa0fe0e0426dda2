package trash

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	filesDirName = "files"
	infoDirName  = "info"
)

// Kind classifies a trash directory by where it lives and who owns it.
type Kind int

const (
	// HomeTrash is $XDG_DATA_HOME/Trash or $HOME/.local/share/Trash
	HomeTrash Kind = iota

	// TopdirShared is the admin-created $topdir/.Trash (sticky, 1777).
	// Never created by this tool, only consumed.
	TopdirShared

	// TopdirSharedUser is the per-user area $topdir/.Trash/$uid
	TopdirSharedUser

	// TopdirPrivate is $topdir/.Trash-$uid
	TopdirPrivate
)

func (k Kind) String() string {
	switch k {
	case HomeTrash:
		return "home"
	case TopdirShared:
		return "topdir-shared"
	case TopdirSharedUser:
		return "topdir-shared-user"
	case TopdirPrivate:
		return "topdir-private"
	default:
		return "unknown"
	}
}

// Directory represents one trash root with its files/ and info/ subpaths.
type Directory struct {
	Root string
	Kind Kind
}

// FilesDir returns the path of the payload directory.
func (d *Directory) FilesDir() string {
	return filepath.Join(d.Root, filesDirName)
}

// InfoDir returns the path of the metadata directory.
func (d *Directory) InfoDir() string {
	return filepath.Join(d.Root, infoDirName)
}

func (d *Directory) filePath(id string) string {
	return filepath.Join(d.Root, filesDirName, id)
}

func (d *Directory) infoPath(id string) string {
	return filepath.Join(d.Root, infoDirName, id+infoSuffix)
}

// EnsureStructure creates the trash root with the mode its kind mandates and
// provisions the files/ and info/ subdirectories. A root that turns out to
// be a symbolic link is refused with an IntegrityError.
func (d *Directory) EnsureStructure() error {
	if err := d.createRoot(); err != nil {
		return err
	}
	if err := d.checkRoot(); err != nil {
		return err
	}

	// files/ and info/ inherit their security from the root: its restrictive
	// mode limits access regardless of the process umask.
	for _, sub := range []string{d.FilesDir(), d.InfoDir()} {
		if _, err := os.Lstat(sub); err == nil {
			continue
		}
		if err := os.Mkdir(sub, 0700); err != nil && !os.IsExist(err) {
			return fmt.Errorf("failed to create %s: %w", sub, err)
		}
	}
	return nil
}

// checkRoot verifies the resolved root is a directory and not a symlink.
func (d *Directory) checkRoot() error {
	fi, err := os.Lstat(d.Root)
	if err != nil {
		return err
	}
	if fi.Mode()&os.ModeSymlink != 0 {
		return &IntegrityError{Path: d.Root, Reason: "root is a symbolic link"}
	}
	if !fi.IsDir() {
		return &IntegrityError{Path: d.Root, Reason: "root is not a directory"}
	}
	return nil
}

func (d *Directory) createRoot() error {
	switch d.Kind {
	case HomeTrash:
		return d.createWithMode(0700)
	case TopdirShared:
		// Unreachable in practice: the locator validates an existing shared
		// trash but never constructs one. Kept for completeness.
		return d.createWithMode(os.ModeSticky | 0777)
	default:
		return d.createWithFallback(0700, os.ModeSticky|0777)
	}
}

func (d *Directory) createWithMode(mode os.FileMode) error {
	if _, err := os.Lstat(d.Root); os.IsNotExist(err) {
		if err := os.MkdirAll(d.Root, mode); err != nil {
			return fmt.Errorf("failed to create trash directory: %w", err)
		}
	}
	// MkdirAll applies the umask; force the exact mode.
	if err := os.Chmod(d.Root, mode); err != nil {
		return fmt.Errorf("failed to set trash directory mode: %w", err)
	}
	return nil
}

// createWithFallback attempts the primary mode and falls back to the other
// when permission is denied, e.g. when the parent of $topdir/.Trash/$uid
// forbids a chmod to 700. The fallback is a robustness choice beyond what
// the trash specification mandates.
func (d *Directory) createWithFallback(primary, fallback os.FileMode) error {
	if _, err := os.Lstat(d.Root); os.IsNotExist(err) {
		if err := os.MkdirAll(d.Root, primary); err != nil && !os.IsPermission(err) {
			return fmt.Errorf("failed to create trash directory: %w", err)
		}
	}
	err := os.Chmod(d.Root, primary)
	if err == nil {
		return nil
	}
	if !os.IsPermission(err) {
		return fmt.Errorf("failed to set trash directory mode: %w", err)
	}
	if err := os.Chmod(d.Root, fallback); err != nil {
		return fmt.Errorf("failed to set fallback trash directory mode: %w", err)
	}
	return nil
}
