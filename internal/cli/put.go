package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/babarot/tt/internal/fs"
	"github.com/babarot/tt/internal/trash"
)

// System roots that must never be trashed, regardless of configuration.
var protectedPaths = []string{
	"/",
	"/bin",
	"/boot",
	"/etc",
	"/home",
	"/tmp",
	"/usr",
	"/var",
}

func (c *CLI) Put(args []string) error {
	slog.Debug("cli.put started")
	defer slog.Debug("cli.put finished")

	if len(args) == 0 {
		return errors.New("too few arguments")
	}

	// One failing argument must not abort the rest; each outcome is
	// reported on its own.
	var errs []error
	for _, arg := range args {
		if err := c.putPath(arg); err != nil {
			errs = append(errs, fmt.Errorf("failed to process %s: %w", arg, err))
		}
	}

	return formatErrors(errs)
}

func (c *CLI) putPath(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			if !c.option.Rm.Force {
				return fmt.Errorf("%s: no such file or directory", path)
			}
			return nil
		}
		return err
	}

	if err := c.validatePath(path); err != nil {
		return err
	}

	item, err := c.storage.Put(path)
	if err != nil {
		return putError(path, err)
	}

	if c.option.Rm.Verbose {
		if info.IsDir() {
			fmt.Printf("removed directory '%s'\n", path)
		} else {
			fmt.Printf("removed '%s'\n", path)
		}
	}

	slog.Debug("trashed", "path", path, "id", item.ID, "trash", item.Dir.Root)
	return nil
}

// putError maps engine errors to user-facing messages.
func putError(path string, err error) error {
	switch {
	case trash.IsAlreadyInTrash(err):
		return fmt.Errorf("%s: already in trash", path)
	case trash.IsCrossDevice(err):
		return fmt.Errorf("%s: cannot move to trash across filesystems", path)
	default:
		return err
	}
}

// validatePath checks if path is valid for trashing
func (c *CLI) validatePath(path string) error {
	unsafe, err := fs.IsUnsafePath(path)
	if err != nil {
		return err
	}
	if unsafe {
		return fmt.Errorf("refusing to trash %q", path)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	if slices.Contains(protectedPaths, absPath) ||
		slices.Contains(c.config.Core.Protected, absPath) {
		return fmt.Errorf("cannot trash protected path: %s", path)
	}

	return nil
}
