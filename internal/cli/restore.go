package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/babarot/tt/internal/trash"
	"github.com/babarot/tt/internal/ui"
)

func (c *CLI) Restore() error {
	slog.Debug("cli.restore started")
	defer slog.Debug("cli.restore finished")

	entries, err := c.storage.List()
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return errors.New("no files in trash")
	}

	filtered := trash.Filter(entries, c.filterOptions())
	if len(filtered) == 0 {
		return errors.New("no files match the filter criteria")
	}

	selected, err := ui.RenderList(filtered, c.config.UI)
	if err != nil {
		return fmt.Errorf("file selection: %w", err)
	}

	if c.needsRestoreConfirmation(len(selected)) {
		prompt := fmt.Sprintf("restore %d %s?",
			len(selected), pluralize(len(selected), "file", "files"))
		if !confirm(prompt) {
			fmt.Println("canceled")
			return nil
		}
	}

	var errs []error
	for _, e := range selected {
		if err := c.restoreEntry(e); err != nil {
			errs = append(errs, fmt.Errorf("restore %s: %w", e.Name(), err))
			continue
		}
		if c.config.Core.Restore.Verbose {
			fmt.Printf("restored '%s' to %s\n", e.Name(), e.OriginalPath())
		}
	}

	return formatErrors(errs)
}

func (c *CLI) needsRestoreConfirmation(selected int) bool {
	if selected == 0 {
		return false
	}
	if c.option.Yes || c.option.Rm.Force {
		return false
	}
	return c.config.Core.Restore.Confirm
}

func (c *CLI) restoreEntry(e *trash.Entry) error {
	err := c.storage.Restore(e)
	switch {
	case err == nil:
		return nil
	case trash.IsDestinationExists(err):
		return fmt.Errorf("%s already exists, not overwriting", e.OriginalPath())
	case errors.Is(err, trash.ErrDestinationUnavailable):
		return fmt.Errorf("directory %s no longer exists, recreate it first",
			filepath.Dir(e.OriginalPath()))
	default:
		return err
	}
}

func formatErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}

	msg := fmt.Sprintf("%d errors occurred:\n", len(errs))
	for _, err := range errs {
		msg += fmt.Sprintf("  * %v\n", err)
	}
	return errors.New(msg)
}
