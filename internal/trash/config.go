package trash

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/babarot/tt/internal/trash/mount"
)

// Config captures the process-wide state the engine needs: the user's home
// volume, the uid used to namespace shared trash areas, and the mount table.
// It is built once at startup (NewConfigFromEnv) rather than read ad hoc, so
// tests can inject a fake environment instead of mutating the real one.
type Config struct {
	// Home is the user's home directory
	Home string

	// XDGDataHome overrides $HOME/.local/share when non-empty
	XDGDataHome string

	// UID namespaces trash areas on shared filesystems
	UID int

	// Mounts enumerates filesystems that may hold trash directories
	Mounts mount.Table
}

// NewConfigFromEnv captures $HOME, $XDG_DATA_HOME and the effective uid.
func NewConfigFromEnv() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, err
	}
	return Config{
		Home:        home,
		XDGDataHome: os.Getenv("XDG_DATA_HOME"),
		UID:         os.Getuid(),
		Mounts:      mount.NewSystemTable(),
	}, nil
}

// Validate checks if the configuration is valid
func (c Config) Validate() error {
	if c.Home == "" {
		return errors.New("home directory is not set")
	}
	if !filepath.IsAbs(c.Home) {
		return errors.New("home directory must be an absolute path")
	}
	if c.Mounts == nil {
		return errors.New("mount table is not set")
	}
	return nil
}

// HomeTrashDir returns the user's primary trash directory: $XDG_DATA_HOME/Trash
// when set, otherwise $HOME/.local/share/Trash.
func (c Config) HomeTrashDir() string {
	dataDir := c.XDGDataHome
	if dataDir == "" {
		dataDir = filepath.Join(c.Home, ".local", "share")
	}
	return filepath.Join(dataDir, "Trash")
}
