package trash

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/babarot/tt/internal/trash/mount"
)

// testConfig builds a config rooted in a throwaway home directory. The mount
// table only knows "/" so every path resolves to the home trash unless a test
// overrides the table and the device probe.
func testConfig(t *testing.T) Config {
	t.Helper()
	home := t.TempDir()
	return Config{
		Home:        home,
		XDGDataHome: filepath.Join(home, "data"),
		UID:         7001,
		Mounts:      mount.NewStatic(mount.Point{Root: "/"}),
	}
}

// newTestStorage returns a storage whose device probe reports one filesystem
// for everything, so the home trash is always the resolution target.
func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := NewStorage(testConfig(t))
	if err != nil {
		t.Fatal(err)
	}
	s.locator.deviceOf = func(string) (mount.DeviceID, error) { return 1, nil }
	return s
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestNewStorageValidation(t *testing.T) {
	if _, err := NewStorage(Config{}); err == nil {
		t.Error("empty config should be rejected")
	}
	if _, err := NewStorage(Config{Home: "relative/home", Mounts: mount.NewStatic()}); err == nil {
		t.Error("relative home should be rejected")
	}
	if _, err := NewStorage(Config{Home: "/home/u"}); err == nil {
		t.Error("missing mount table should be rejected")
	}
	if _, err := NewStorage(testConfig(t)); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}
}

func TestHomeTrashDir(t *testing.T) {
	cfg := Config{Home: "/home/u"}
	if got, want := cfg.HomeTrashDir(), "/home/u/.local/share/Trash"; got != want {
		t.Errorf("HomeTrashDir() = %q, want %q", got, want)
	}

	cfg.XDGDataHome = "/xdg/data"
	if got, want := cfg.HomeTrashDir(), "/xdg/data/Trash"; got != want {
		t.Errorf("HomeTrashDir() with XDG override = %q, want %q", got, want)
	}
}
