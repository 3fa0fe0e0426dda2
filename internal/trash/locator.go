package trash

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"

	"github.com/babarot/tt/internal/trash/mount"
	"golang.org/x/sync/errgroup"
)

// Locator resolves and provisions trash directories. Results are cached per
// filesystem token for the lifetime of the process, since mount topology
// does not change mid-run.
type Locator struct {
	cfg Config

	// deviceOf is the filesystem-identity probe, replaceable in tests
	deviceOf func(string) (mount.DeviceID, error)

	mu    sync.Mutex
	cache map[mount.DeviceID]*Directory
}

// NewLocator creates a Locator for the given configuration.
func NewLocator(cfg Config) *Locator {
	return &Locator{
		cfg:      cfg,
		deviceOf: mount.DeviceOf,
		cache:    make(map[mount.DeviceID]*Directory),
	}
}

// ResolveFor returns the trash directory legally usable for path: the home
// trash when path lives on the same filesystem as the user's data home,
// otherwise a trash area under the mount root of path's filesystem. The
// directory is created with its mandated mode if absent.
func (l *Locator) ResolveFor(path string) (*Directory, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	dev, err := l.deviceOf(abs)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	cached, ok := l.cache[dev]
	l.mu.Unlock()
	if ok {
		return cached, nil
	}

	dir, err := l.resolve(abs, dev)
	if err != nil {
		return nil, err
	}
	if err := dir.EnsureStructure(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.cache[dev] = dir
	l.mu.Unlock()

	slog.Debug("resolved trash directory", "path", abs, "root", dir.Root, "kind", dir.Kind)
	return dir, nil
}

func (l *Locator) resolve(abs string, dev mount.DeviceID) (*Directory, error) {
	homeTrash := l.cfg.HomeTrashDir()

	homeDev, err := l.deviceOf(homeTrash)
	if err == nil && homeDev == dev {
		// The home trash root must not be a symlink; a redirected trash is
		// never trusted.
		if fi, err := os.Lstat(homeTrash); err == nil && fi.Mode()&os.ModeSymlink != 0 {
			return nil, &IntegrityError{Path: homeTrash, Reason: "root is a symbolic link"}
		}
		return &Directory{Root: homeTrash, Kind: HomeTrash}, nil
	}

	topdir, err := mount.TopdirOf(abs, l.cfg.Mounts)
	if err != nil {
		return nil, err
	}

	uid := strconv.Itoa(l.cfg.UID)

	// Prefer the admin-created $topdir/.Trash when it passes the integrity
	// checks: a real directory, not a symlink, sticky bit set. The tool
	// never creates it, only the per-user area below it.
	shared := filepath.Join(topdir, ".Trash")
	if fi, err := os.Lstat(shared); err == nil {
		if fi.Mode()&os.ModeSymlink == 0 && fi.IsDir() && fi.Mode()&os.ModeSticky != 0 {
			return &Directory{Root: filepath.Join(shared, uid), Kind: TopdirSharedUser}, nil
		}
	}

	return &Directory{Root: filepath.Join(topdir, ".Trash-"+uid), Kind: TopdirPrivate}, nil
}

// EnumerateKnown walks the mounted filesystems and returns every trash
// directory that already exists and passes the integrity check. Nothing is
// created. The result is sorted by root path so callers see a deterministic
// order regardless of probe scheduling.
func (l *Locator) EnumerateKnown() ([]*Directory, error) {
	var dirs []*Directory

	homeTrash := l.cfg.HomeTrashDir()
	if d := validateExisting(homeTrash, HomeTrash); d != nil {
		dirs = append(dirs, d)
	}

	points, err := l.cfg.Mounts.Points()
	if err != nil {
		return nil, err
	}

	uid := strconv.Itoa(l.cfg.UID)

	// Probing a dead network mount can block; fan out and merge.
	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(8)
	for _, pt := range points {
		pt := pt
		g.Go(func() error {
			for _, d := range probeTopdir(pt.Root, uid) {
				mu.Lock()
				dirs = append(dirs, d)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(dirs, func(i, j int) bool { return dirs[i].Root < dirs[j].Root })
	return dirs, nil
}

// probeTopdir checks one mount root for the two external trash layouts.
func probeTopdir(topdir, uid string) []*Directory {
	var found []*Directory

	shared := filepath.Join(topdir, ".Trash")
	if fi, err := os.Lstat(shared); err == nil &&
		fi.Mode()&os.ModeSymlink == 0 && fi.IsDir() && fi.Mode()&os.ModeSticky != 0 {
		if d := validateExisting(filepath.Join(shared, uid), TopdirSharedUser); d != nil {
			found = append(found, d)
		}
	}

	if d := validateExisting(filepath.Join(topdir, ".Trash-"+uid), TopdirPrivate); d != nil {
		found = append(found, d)
	}
	return found
}

// validateExisting returns a Directory for root if it exists, is a real
// directory and not a symlink. Broken candidates are logged and skipped.
func validateExisting(root string, kind Kind) *Directory {
	fi, err := os.Lstat(root)
	if err != nil {
		return nil
	}
	if fi.Mode()&os.ModeSymlink != 0 {
		slog.Warn("skipping symlinked trash directory", "path", root)
		return nil
	}
	if !fi.IsDir() {
		slog.Debug("skipping non-directory trash candidate", "path", root)
		return nil
	}
	return &Directory{Root: root, Kind: kind}
}

// Known reports whether path is equal to or inside any trash directory the
// locator can currently see, including the one path itself would resolve to.
func (l *Locator) Known(path string) (bool, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false, err
	}

	dirs, err := l.EnumerateKnown()
	if err != nil {
		return false, err
	}
	for _, d := range dirs {
		if mount.Contains(d.Root, abs) {
			return true, nil
		}
	}

	// The directory this path would be trashed into may not exist yet.
	dev, err := l.deviceOf(abs)
	if err != nil {
		return false, err
	}
	target, err := l.resolve(abs, dev)
	if err != nil {
		// Being unable to resolve a target here is not a precondition
		// failure; Put will surface it properly.
		slog.Debug("could not resolve target trash during containment check", "path", abs, "error", err)
		return false, nil
	}
	return mount.Contains(target.Root, abs), nil
}

func (l *Locator) String() string {
	return fmt.Sprintf("locator(home=%s uid=%d)", l.cfg.HomeTrashDir(), l.cfg.UID)
}
