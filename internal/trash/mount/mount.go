// Package mount resolves filesystem identity: which filesystem a path lives
// on, and which mount point is the topdir of that filesystem. Trashing is a
// rename, so the engine must know device boundaries before it moves anything.
package mount

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
)

// DeviceID is an opaque token identifying one mounted filesystem. Two paths
// with equal tokens can be renamed into each other without a copy.
type DeviceID uint64

// Point is one mounted filesystem root.
type Point struct {
	Root string
}

// Table enumerates the mount points that may hold trash directories.
type Table interface {
	Points() ([]Point, error)
}

// ResolutionError reports a path whose filesystem identity could not be
// determined.
type ResolutionError struct {
	Path string
	Err  error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("cannot resolve filesystem for %s: %v", e.Path, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// DeviceOf returns the filesystem token for path. A path that does not exist
// yet takes the token of its nearest existing ancestor, since any file
// created there would land on that ancestor's filesystem. Symlinks are not
// followed; the link itself is the trashable object.
func DeviceOf(path string) (DeviceID, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return 0, &ResolutionError{Path: path, Err: err}
	}

	for p := abs; ; p = filepath.Dir(p) {
		fi, err := os.Lstat(p)
		if err == nil {
			st, ok := fi.Sys().(*syscall.Stat_t)
			if !ok {
				return 0, &ResolutionError{Path: path, Err: fmt.Errorf("no device information for %s", p)}
			}
			return DeviceID(st.Dev), nil
		}
		if !os.IsNotExist(err) {
			return 0, &ResolutionError{Path: path, Err: err}
		}
		if p == filepath.Dir(p) {
			return 0, &ResolutionError{Path: path, Err: err}
		}
	}
}

// SameDevice reports whether both paths resolve to the same filesystem.
func SameDevice(a, b string) (bool, error) {
	da, err := DeviceOf(a)
	if err != nil {
		return false, err
	}
	db, err := DeviceOf(b)
	if err != nil {
		return false, err
	}
	return da == db, nil
}

// Contains reports whether path equals root or lies beneath it. The
// comparison is component-wise: "/mnt/data2" is not inside "/mnt/data".
func Contains(root, path string) bool {
	root = filepath.Clean(root)
	path = filepath.Clean(path)
	if root == path {
		return true
	}
	if root == string(filepath.Separator) {
		return strings.HasPrefix(path, root)
	}
	return strings.HasPrefix(path, root+string(filepath.Separator))
}

// TopdirOf returns the mount point containing path, picking the longest
// matching root when mounts nest.
func TopdirOf(path string, table Table) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", &ResolutionError{Path: path, Err: err}
	}

	points, err := table.Points()
	if err != nil {
		return "", &ResolutionError{Path: path, Err: err}
	}

	best := ""
	for _, pt := range points {
		if Contains(pt.Root, abs) && len(filepath.Clean(pt.Root)) > len(best) {
			best = filepath.Clean(pt.Root)
		}
	}
	if best == "" {
		return "", &ResolutionError{Path: path, Err: fmt.Errorf("no mount point contains it")}
	}
	return best, nil
}

// Static is a fixed mount table for tests and callers that already know
// their topology.
type Static struct {
	points []Point
}

// NewStatic builds a Static table; points are kept sorted by root.
func NewStatic(points ...Point) *Static {
	ps := make([]Point, len(points))
	copy(ps, points)
	sort.Slice(ps, func(i, j int) bool { return ps[i].Root < ps[j].Root })
	return &Static{points: ps}
}

func (s *Static) Points() ([]Point, error) {
	return append([]Point(nil), s.points...), nil
}
