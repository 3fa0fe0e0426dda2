package mount

import (
	"sort"
	"strings"

	"github.com/moby/sys/mountinfo"
)

// Pseudo and kernel filesystems that can never hold a trash directory.
var skipFSTypes = map[string]bool{
	"autofs":      true,
	"binfmt_misc": true,
	"bpf":         true,
	"cgroup":      true,
	"cgroup2":     true,
	"configfs":    true,
	"debugfs":     true,
	"devpts":      true,
	"devtmpfs":    true,
	"fusectl":     true,
	"hugetlbfs":   true,
	"mqueue":      true,
	"proc":        true,
	"pstore":      true,
	"securityfs":  true,
	"sysfs":       true,
	"tracefs":     true,
}

// NewSystemTable returns the live mount table of the host, filtered down to
// filesystems a trash directory could plausibly live on. The root filesystem
// is always included.
func NewSystemTable() Table {
	return systemTable{}
}

type systemTable struct{}

func (systemTable) Points() ([]Point, error) {
	mounts, err := mountinfo.GetMounts(nil)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var points []Point
	for _, m := range mounts {
		if skipFSTypes[m.FSType] {
			continue
		}
		if readOnly(m.Options) {
			continue
		}
		if seen[m.Mountpoint] {
			continue
		}
		seen[m.Mountpoint] = true
		points = append(points, Point{Root: m.Mountpoint})
	}
	if !seen["/"] {
		points = append(points, Point{Root: "/"})
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Root < points[j].Root })
	return points, nil
}

func readOnly(options string) bool {
	for _, opt := range strings.Split(options, ",") {
		if opt == "ro" {
			return true
		}
	}
	return false
}
