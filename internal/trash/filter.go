package trash

import (
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/babarot/tt/internal/fs"
	"github.com/docker/go-units"
	"github.com/gobwas/glob"
	"github.com/k1LoW/duration"
)

// Filterable defines the interface that trashed entries must implement to
// be filtered
type Filterable interface {
	// GetName returns the original name of the file
	GetName() string
	// GetPath returns the current path in trash
	GetPath() string
	// GetDeletedAt returns when the file was trashed
	GetDeletedAt() time.Time
}

// IncludeOptions selects which entries stay in a listing.
type IncludeOptions struct {
	// Period keeps only entries trashed within the last N days; 0 keeps all
	Period int
}

// ExcludeOptions rejects entries from a listing.
type ExcludeOptions struct {
	Files    []string
	Patterns []string
	Globs    []string
	SizeMin  string
	SizeMax  string
}

// FilterOptions holds filtering configuration
type FilterOptions struct {
	Include IncludeOptions
	Exclude ExcludeOptions
}

// Filter applies filtering rules to a slice of items
func Filter[T Filterable](items []T, opts FilterOptions) []T {
	items = rejectByNames(items, opts.Exclude.Files)
	items = rejectByPatterns(items, opts.Exclude.Patterns)
	items = rejectByGlobs(items, opts.Exclude.Globs)
	items = rejectBySize(items, opts.Exclude.SizeMin, opts.Exclude.SizeMax)
	items = filterByPeriod(items, opts.Include.Period)
	return items
}

func rejectByNames[T Filterable](items []T, excludeFiles []string) []T {
	if len(excludeFiles) == 0 {
		return items
	}

	var filtered []T
	for _, item := range items {
		excluded := false
		for _, exclude := range excludeFiles {
			if item.GetName() == exclude {
				excluded = true
				break
			}
		}
		if !excluded {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

func rejectByPatterns[T Filterable](items []T, patterns []string) []T {
	if len(patterns) == 0 {
		return items
	}

	var filtered []T
	for _, item := range items {
		excluded := false
		for _, pattern := range patterns {
			if matched, err := regexp.MatchString(pattern, item.GetName()); err == nil && matched {
				excluded = true
				break
			}
		}
		if !excluded {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

func rejectByGlobs[T Filterable](items []T, globs []string) []T {
	if len(globs) == 0 {
		return items
	}

	var filtered []T
	for _, item := range items {
		excluded := false
		for _, g := range globs {
			if compiled, err := glob.Compile(g); err == nil && compiled.Match(item.GetName()) {
				excluded = true
				break
			}
		}
		if !excluded {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

func rejectBySize[T Filterable](items []T, minSize, maxSize string) []T {
	if minSize == "" && maxSize == "" {
		return items
	}

	var filtered []T
	for _, item := range items {
		size, err := fs.DirSize(item.GetPath())
		if err != nil {
			continue // Skip items we can't size
		}

		include := true
		if minSize != "" {
			if min, err := units.FromHumanSize(minSize); err == nil && size <= min {
				include = false
			}
		}
		if maxSize != "" {
			if max, err := units.FromHumanSize(maxSize); err == nil && max <= size {
				include = false
			}
		}
		if include {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

func filterByPeriod[T Filterable](items []T, period int) []T {
	if period <= 0 {
		return items
	}

	d, err := duration.Parse(fmt.Sprintf("%d days", period))
	if err != nil {
		slog.Error("failed to parse duration", "error", err)
		return items
	}

	var filtered []T
	for _, item := range items {
		if time.Since(item.GetDeletedAt()) < d {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
