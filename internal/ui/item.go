package ui

import (
	"fmt"
	"path/filepath"

	"github.com/babarot/tt/internal/fs"
	"github.com/babarot/tt/internal/trash"
	"github.com/dustin/go-humanize"
)

// Item wraps a trash entry for display in the selection list.
type Item struct {
	entry *trash.Entry
}

// NewItem creates a list item for the given trash entry.
func NewItem(e *trash.Entry) *Item {
	return &Item{entry: e}
}

// Title returns the name of the file. Directories get a trailing slash,
// entries that cannot be restored as-is are marked.
func (i *Item) Title() string {
	name := i.entry.Name()
	if i.entry.IsDir {
		name += "/"
	}
	if i.entry.Broken() {
		name += " (broken)"
	}
	return name
}

// Description returns the size, deletion time and original location of the
// file.
func (i *Item) Description() string {
	if i.entry.Orphan == trash.OrphanMissingPayload {
		return "(payload is gone from the trash)"
	}
	if i.entry.Info == nil {
		return "(metadata record is missing or unreadable)"
	}
	return fmt.Sprintf("%s • %s • %s",
		i.Size(),
		humanize.Time(i.entry.Info.DeletionDate),
		filepath.Dir(i.entry.OriginalPath()),
	)
}

// FilterValue returns the string used for filtering the item in the list.
func (i *Item) FilterValue() string {
	return i.entry.Name()
}

// Size returns the human-readable size of the trashed payload.
func (i *Item) Size() string {
	size, err := fs.DirSize(i.entry.TrashPath)
	if err != nil {
		return "(cannot be calculated)"
	}
	return humanize.Bytes(uint64(size))
}

// Entry returns the underlying trash entry.
func (i *Item) Entry() *trash.Entry {
	return i.entry
}
