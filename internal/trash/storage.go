// Package trash implements the FreeDesktop.org Trash Specification v1.0:
// moving files into a recoverable trash area on the same filesystem, and
// listing, restoring and permanently erasing them later.
package trash

import (
	"time"
)

// Storage ties the locator and configuration together and exposes the trash
// operations: Put, List, Restore, Purge.
type Storage struct {
	cfg     Config
	locator *Locator

	// now is the clock used for DeletionDate stamps
	now func() time.Time
}

// NewStorage creates a Storage for the given configuration.
func NewStorage(cfg Config) (*Storage, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Storage{
		cfg:     cfg,
		locator: NewLocator(cfg),
		now:     time.Now,
	}, nil
}

// TrashedItem is the result of a successful Put: where the payload and its
// record ended up, under which identifier.
type TrashedItem struct {
	// Dir is the trash directory holding the item
	Dir *Directory

	// ID is the storage identifier, the unique name shared by
	// files/<ID> and info/<ID>.trashinfo
	ID string

	// Info is the metadata record written for the item
	Info *TrashInfo

	// TrashPath is the payload location inside files/
	TrashPath string

	// InfoPath is the record location inside info/
	InfoPath string
}
