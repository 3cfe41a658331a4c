// Package history keeps a ledger of harvested lectures.
package history

import (
	"time"

	"github.com/echodl/echodl/filesystem"
	"github.com/echodl/echodl/where"
	"github.com/metafates/gache"
	"golang.org/x/exp/slices"
)

// cacher is the disk-backed ledger.
var cacher = gache.New[map[string]*Record](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns every record of the ledger keyed by course and lesson.
func Get() (map[string]*Record, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*Record), nil
	}
	return cached, nil
}

// List returns the records, most recent first.
func List() ([]*Record, error) {
	saved, err := Get()
	if err != nil {
		return nil, err
	}

	records := make([]*Record, 0, len(saved))
	for _, r := range saved {
		records = append(records, r)
	}

	slices.SortFunc(records, func(a, b *Record) int {
		return b.HarvestedAt.Compare(a.HarvestedAt)
	})

	return records, nil
}

// Save records a harvested lecture. Saving the same lecture again replaces its record.
func Save(record *Record) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	if record.HarvestedAt.IsZero() {
		record.HarvestedAt = time.Now()
	}

	saved[record.encode()] = record
	return cacher.Set(saved)
}

// Remove deletes a record from the ledger.
func Remove(record *Record) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, record.encode())
	return cacher.Set(saved)
}

// Clear empties the ledger.
func Clear() error {
	return cacher.Set(make(map[string]*Record))
}
