package model

import (
	"fmt"
	"math"
)

// CollectionStats holds the collstats figures of a single collection.
// All byte values are as reported by the server.
type CollectionStats struct {
	Name string
	// Count number of documents in the collection
	Count int64
	// AvgObjSize average document size in bytes, 0 if not reported
	AvgObjSize float64
	// Size logical size of the documents in bytes
	Size int64
	// StorageSize bytes allocated on disk for the documents
	StorageSize int64
	// IndexSizes bytes used by each index, keyed by index name
	IndexSizes map[string]int64
	// TotalIndexSize bytes used by all indexes, trusted as reported
	TotalIndexSize int64
}

// TotalSize is the on disk footprint of documents and indexes.
func (c CollectionStats) TotalSize() int64 {
	return c.StorageSize + c.TotalIndexSize
}

// Indexes returns the index sizes ordered by size descending.
func (c CollectionStats) Indexes() []IndexSize {
	return SortIndexSizes(c.IndexSizes)
}

// Validate checks that all figures are usable for rendering. path is
// used to locate the collection in error messages.
func (c CollectionStats) Validate(path string) error {
	if c.Name == "" {
		return &IntegrityError{Path: path, Reason: "empty collection name"}
	}
	path = path + "." + c.Name

	fields := []struct {
		name  string
		value int64
	}{
		{"count", c.Count},
		{"size", c.Size},
		{"storageSize", c.StorageSize},
		{"totalIndexSize", c.TotalIndexSize},
	}
	for _, f := range fields {
		if f.value < 0 {
			return &IntegrityError{Path: path, Field: f.name, Reason: fmt.Sprintf("negative value %d", f.value)}
		}
	}
	if c.AvgObjSize < 0 || math.IsNaN(c.AvgObjSize) || math.IsInf(c.AvgObjSize, 0) {
		return &IntegrityError{Path: path, Field: "avgObjSize", Reason: fmt.Sprintf("invalid value %v", c.AvgObjSize)}
	}
	for _, idx := range c.Indexes() {
		if idx.Size < 0 {
			return &IntegrityError{Path: path, Field: "indexSizes." + idx.Name, Reason: fmt.Sprintf("negative value %d", idx.Size)}
		}
	}
	return nil
}

func (c CollectionStats) String() string {
	return fmt.Sprintf("<Collection name=%q count=%d size=%d storage=%d index=%d>",
		c.Name, c.Count, c.Size, c.StorageSize, c.TotalIndexSize)
}
