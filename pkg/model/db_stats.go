package model

import "fmt"

// DatabaseStats describes one database and its collections.
type DatabaseStats struct {
	Name string
	// SizeOnDisk total bytes as reported by listDatabases
	SizeOnDisk  int64
	Collections []CollectionStats
}

// TotalStorageSize sums the storage size of all collections.
func (d DatabaseStats) TotalStorageSize() (total int64) {
	for _, c := range d.Collections {
		total += c.StorageSize
	}
	return
}

// TotalIndexSize sums the total index size of all collections.
func (d DatabaseStats) TotalIndexSize() (total int64) {
	for _, c := range d.Collections {
		total += c.TotalIndexSize
	}
	return
}

// Validate checks the database and every collection in it.
func (d DatabaseStats) Validate() error {
	if d.Name == "" {
		return &IntegrityError{Reason: "empty database name"}
	}
	if d.SizeOnDisk < 0 {
		return &IntegrityError{Path: d.Name, Field: "sizeOnDisk", Reason: fmt.Sprintf("negative value %d", d.SizeOnDisk)}
	}

	seen := make(map[string]struct{}, len(d.Collections))
	for _, c := range d.Collections {
		if _, ok := seen[c.Name]; ok {
			return &IntegrityError{Path: d.Name + "." + c.Name, Reason: "duplicate collection"}
		}
		seen[c.Name] = struct{}{}

		if err := c.Validate(d.Name); err != nil {
			return err
		}
	}
	return nil
}

func (d DatabaseStats) String() string {
	return fmt.Sprintf("<Database name=%q sizeOnDisk=%d collections=%d>",
		d.Name, d.SizeOnDisk, len(d.Collections))
}
