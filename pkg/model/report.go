package model

import "sort"

// Report is the snapshot of all databases gathered in a single run.
type Report struct {
	Databases []DatabaseStats
	// Failures lists collections that were skipped while gathering
	Failures []CollectionFailure
}

// CollectionFailure records a collection whose statistics could not
// be fetched.
type CollectionFailure struct {
	Database   string
	Collection string
	Reason     string
}

// Namespace returns the "db.collection" form of the failed collection.
func (f CollectionFailure) Namespace() string {
	return f.Database + "." + f.Collection
}

// Validate checks every database of the report, names must be unique.
func (r *Report) Validate() error {
	seen := make(map[string]struct{}, len(r.Databases))
	for _, d := range r.Databases {
		if _, ok := seen[d.Name]; ok {
			return &IntegrityError{Path: d.Name, Reason: "duplicate database"}
		}
		seen[d.Name] = struct{}{}

		if err := d.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Sort orders databases by size on disk and the collections of each
// database by data size, both descending. Equal values keep their
// input order.
func (r *Report) Sort() {
	sort.SliceStable(r.Databases, func(i, j int) bool {
		return r.Databases[i].SizeOnDisk > r.Databases[j].SizeOnDisk
	})
	for i := range r.Databases {
		cols := r.Databases[i].Collections
		sort.SliceStable(cols, func(i, j int) bool {
			return cols[i].Size > cols[j].Size
		})
	}
}
