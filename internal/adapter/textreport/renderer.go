// Package textreport renders an inventory report as plain text lines.
package textreport

import (
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/goydb/mongoenum/pkg/magnitude"
	"github.com/goydb/mongoenum/pkg/model"
)

// AvgObjSizeMode selects how the average object size is formatted.
type AvgObjSizeMode string

const (
	// AvgObjSizeAsSize formats the average object size in bytes
	AvgObjSizeAsSize AvgObjSizeMode = "size"
	// AvgObjSizeAsCount formats the average object size like an item count
	AvgObjSizeAsCount AvgObjSizeMode = "count"
)

// Valid reports whether m is a known mode.
func (m AvgObjSizeMode) Valid() bool {
	return m == AvgObjSizeAsSize || m == AvgObjSizeAsCount
}

// Options control the layout of the report.
type Options struct {
	// Breakdown appends "= storage + index" to every database header
	Breakdown bool
	// AvgObjSize defaults to AvgObjSizeAsSize
	AvgObjSize AvgObjSizeMode
	// IndexColumn width of the index name column, defaults to 15
	IndexColumn int
	// SeparatorWidth width of the line after each database, defaults to 40
	SeparatorWidth int
}

// DefaultOptions returns the layout used by the command line tool.
func DefaultOptions() Options {
	return Options{
		Breakdown:      true,
		AvgObjSize:     AvgObjSizeAsSize,
		IndexColumn:    15,
		SeparatorWidth: 40,
	}
}

// Renderer turns a report into text.
type Renderer struct {
	Formatter magnitude.Formatter
	Options   Options
}

// Lines returns the report as a sequence of lines without line endings.
// The report is sorted in place. A database is validated before its
// section is produced; on failure the error is the last element of the
// sequence.
func (r Renderer) Lines(report *model.Report) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		report.Sort()

		for _, db := range report.Databases {
			err := db.Validate()
			if err != nil {
				yield("", err)
				return
			}
			for _, line := range r.database(db) {
				if !yield(line, nil) {
					return
				}
			}
		}

		for _, line := range r.failures(report.Failures) {
			if !yield(line, nil) {
				return
			}
		}
	}
}

// Render writes the report to w, one line at a time.
func (r Renderer) Render(w io.Writer, report *model.Report) error {
	for line, err := range r.Lines(report) {
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, line+"\n")
		if err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	return nil
}

func (r Renderer) database(db model.DatabaseStats) []string {
	opts := r.options()
	size := r.Formatter.Size

	header := "Database: " + db.Name + " -- " + size(float64(db.SizeOnDisk))
	if opts.Breakdown {
		header += " = " + size(float64(db.TotalStorageSize())) +
			" + " + size(float64(db.TotalIndexSize()))
	}
	lines := []string{header, "Collections:"}

	for _, col := range db.Collections {
		lines = append(lines, fmt.Sprintf(
			"  * %s -- storage: %s -- index: %s -- data: %s -- items: %s -- object: %s",
			col.Name,
			size(float64(col.StorageSize)),
			size(float64(col.TotalIndexSize)),
			size(float64(col.Size)),
			r.Formatter.Count(float64(col.Count)),
			r.avgObjSize(opts.AvgObjSize, col.AvgObjSize),
		))
		for _, idx := range col.Indexes() {
			lines = append(lines, fmt.Sprintf("      %-*s: %s",
				opts.IndexColumn, idx.Name, size(float64(idx.Size))))
		}
	}

	return append(lines, strings.Repeat("-", opts.SeparatorWidth))
}

func (r Renderer) failures(failures []model.CollectionFailure) []string {
	if len(failures) == 0 {
		return nil
	}
	lines := []string{"Failed to process collections:"}
	for _, f := range failures {
		lines = append(lines, " - "+f.Namespace()+": "+f.Reason)
	}
	return lines
}

func (r Renderer) avgObjSize(mode AvgObjSizeMode, v float64) string {
	if mode == AvgObjSizeAsCount {
		return r.Formatter.Count(v)
	}
	return r.Formatter.Size(v)
}

// options fills unset widths and modes with their defaults.
func (r Renderer) options() Options {
	opts := r.Options
	def := DefaultOptions()
	if opts.AvgObjSize == "" {
		opts.AvgObjSize = def.AvgObjSize
	}
	if opts.IndexColumn <= 0 {
		opts.IndexColumn = def.IndexColumn
	}
	if opts.SeparatorWidth <= 0 {
		opts.SeparatorWidth = def.SeparatorWidth
	}
	return opts
}
