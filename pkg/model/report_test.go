package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReportSortStable(t *testing.T) {
	r := &Report{Databases: []DatabaseStats{
		{Name: "a", SizeOnDisk: 1},
		{Name: "b", SizeOnDisk: 7},
		{Name: "c", SizeOnDisk: 1},
		{Name: "d", SizeOnDisk: 7, Collections: []CollectionStats{
			{Name: "one", Size: 2},
			{Name: "two", Size: 2},
			{Name: "three", Size: 3},
		}},
	}}
	r.Sort()

	var names []string
	for _, d := range r.Databases {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"b", "d", "a", "c"}, names)

	cols := r.Databases[1].Collections
	assert.Equal(t, "three", cols[0].Name)
	assert.Equal(t, "one", cols[1].Name)
	assert.Equal(t, "two", cols[2].Name)
}
