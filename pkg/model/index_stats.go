package model

import (
	"fmt"
	"sort"
)

// IndexSize is one entry of a collection's index size mapping.
type IndexSize struct {
	Name string
	// Size number of bytes used by the index
	Size int64
}

func (s IndexSize) String() string {
	return fmt.Sprintf("<Index name=%q size=%d>", s.Name, s.Size)
}

// SortIndexSizes materializes the unordered mapping into a slice ordered
// by size descending. Equal sizes are ordered by name, so the result
// never depends on map iteration order.
func SortIndexSizes(m map[string]int64) []IndexSize {
	list := make([]IndexSize, 0, len(m))
	for name, size := range m {
		list = append(list, IndexSize{Name: name, Size: size})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].Size != list[j].Size {
			return list[i].Size > list[j].Size
		}
		return list[i].Name < list[j].Name
	})
	return list
}
