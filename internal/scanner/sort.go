package scanner

import (
	"sort"
	"strings"
)

// SortPolicy orders the final duplicate sets. The engine default is
// descending reclaimable space; callers may override it.
type SortPolicy int

const (
	SortByReclaimable SortPolicy = iota
	SortBySize
	SortByCount
)

// ParseSortPolicy maps a config string onto a policy; anything
// unrecognized falls back to the default.
func ParseSortPolicy(name string) SortPolicy {
	switch strings.TrimSpace(strings.ToLower(name)) {
	case "size":
		return SortBySize
	case "count":
		return SortByCount
	default:
		return SortByReclaimable
	}
}

// sortSets orders sets by the policy, descending, with ascending first
// path as the tie-break so results are reproducible.
func sortSets(sets []DuplicateSet, policy SortPolicy) {
	key := func(s *DuplicateSet) int64 {
		switch policy {
		case SortBySize:
			return s.Size
		case SortByCount:
			return int64(len(s.Paths))
		default:
			return s.Reclaimable()
		}
	}

	sort.SliceStable(sets, func(i, j int) bool {
		ki, kj := key(&sets[i]), key(&sets[j])
		if ki != kj {
			return ki > kj
		}
		return sets[i].Paths[0] < sets[j].Paths[0]
	})
}
