package scanner

import "sort"

// bucketBySize groups entries by exact byte size and prunes singleton
// buckets: a unique size can never have a duplicate. Groups come out in
// descending size order; members keep discovery order.
func bucketBySize(entries []*fileEntry) [][]*fileEntry {
	bySize := make(map[int64][]*fileEntry)
	for _, entry := range entries {
		bySize[entry.size] = append(bySize[entry.size], entry)
	}

	sizes := make([]int64, 0, len(bySize))
	for size, group := range bySize {
		if len(group) < 2 {
			continue
		}
		sizes = append(sizes, size)
	}
	sort.Slice(sizes, func(i, j int) bool { return sizes[i] > sizes[j] })

	groups := make([][]*fileEntry, 0, len(sizes))
	for _, size := range sizes {
		groups = append(groups, bySize[size])
	}
	return groups
}

// regroup splits every group by the given digest key, drops failed
// members, and prunes sub-groups with fewer than two members. Member
// order within a sub-group follows the parent group's order, keeping
// output deterministic.
func regroup(groups [][]*fileEntry, key func(*fileEntry) string) [][]*fileEntry {
	var out [][]*fileEntry
	for _, group := range groups {
		subgroups := make(map[string][]*fileEntry)
		var order []string
		for _, entry := range group {
			if entry.failed {
				continue
			}
			k := key(entry)
			if _, seen := subgroups[k]; !seen {
				order = append(order, k)
			}
			subgroups[k] = append(subgroups[k], entry)
		}
		for _, k := range order {
			if sub := subgroups[k]; len(sub) >= 2 {
				out = append(out, sub)
			}
		}
	}
	return out
}

// flatten collects the live members of all groups, in group order.
func flatten(groups [][]*fileEntry) []*fileEntry {
	var entries []*fileEntry
	for _, group := range groups {
		for _, entry := range group {
			if !entry.failed {
				entries = append(entries, entry)
			}
		}
	}
	return entries
}
