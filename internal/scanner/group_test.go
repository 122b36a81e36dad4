package scanner

import "testing"

func entry(path string, size int64) *fileEntry {
	return &fileEntry{path: path, size: size}
}

func TestBucketBySize(t *testing.T) {
	entries := []*fileEntry{
		entry("a", 10),
		entry("b", 20),
		entry("c", 10),
		entry("d", 30), // singleton, pruned
		entry("e", 20),
		entry("f", 20),
	}

	groups := bucketBySize(entries)

	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	// Descending size order.
	if groups[0][0].size != 20 || len(groups[0]) != 3 {
		t.Errorf("groups[0] = size %d len %d, want size 20 len 3", groups[0][0].size, len(groups[0]))
	}
	if groups[1][0].size != 10 || len(groups[1]) != 2 {
		t.Errorf("groups[1] = size %d len %d, want size 10 len 2", groups[1][0].size, len(groups[1]))
	}
	// Discovery order within the group.
	if groups[0][0].path != "b" || groups[0][1].path != "e" || groups[0][2].path != "f" {
		t.Errorf("group member order broken: %v", []string{groups[0][0].path, groups[0][1].path, groups[0][2].path})
	}
}

func TestRegroup(t *testing.T) {
	a := entry("a", 5)
	b := entry("b", 5)
	c := entry("c", 5)
	d := entry("d", 5)
	a.partialDigest = "x"
	b.partialDigest = "x"
	c.partialDigest = "y" // singleton digest, pruned
	d.partialDigest = "x"
	d.failed = true // demoted, excluded

	groups := regroup([][]*fileEntry{{a, b, c, d}}, func(e *fileEntry) string { return e.partialDigest })

	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}
	if len(groups[0]) != 2 || groups[0][0] != a || groups[0][1] != b {
		t.Errorf("group = %v, want [a b]", groups[0])
	}
}

func TestRegroupNeverGrows(t *testing.T) {
	a := entry("a", 5)
	b := entry("b", 5)
	a.partialDigest = "same"
	b.partialDigest = "same"

	in := [][]*fileEntry{{a, b}}
	out := regroup(in, func(e *fileEntry) string { return e.partialDigest })

	if len(out) != 1 || len(out[0]) > len(in[0]) {
		t.Errorf("regroup grew a group: in %d members, out %d", len(in[0]), len(out[0]))
	}
}

func TestFlattenSkipsFailed(t *testing.T) {
	a := entry("a", 1)
	b := entry("b", 1)
	b.failed = true

	flat := flatten([][]*fileEntry{{a, b}})
	if len(flat) != 1 || flat[0] != a {
		t.Errorf("flatten = %v, want [a]", flat)
	}
}
