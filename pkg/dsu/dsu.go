// Package dsu implements a disjoint-set forest over dense integer elements.
//
// Find uses iterative path compression and Join uses union by rank, so a
// sequence of m operations on n elements runs in O(m·α(n)). The forest is
// stored in two flat slices and never recurses, which keeps it usable for
// the tens of millions of vertices a large lattice produces.
package dsu

// DisjointSet partitions the elements [0, n) into disjoint sets.
// It is not safe for concurrent use.
type DisjointSet struct {
	parent     []int32
	rank       []uint8
	components int
}

// New returns a forest of n singleton sets.
func New(n int) *DisjointSet {
	d := &DisjointSet{
		parent:     make([]int32, n),
		rank:       make([]uint8, n),
		components: n,
	}
	for i := range d.parent {
		d.parent[i] = int32(i)
	}
	return d
}

// Len returns the number of elements.
func (d *DisjointSet) Len() int { return len(d.parent) }

// Find returns the representative of x's set.
func (d *DisjointSet) Find(x int) int {
	root := int32(x)
	for d.parent[root] != root {
		root = d.parent[root]
	}
	for cur := int32(x); d.parent[cur] != root; {
		next := d.parent[cur]
		d.parent[cur] = root
		cur = next
	}
	return int(root)
}

// Join merges the sets containing a and b. It reports whether they were
// previously disjoint; joining an element with itself or with a member of
// its own set is a no-op that returns false.
func (d *DisjointSet) Join(a, b int) bool {
	ra, rb := d.Find(a), d.Find(b)
	if ra == rb {
		return false
	}
	switch {
	case d.rank[ra] < d.rank[rb]:
		d.parent[ra] = int32(rb)
	case d.rank[ra] > d.rank[rb]:
		d.parent[rb] = int32(ra)
	default:
		d.parent[rb] = int32(ra)
		d.rank[ra]++
	}
	d.components--
	return true
}

// Connected reports whether a and b belong to the same set.
func (d *DisjointSet) Connected(a, b int) bool {
	return d.Find(a) == d.Find(b)
}

// Components returns the current number of disjoint sets.
func (d *DisjointSet) Components() int { return d.components }
