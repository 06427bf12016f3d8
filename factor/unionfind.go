package factor

// dsu is a disjoint-set union over dense integer elements with
// path compression and union by rank.
type dsu struct {
	parent []int
	rank   []int
}

// newDSU initializes n singleton sets. Complexity: O(n).
func newDSU(n int) *dsu {
	d := &dsu{parent: make([]int, n), rank: make([]int, n)}
	for i := 0; i < n; i++ {
		d.parent[i] = i
	}

	return d
}

// find returns the root of u, compressing the path as it walks.
// Iterative to avoid deep recursion on long chains.
func (d *dsu) find(u int) int {
	for d.parent[u] != u {
		d.parent[u] = d.parent[d.parent[u]]
		u = d.parent[u]
	}

	return u
}

// union merges the sets of u and v by rank; no-op when already joined.
func (d *dsu) union(u, v int) {
	ru, rv := d.find(u), d.find(v)
	if ru == rv {
		return
	}
	if d.rank[ru] < d.rank[rv] {
		ru, rv = rv, ru
	}
	d.parent[rv] = ru
	if d.rank[ru] == d.rank[rv] {
		d.rank[ru]++
	}
}
