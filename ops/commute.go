package ops

// Commutation is the precomputed L×L non-commutation matrix NC.
// NC[i][j] is true when operators i and j do NOT commute. The matrix is
// symmetric with a zero diagonal and is stored row-major in a flat
// boolean slice for cache friendliness.
type Commutation struct {
	l         int
	commuting bool
	nc        []bool
}

// NewCommutation builds the non-commutation matrix for alphabet a.
// Under the commuting model every pair commutes and the matrix stays
// all-false. Otherwise NC[i][j] is set exactly when i and j belong to
// the same party and their copy vectors overlap on at least one source.
// Complexity: O(L²) time and memory, done once per scenario.
func NewCommutation(a *Alphabet, commuting bool) *Commutation {
	l := a.L()
	c := &Commutation{l: l, commuting: commuting, nc: make([]bool, l*l)}
	if commuting {
		return c
	}
	all := a.All()
	for i := 0; i < l; i++ {
		for j := i + 1; j < l; j++ {
			if all[i].Party == all[j].Party && all[i].SharesCopy(all[j]) {
				c.nc[i*l+j] = true
				c.nc[j*l+i] = true
			}
		}
	}

	return c
}

// NonCommuting reports NC[i][j]. The diagonal is always false: an
// operator trivially commutes with itself.
func (c *Commutation) NonCommuting(i, j int) bool {
	return c.nc[i*c.l+j]
}

// Commuting reports whether the all-commuting model is selected.
func (c *Commutation) Commuting() bool { return c.commuting }

// L returns the alphabet size the matrix was built for.
func (c *Commutation) L() int { return c.l }
