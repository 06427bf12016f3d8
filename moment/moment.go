package moment

import (
	"errors"
	"runtime"
	"sort"

	"github.com/golang/glog"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/inflation/canon"
	"github.com/katalvlaran/inflation/genset"
	"github.com/katalvlaran/inflation/monomial"
	"github.com/katalvlaran/inflation/symmetry"
)

// Sentinel errors for moment-matrix construction.
var (
	// ErrNilInput indicates a nil set, registry, or group.
	ErrNilInput = errors.New("moment: nil construction input")

	// ErrEmptySet indicates a generating set without monomials.
	ErrEmptySet = errors.New("moment: empty generating set")
)

// Option configures the builder.
type Option func(*config)

type config struct {
	workers int
}

// WithWorkers caps the resolution-phase parallelism. Defaults to
// GOMAXPROCS. The result is identical for any worker count.
func WithWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.workers = n
		}
	}
}

// Matrix is the symmetry-quotiented moment matrix.
//
// Fields:
//
//	N         - matrix dimension (generator count).
//	IDs       - row-major n×n compact monomial ids.
//	Monomials - compact id → interned compound.
//	Remap     - registry id → compact id for the surviving entries.
type Matrix struct {
	N         int
	IDs       []int
	Monomials []*monomial.Compound
	Remap     map[int]int
}

// At returns the compact id at (i, j).
func (m *Matrix) At(i, j int) int { return m.IDs[i*m.N+j] }

// Monomial returns the compound behind the compact id at (i, j).
func (m *Matrix) Monomial(i, j int) *monomial.Compound {
	return m.Monomials[m.At(i, j)]
}

// Numeric substitutes values (keyed by compact id) into a symmetric
// dense view for certificate evaluation. Missing ids read as 0.
func (m *Matrix) Numeric(values map[int]float64) *mat.SymDense {
	out := mat.NewSymDense(m.N, nil)
	for i := 0; i < m.N; i++ {
		for j := i; j < m.N; j++ {
			out.SetSym(i, j, values[m.At(i, j)])
		}
	}

	return out
}

// Build computes the moment matrix of set over reg, quotiented by grp.
func Build(set *genset.Set, reg *monomial.Registry, grp *symmetry.Group, opts ...Option) (*Matrix, error) {
	if set == nil || reg == nil || grp == nil {
		return nil, ErrNilInput
	}
	n := set.Len()
	if n == 0 {
		return nil, ErrEmptySet
	}
	cfg := config{workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(&cfg)
	}

	gamma := productTable(set, reg, cfg.workers)
	perms := inducedPerms(set, grp)
	quotient(gamma, n, perms)

	return compact(gamma, n, reg), nil
}

// productTable fills the n×n registry-id table. Resolution (the
// expensive pure part) fans out across rows; interning happens
// afterwards in row-major order so ids never depend on scheduling.
func productTable(set *genset.Set, reg *monomial.Registry, workers int) []int {
	n := set.Len()
	res := make([]*monomial.Resolution, n*n)

	var eg errgroup.Group
	eg.SetLimit(workers)
	for i := 0; i < n; i++ {
		i := i
		eg.Go(func() error {
			left := canon.Dagger(set.Seq(i))
			for j := i; j < n; j++ {
				prod := append(append([]int(nil), left...), set.Seq(j)...)
				res[i*n+j] = reg.Resolve(prod)
			}

			return nil
		})
	}
	_ = eg.Wait() // resolution never fails

	gamma := make([]int, n*n)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			id := reg.Intern(res[i*n+j]).ID
			gamma[i*n+j] = id
			gamma[j*n+i] = id
		}
	}

	return gamma
}

// inducedPerms lifts each symmetry generator to a permutation of
// generator indices. Generators that map some monomial outside the set
// are dropped with a warning: the quotient then runs over a subgroup
// and the relaxation stays sound.
func inducedPerms(set *genset.Set, grp *symmetry.Group) [][]int {
	n := set.Len()
	var perms [][]int
	for gi, perm := range grp.Generators() {
		pi := make([]int, n)
		ok := true
		for i := 0; i < n; i++ {
			img, nonzero := canon.Canonicalize(symmetry.Apply(perm, set.Seq(i)), set.Alphabet(), set.Commutation())
			if !nonzero {
				ok = false

				break
			}
			idx, found := set.Index(img)
			if !found {
				ok = false

				break
			}
			pi[i] = idx
		}
		if !ok {
			glog.Warningf("moment: generating set not closed under symmetry generator %d; dropping it", gi)

			continue
		}
		perms = append(perms, pi)
	}

	return perms
}

// quotient replaces every entry by the minimum over its orbit, sweeping
// to a fixed point. The minimum rule makes representatives canonical.
func quotient(gamma []int, n int, perms [][]int) {
	for changed := true; changed; {
		changed = false
		for _, pi := range perms {
			for i := 0; i < n; i++ {
				for j := 0; j < n; j++ {
					mate := gamma[pi[i]*n+pi[j]]
					if mate < gamma[i*n+j] {
						gamma[i*n+j] = mate
						changed = true
					}
				}
			}
		}
	}
}

// compact renumbers surviving registry ids densely in ascending order
// and resolves the id table to compounds.
func compact(gamma []int, n int, reg *monomial.Registry) *Matrix {
	seen := map[int]struct{}{}
	for _, id := range gamma {
		seen[id] = struct{}{}
	}
	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	remap := make(map[int]int, len(ids))
	mons := make([]*monomial.Compound, len(ids))
	for k, id := range ids {
		remap[id] = k
		mons[k] = reg.Compound(id)
	}

	out := &Matrix{N: n, IDs: make([]int, n*n), Monomials: mons, Remap: remap}
	for k, id := range gamma {
		out.IDs[k] = remap[id]
	}

	return out
}
