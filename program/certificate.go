package program

import (
	"sort"
	"strconv"
)

// CertificateAsDict renders the dual certificate of an infeasible
// session as a name-keyed polynomial: Σ coef·monomial ≥ 0 is violated
// by the tested distribution. Ids without a recorded name render
// through their numeric id; exact zeros are dropped.
func (p *Program) CertificateAsDict(sol *Solution) map[string]float64 {
	if sol == nil || len(sol.Dual) == 0 {
		return nil
	}
	out := make(map[string]float64, len(sol.Dual))
	ids := make([]int, 0, len(sol.Dual))
	for id := range sol.Dual {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		coef := sol.Dual[id]
		if coef == 0 {
			continue
		}
		name, ok := p.Names[id]
		if !ok {
			name = "#" + strconv.Itoa(id)
		}
		out[name] = coef
	}

	return out
}
