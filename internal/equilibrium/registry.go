package equilibrium

import (
	"fmt"
	"sort"

	"github.com/san-kum/threelink/internal/linsys"
)

type Registry struct {
	solvers map[string]func() linsys.Solver
}

func NewRegistry() *Registry {
	r := &Registry{
		solvers: make(map[string]func() linsys.Solver),
	}

	r.solvers["lu"] = func() linsys.Solver { return linsys.NewLU() }
	r.solvers["exact"] = func() linsys.Solver { return linsys.NewExact() }

	return r
}

func (r *Registry) GetSolver(name string) (linsys.Solver, error) {
	fn, ok := r.solvers[name]
	if !ok {
		return nil, fmt.Errorf("unknown solver: %s (available: %v)", name, r.ListSolvers())
	}
	return fn(), nil
}

func (r *Registry) ListSolvers() []string {
	names := make([]string, 0, len(r.solvers))
	for name := range r.solvers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
