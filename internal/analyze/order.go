package analyze

import (
	"errors"
	"fmt"
	"sort"

	"golang.org/x/tools/go/packages"
)

// topoSort returns node indices so that every node follows its dependencies.
//
// Nodes are by index in the input slice.
// depsFn(i) yields indices that must come before i.
//
// The result is deterministic: when multiple nodes are available, we pick the
// smallest index. If a cycle exists, an error is returned.
func topoSort(n int, depsFn func(i int) []int) ([]int, error) {
	if n <= 0 {
		return nil, nil
	}

	indeg := make([]int, n)
	out := make([][]int, n)

	for i := range n {
		deps := depsFn(i)
		for _, d := range deps {
			if d < 0 || d >= n {
				return nil, fmt.Errorf("dependency index out of range: %d depends on %d", i, d)
			}

			indeg[i]++
			out[d] = append(out[d], i)
		}
	}

	// Deterministic traversal.
	for i := range out {
		sort.Ints(out[i])
	}

	var ready []int

	for i := range n {
		if indeg[i] == 0 {
			ready = append(ready, i)
		}
	}

	sort.Ints(ready)

	order := make([]int, 0, n)

	for len(ready) > 0 {
		i := ready[0]
		ready = ready[1:]

		order = append(order, i)
		for _, j := range out[i] {
			indeg[j]--
			if indeg[j] == 0 {
				// Insert while keeping ready sorted.
				k := sort.SearchInts(ready, j)
				ready = append(ready, 0)
				copy(ready[k+1:], ready[k:])
				ready[k] = j
			}
		}
	}

	if len(order) != n {
		return nil, errors.New("cycle detected")
	}

	return order, nil
}

// dependencyOrder sorts root packages so that a package comes after every
// other root it imports, directly or not. Inner unions are then resolved
// before the unions wrapping them.
func dependencyOrder(roots []*packages.Package) ([]*packages.Package, error) {
	index := make(map[string]int, len(roots))
	for i, p := range roots {
		index[p.PkgPath] = i
	}

	reach := make(map[string][]int)

	var visit func(p *packages.Package) []int
	visit = func(p *packages.Package) []int {
		if deps, ok := reach[p.PkgPath]; ok {
			return deps
		}

		reach[p.PkgPath] = nil

		seen := make(map[int]bool)
		for _, imp := range p.Imports {
			if i, ok := index[imp.PkgPath]; ok {
				seen[i] = true
			}

			for _, i := range visit(imp) {
				seen[i] = true
			}
		}

		deps := make([]int, 0, len(seen))
		for i := range seen {
			deps = append(deps, i)
		}

		sort.Ints(deps)
		reach[p.PkgPath] = deps

		return deps
	}

	order, err := topoSort(len(roots), func(i int) []int { return visit(roots[i]) })
	if err != nil {
		return nil, err
	}

	out := make([]*packages.Package, 0, len(roots))
	for _, i := range order {
		out = append(out, roots[i])
	}

	return out, nil
}
