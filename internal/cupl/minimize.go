package cupl

import (
	"sort"
	"time"

	"github.com/go-plds/cupl/internal/boolmin"
)

// perEquationBudget bounds how long minimizeTerms may spend hunting for an
// exact minimal column cover before it falls back to Petrick's best
// intermediate answer. A single OLMC rarely needs more than a handful of
// variables, but CUPL sources with wide case/field expansions can hand QM
// a term count that makes the exact search expensive; the deadline keeps
// compilation of one equation from stalling the whole build.
const perEquationBudget = 2 * time.Second

// minimizeTerms applies Quine-McCluskey minimization to reduce the number
// of product terms, via the general boolmin engine: terms are converted to
// a Cover, minimized exactly (essential columns, dominance reduction, and a
// deadline-bounded Petrick search over what remains), and converted back.
func minimizeTerms(terms []Term) []Term {
	if len(terms) <= 1 {
		return terms
	}
	// Short-circuit if any term is TRUE (empty literals = always true)
	for _, t := range terms {
		if len(t.Lits) == 0 {
			return terms
		}
	}

	vars, varIndex := collectVars(terms)
	if len(vars) == 0 {
		return terms
	}

	cubes := make([]boolmin.Cube, len(terms))
	for i, t := range terms {
		c, err := termToCube(t, vars, varIndex)
		if err != nil {
			// Malformed literal set (shouldn't happen for a well-formed
			// Term): fall back to the original terms rather than fail
			// compilation over a minimization shortcut.
			return terms
		}
		cubes[i] = c
	}

	onSet := mintermUnion(cubes)
	if len(onSet) == 0 {
		return terms
	}

	cov, err := boolmin.Minimize(vars, onSet, time.Now().Add(perEquationBudget))
	if err != nil {
		return terms
	}

	selected := coverToTerms(cov)
	if len(selected) < len(terms) {
		sort.Slice(selected, func(i, j int) bool { return termLess(selected[i], selected[j]) })
		return selected
	}

	// QM didn't reduce the term count — keep the original terms, sorted for
	// deterministic output.
	out := make([]Term, len(terms))
	copy(out, terms)
	sort.Slice(out, func(i, j int) bool { return termLess(out[i], out[j]) })
	return out
}

// termToCube renders a Term as a boolmin.Cube over vars: each literal pins
// its variable's bit to 1 or 0; variables the term doesn't mention are
// dashed (don't-care).
func termToCube(t Term, vars []string, varIndex map[string]int) (boolmin.Cube, error) {
	bits := make([]byte, len(vars))
	for i := range bits {
		bits[i] = boolmin.Dash
	}
	for _, l := range t.Lits {
		idx, ok := varIndex[l.Name]
		if !ok {
			return boolmin.Cube{}, &boolmin.ErrUnknownVariable{Name: l.Name}
		}
		if l.Neg {
			bits[idx] = boolmin.Zero
		} else {
			bits[idx] = boolmin.One
		}
	}
	return boolmin.NewCube(string(bits))
}

// mintermUnion expands every cube to its constituent minterms and
// deduplicates across all of them, in minterm order.
func mintermUnion(cubes []boolmin.Cube) []string {
	seen := make(map[string]bool)
	var out []string
	for _, c := range cubes {
		for _, m := range c.EachMinterm() {
			s := m.String()
			if !seen[s] {
				seen[s] = true
				out = append(out, s)
			}
		}
	}
	sort.Strings(out)
	return out
}

// coverToTerms converts a minimized Cover back to CUPL's native Term/Literal
// representation: a cube's non-dash bits become literals, dashes are
// dropped (the variable doesn't appear in the product term).
func coverToTerms(cov boolmin.Cover) []Term {
	terms := make([]Term, 0, len(cov.Cubes))
	for _, cube := range cov.Cubes {
		var lits []Literal
		for i, v := range cov.Vars {
			switch cube.Bit(i) {
			case boolmin.One:
				lits = append(lits, Literal{Name: v})
			case boolmin.Zero:
				lits = append(lits, Literal{Name: v, Neg: true})
			}
		}
		sort.Slice(lits, func(i, j int) bool { return lits[i].Name < lits[j].Name })
		terms = append(terms, Term{Lits: lits})
	}
	return terms
}

// termLess orders two terms by their literals, lexicographically by
// (name, polarity), used only to make minimizeTerms' output deterministic.
func termLess(a, b Term) bool {
	minLen := len(a.Lits)
	if len(b.Lits) < minLen {
		minLen = len(b.Lits)
	}
	for k := 0; k < minLen; k++ {
		if a.Lits[k].Name != b.Lits[k].Name {
			return a.Lits[k].Name < b.Lits[k].Name
		}
		if a.Lits[k].Neg != b.Lits[k].Neg {
			return !a.Lits[k].Neg
		}
	}
	return len(a.Lits) < len(b.Lits)
}

// collectVars gathers sorted unique variable names and builds an index map.
func collectVars(terms []Term) ([]string, map[string]int) {
	seen := make(map[string]bool)
	for _, t := range terms {
		for _, l := range t.Lits {
			seen[l.Name] = true
		}
	}
	vars := make([]string, 0, len(seen))
	for v := range seen {
		vars = append(vars, v)
	}
	sort.Strings(vars)
	idx := make(map[string]int, len(vars))
	for i, v := range vars {
		idx[v] = i
	}
	return vars, idx
}
