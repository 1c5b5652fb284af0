package boolmin

import (
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/exp/slices"
)

// Expr is the minimal tree grammar spec.md §6 describes as the engine's
// external interface: {and, or, not, var, true, false}. It is independent
// of any particular front end's AST — a textual parser collaborator
// (out of scope here) is expected to produce one of these, and MinimizeExpr
// produces one back.
type Expr interface {
	isExpr()
	// EachMinterm yields, for every satisfying assignment of the
	// expression, the assignment as a map from variable name to its value
	// ('0' or '1') in that assignment.
	EachMinterm(vars []string) []map[string]byte
	// GetVariables yields every variable referenced by the expression, in
	// first-appearance order.
	GetVariables() []string
}

type exprAnd struct{ A, B Expr }
type exprOr struct{ A, B Expr }
type exprNot struct{ X Expr }
type exprVar struct{ Name string }
type exprConst struct{ Value bool }

func (exprAnd) isExpr()   {}
func (exprOr) isExpr()    {}
func (exprNot) isExpr()   {}
func (exprVar) isExpr()   {}
func (exprConst) isExpr() {}

// And, Or, Not, Var, True, and False build Expr nodes of the minimal
// grammar.
func And(a, b Expr) Expr   { return exprAnd{a, b} }
func Or(a, b Expr) Expr    { return exprOr{a, b} }
func Not(x Expr) Expr      { return exprNot{x} }
func Var(name string) Expr { return exprVar{name} }
func True() Expr           { return exprConst{true} }
func False() Expr          { return exprConst{false} }

func (e exprAnd) GetVariables() []string {
	return dedupVars(append(e.A.GetVariables(), e.B.GetVariables()...))
}
func (e exprOr) GetVariables() []string {
	return dedupVars(append(e.A.GetVariables(), e.B.GetVariables()...))
}
func (e exprNot) GetVariables() []string { return e.X.GetVariables() }
func (e exprVar) GetVariables() []string { return []string{e.Name} }
func (exprConst) GetVariables() []string { return nil }

func dedupVars(vars []string) []string {
	seen := mapset.NewThreadUnsafeSet[string]()
	var out []string
	for _, v := range vars {
		if !seen.Contains(v) {
			seen.Add(v)
			out = append(out, v)
		}
	}
	return out
}

func evalExpr(e Expr, assign map[string]byte) bool {
	switch n := e.(type) {
	case exprAnd:
		return evalExpr(n.A, assign) && evalExpr(n.B, assign)
	case exprOr:
		return evalExpr(n.A, assign) || evalExpr(n.B, assign)
	case exprNot:
		return !evalExpr(n.X, assign)
	case exprVar:
		return assign[n.Name] == One
	case exprConst:
		return n.Value
	}
	return false
}

func (e exprAnd) EachMinterm(vars []string) []map[string]byte   { return enumerate(e, vars) }
func (e exprOr) EachMinterm(vars []string) []map[string]byte    { return enumerate(e, vars) }
func (e exprNot) EachMinterm(vars []string) []map[string]byte   { return enumerate(e, vars) }
func (e exprVar) EachMinterm(vars []string) []map[string]byte   { return enumerate(e, vars) }
func (e exprConst) EachMinterm(vars []string) []map[string]byte { return enumerate(e, vars) }

// enumerate is the (out-of-scope-elsewhere) tree evaluator used only to
// back the Expr capability contract spec.md §6 names; it exhaustively
// walks every assignment, which is adequate for the variable counts this
// engine targets (spec.md §5: bounded in practice to roughly 16 variables).
func enumerate(e Expr, vars []string) []map[string]byte {
	n := len(vars)
	var out []map[string]byte
	for mask := 0; mask < (1 << n); mask++ {
		assign := make(map[string]byte, n)
		for i, v := range vars {
			if mask&(1<<i) != 0 {
				assign[v] = One
			} else {
				assign[v] = Zero
			}
		}
		if evalExpr(e, assign) {
			out = append(out, assign)
		}
	}
	return out
}

// MinimizeExpr is the tree-in/tree-out entry point of spec.md §6: it uses
// e's EachMinterm and GetVariables capabilities to collect the on-set,
// minimizes via Minimize, and rebuilds a sum-of-products Expr from the
// resulting Cover. Constant-true and constant-false inputs are returned
// unchanged (spec.md §4.D step 1).
func MinimizeExpr(e Expr) (Expr, error) {
	if _, ok := e.(exprConst); ok {
		return e, nil
	}

	vars := e.GetVariables()
	slices.Sort(vars)

	assigns := e.EachMinterm(vars)
	if len(assigns) == 0 {
		return False(), nil
	}
	onSet := make([]string, len(assigns))
	for i, a := range assigns {
		buf := make([]byte, len(vars))
		for j, v := range vars {
			buf[j] = a[v]
		}
		onSet[i] = string(buf)
	}

	cover, err := Minimize(vars, onSet, time.Time{})
	if err != nil {
		return nil, err
	}
	return coverToExpr(cover), nil
}

// coverToExpr renders a Cover as a disjunction of conjunctions: spec.md
// §4.D step 8. A cube contributing no literals (all dash) denotes True; an
// empty cover denotes False.
func coverToExpr(c Cover) Expr {
	if len(c.Cubes) == 0 {
		return False()
	}
	var disjuncts []Expr
	for _, cube := range c.Cubes {
		disjuncts = append(disjuncts, cubeToConjunction(c.Vars, cube))
	}
	result := disjuncts[0]
	for _, d := range disjuncts[1:] {
		result = Or(result, d)
	}
	return result
}

func cubeToConjunction(vars []string, cube Cube) Expr {
	var lits []Expr
	for i, v := range vars {
		switch cube.Bit(i) {
		case One:
			lits = append(lits, Var(v))
		case Zero:
			lits = append(lits, Not(Var(v)))
		}
	}
	if len(lits) == 0 {
		return True()
	}
	result := lits[0]
	for _, l := range lits[1:] {
		result = And(result, l)
	}
	return result
}
