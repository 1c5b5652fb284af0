package boolmin

import (
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/exp/slices"
)

// colsOf returns the column indices where row holds a '1', in ascending
// order.
func colsOf(row string) []int {
	var out []int
	for i := 0; i < len(row); i++ {
		if row[i] == One {
			out = append(out, i)
		}
	}
	return out
}

func validateMatrix(matrix []string) error {
	if len(matrix) == 0 {
		return nil
	}
	width := len(matrix[0])
	for i, row := range matrix {
		if len(row) != width {
			return &ErrRaggedMatrix{Row: i, Want: width, Got: len(row)}
		}
		for j := 0; j < len(row); j++ {
			if row[j] != Zero && row[j] != One {
				return &ErrMalformedCube{Bits: row}
			}
		}
	}
	return nil
}

// essentialColumns collects every column that is the sole '1' in at least
// one row of matrix.
func essentialColumns(matrix []string) []int {
	seen := make(map[int]bool)
	for _, row := range matrix {
		cols := colsOf(row)
		if len(cols) == 1 {
			seen[cols[0]] = true
		}
	}
	out := make([]int, 0, len(seen))
	for c := range seen {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// reduceRows drops every row covered by an essential column, then repeats
// dedup + dominance reduction to a fixed point on what remains. Row order
// (first-seen) is preserved for determinism.
func reduceRows(matrix []string, essentials []int) [][]int {
	essentialSet := make(map[int]bool, len(essentials))
	for _, c := range essentials {
		essentialSet[c] = true
	}

	var rows [][]int
	for _, row := range matrix {
		cols := colsOf(row)
		covered := false
		for _, c := range cols {
			if essentialSet[c] {
				covered = true
				break
			}
		}
		if !covered && len(cols) > 0 {
			rows = append(rows, cols)
		}
	}

	for {
		rows = dedupRows(rows)
		reduced, changed := dropDominatingRows(rows)
		rows = reduced
		if !changed {
			break
		}
	}
	return rows
}

func rowKey(cols []int) string {
	buf := make([]byte, 0, len(cols)*4)
	for _, c := range cols {
		buf = append(buf, byte(c>>24), byte(c>>16), byte(c>>8), byte(c))
	}
	return string(buf)
}

func dedupRows(rows [][]int) [][]int {
	seen := make(map[string]bool, len(rows))
	out := make([][]int, 0, len(rows))
	for _, r := range rows {
		k := rowKey(r)
		if !seen[k] {
			seen[k] = true
			out = append(out, r)
		}
	}
	return out
}

// dropDominatingRows removes rows that are a superset of some other,
// distinct row: covering the dominated (subset) row automatically covers
// the dominating one, so the dominating row is redundant. Rows that do not
// dominate any other distinct row are kept. Column dominance is
// deliberately not applied here (spec.md §4.C step 3) so that callers
// enumerating all minimal covers never lose an optimum; MinimalColumnCover
// may still reach the same optimal cardinality without it.
func dropDominatingRows(rows [][]int) ([][]int, bool) {
	sets := make([]mapset.Set[int], len(rows))
	for i, r := range rows {
		sets[i] = mapset.NewThreadUnsafeSet(r...)
	}
	dominates := make([]bool, len(rows))
	for i := range rows {
		for j := range rows {
			if i == j || rowKey(rows[i]) == rowKey(rows[j]) {
				continue
			}
			if sets[j].IsSubset(sets[i]) {
				dominates[i] = true
				break
			}
		}
	}
	var out [][]int
	changed := false
	for i, r := range rows {
		if dominates[i] {
			changed = true
			continue
		}
		out = append(out, r)
	}
	return out, changed
}

// petrickTerms expands the product-of-sums formed by rows (each row is the
// sum of its column indices) into its sum-of-products form, absorbing
// duplicate and dominated terms as it goes. If deadline is non-zero and is
// exceeded between rows, expansion stops early and the second result is
// false.
func petrickTerms(rows [][]int, deadline time.Time) ([]mapset.Set[int], bool) {
	if len(rows) == 0 {
		return nil, true
	}
	var terms []mapset.Set[int]
	for _, c := range rows[0] {
		terms = append(terms, mapset.NewThreadUnsafeSet(c))
	}
	for _, row := range rows[1:] {
		if !deadline.IsZero() && time.Now().After(deadline) {
			return terms, false
		}
		var next []mapset.Set[int]
		for _, t := range terms {
			for _, c := range row {
				nt := t.Clone()
				nt.Add(c)
				next = absorb(next, nt)
			}
		}
		terms = next
	}
	return terms, true
}

// absorb inserts nt into terms, applying Petrick's absorption law
// (a + a*b = a): if an existing term is a subset of nt, nt is redundant and
// dropped; any existing term that is a superset of nt is removed in favor
// of nt.
func absorb(terms []mapset.Set[int], nt mapset.Set[int]) []mapset.Set[int] {
	for _, t := range terms {
		if t.IsSubset(nt) {
			return terms
		}
	}
	out := make([]mapset.Set[int], 0, len(terms)+1)
	for _, t := range terms {
		if !nt.IsSubset(t) {
			out = append(out, t)
		}
	}
	out = append(out, nt)
	return out
}

func termToSortedSlice(t mapset.Set[int]) []int {
	out := t.ToSlice()
	slices.Sort(out)
	return out
}

// MinimalColumnCover returns one smallest column cover of matrix (a 0/1
// incidence matrix, rows as equal-length strings of '0'/'1'). Ties among
// equally small covers are broken by order of appearance. If deadline is
// non-zero and Petrick expansion exceeds it, the best (smallest) term found
// so far is returned instead of the true optimum, combined with the
// essential columns as always; this is a best-effort result, not an error.
// The returned column indices are sorted ascending.
func MinimalColumnCover(matrix []string, deadline time.Time) ([]int, error) {
	if err := validateMatrix(matrix); err != nil {
		return nil, err
	}
	essentials := essentialColumns(matrix)
	rows := reduceRows(matrix, essentials)
	if len(rows) == 0 {
		return append([]int(nil), essentials...), nil
	}

	terms, _ := petrickTerms(rows, deadline)
	if len(terms) == 0 {
		return append([]int(nil), essentials...), nil
	}

	best := termToSortedSlice(terms[0])
	for _, t := range terms[1:] {
		cand := termToSortedSlice(t)
		if len(cand) < len(best) {
			best = cand
		}
	}

	out := append([]int(nil), essentials...)
	for _, c := range best {
		out = append(out, c)
	}
	slices.Sort(out)
	return dedupInts(out), nil
}

// AllMinimalColumnCovers returns every irredundant column cover of matrix
// that Petrick expansion and absorption produce (spec.md §4.C step 5,
// !smallest), each extended with the essential columns. Irredundant covers
// of differing cardinality are all included — callers that want only the
// smallest should filter the result themselves, as the unate complement
// path needs to union every irredundant cover's contribution, not just the
// shortest. There is no deadline parameter: spec.md §4.C notes the
// deadline applies only when a single smallest cover is wanted.
func AllMinimalColumnCovers(matrix []string) ([][]int, error) {
	if err := validateMatrix(matrix); err != nil {
		return nil, err
	}
	essentials := essentialColumns(matrix)
	rows := reduceRows(matrix, essentials)
	if len(rows) == 0 {
		return [][]int{append([]int(nil), essentials...)}, nil
	}

	terms, _ := petrickTerms(rows, time.Time{})
	slices.SortStableFunc(terms, func(a, b mapset.Set[int]) int {
		return a.Cardinality() - b.Cardinality()
	})

	out := make([][]int, 0, len(terms))
	for _, t := range terms {
		cols := append([]int(nil), essentials...)
		cols = append(cols, termToSortedSlice(t)...)
		slices.Sort(cols)
		out = append(out, dedupInts(cols))
	}
	return out, nil
}

func dedupInts(in []int) []int {
	out := make([]int, 0, len(in))
	var prev int
	for i, v := range in {
		if i == 0 || v != prev {
			out = append(out, v)
		}
		prev = v
	}
	return out
}
