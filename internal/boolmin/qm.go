package boolmin

import (
	"strings"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Generators runs the Quine-McCluskey merge phase (spec.md §4.D steps 3-4)
// over a set of on-set minterms (fixed-width bit-strings over {0,1}) and
// returns every prime implicant, i.e. every implicant that survived its
// mask-group scan without being merged away.
//
// Implicants are bucketed by mask (spec.md §3's SameMaskGroup): only
// implicants sharing a mask can merge. Within a bucket, candidates are
// sorted by 1-count and scanned with the monotone pruning spec.md §4.D
// describes (stop advancing j once group[j].Count > group[i].Count+1).
func Generators(minterms []string) []Implicant {
	buckets := make(map[string][]Implicant)
	for _, m := range minterms {
		imp := newMintermImplicant(m)
		buckets[imp.Mask] = append(buckets[imp.Mask], imp)
	}

	var generators []Implicant
	for {
		nextBuckets := make(map[string][]Implicant)
		anyMerge := false

		maskKeys := maps.Keys(buckets)
		slices.Sort(maskKeys)

		for _, mask := range maskKeys {
			group := append([]Implicant(nil), buckets[mask]...)
			slices.SortStableFunc(group, func(a, b Implicant) int { return a.Count - b.Count })

			for i := 0; i < len(group); i++ {
				for j := i + 1; j < len(group); j++ {
					if group[j].Count > group[i].Count+1 {
						break
					}
					m, ok := tryMerge(group[i], group[j])
					if !ok {
						continue
					}
					group[i].Prime = false
					group[j].Prime = false
					anyMerge = true
					nextBuckets[m.Mask] = append(nextBuckets[m.Mask], m)
				}
			}
			for _, imp := range group {
				if imp.Prime {
					generators = append(generators, imp)
				}
			}
		}

		if !anyMerge {
			break
		}
		buckets = dedupBuckets(nextBuckets)
	}
	return generators
}

// dedupBuckets removes duplicate implicants (identical bits) within each
// mask bucket, unioning their covers, and orders each bucket by bit-string
// so the next pass does not depend on map iteration order.
func dedupBuckets(buckets map[string][]Implicant) map[string][]Implicant {
	out := make(map[string][]Implicant, len(buckets))
	for mask, group := range buckets {
		byBits := make(map[string]Implicant)
		for _, imp := range group {
			if existing, ok := byBits[imp.Cube.bits]; ok {
				existing.Covers = existing.Covers.Union(imp.Covers)
				byBits[imp.Cube.bits] = existing
			} else {
				byBits[imp.Cube.bits] = imp
			}
		}
		dedup := make([]Implicant, 0, len(byBits))
		for _, imp := range byBits {
			dedup = append(dedup, imp)
		}
		slices.SortFunc(dedup, func(a, b Implicant) int { return strings.Compare(a.Cube.bits, b.Cube.bits) })
		out[mask] = dedup
	}
	return out
}

// coverMatrix builds the incidence matrix of spec.md §4.D step 5: one row
// per distinct original minterm covered by some generator, one column per
// generator, '1' at (row, col) iff that generator's Covers set contains
// that minterm.
func coverMatrix(generators []Implicant) []string {
	all := mapset.NewThreadUnsafeSet[string]()
	for _, g := range generators {
		all = all.Union(g.Covers)
	}
	minterms := all.ToSlice()
	slices.Sort(minterms)

	matrix := make([]string, len(minterms))
	for i, m := range minterms {
		buf := make([]byte, len(generators))
		for j, g := range generators {
			if g.Covers.Contains(m) {
				buf[j] = One
			} else {
				buf[j] = Zero
			}
		}
		matrix[i] = string(buf)
	}
	return matrix
}

// Minimize runs the full QM pipeline (spec.md §4.D) over vars and onSet (the
// bit-strings, in var order, of every minterm where the function is true)
// and returns the minimal sum-of-products cover. deadline, if non-zero,
// bounds the Petrick search inside MinimalColumnCover; the zero time.Time
// means no deadline.
func Minimize(vars []string, onSet []string, deadline time.Time) (Cover, error) {
	width := len(vars)
	if len(onSet) == 0 {
		return NewCover(vars, nil)
	}
	for _, m := range onSet {
		if len(m) != width {
			return Cover{}, &ErrWidthMismatch{Want: width, Got: len(m)}
		}
	}

	uniqueMinterms := mapset.NewThreadUnsafeSet(onSet...).ToSlice()
	slices.Sort(uniqueMinterms)

	generators := Generators(uniqueMinterms)
	matrix := coverMatrix(generators)

	selected, err := MinimalColumnCover(matrix, deadline)
	if err != nil {
		return Cover{}, err
	}

	if len(selected) == 0 {
		return NewCover(vars, nil)
	}
	if len(selected) == 1 && generators[selected[0]].Cube.bits == AllDash(width).bits {
		return NewCover(vars, []Cube{AllDash(width)})
	}

	cubes := make([]Cube, 0, len(selected))
	for _, g := range selected {
		cubes = append(cubes, generators[g].Cube)
	}
	slices.SortStableFunc(cubes, func(a, b Cube) int { return strings.Compare(a.bits, b.bits) })
	return NewCover(vars, cubes)
}
