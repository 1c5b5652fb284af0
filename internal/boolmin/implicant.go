package boolmin

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// Implicant is the Quine-McCluskey-internal specialization of a Cube: a
// cube plus three fields derived from (and kept in sync with) its bits —
// mask, count, and covers — plus a prime flag cleared the moment the
// implicant takes part in any successful merge.
//
// Covers is the set of original minterm bit-strings this implicant
// dominates; a cube produced by merging k times covers 2^k minterms. It is
// cloned by reference and unioned on merge, mirroring the mask-matrix
// source's own approach (spec design note: a dense bitmap is an equivalent,
// faster alternative, not required here).
type Implicant struct {
	Cube   Cube
	Mask   string
	Count  int
	Covers mapset.Set[string]
	Prime  bool
}

// newMintermImplicant wraps a single on-set minterm as the seed implicant
// for QM's first generation: an all-space mask, a 1-count derived from the
// bits, and a singleton covers set.
func newMintermImplicant(bits string) Implicant {
	count := 0
	for i := 0; i < len(bits); i++ {
		if bits[i] == One {
			count++
		}
	}
	return Implicant{
		Cube:   Cube{bits: bits},
		Mask:   maskOf(Cube{bits: bits}),
		Count:  count,
		Covers: mapset.NewThreadUnsafeSet(bits),
		Prime:  true,
	}
}

// maskOf renders the QM mask view of a cube: 'x' at dash positions (the
// implicant's historical alias for don't-care), ' ' elsewhere. Two
// implicants can only merge when their masks are identical.
func maskOf(c Cube) string {
	buf := make([]byte, c.Width())
	for i := 0; i < c.Width(); i++ {
		if c.bits[i] == Dash {
			buf[i] = 'x'
		} else {
			buf[i] = ' '
		}
	}
	return string(buf)
}

// tryMerge merges a and b if their cubes can merge; on success it returns a
// fresh implicant whose covers is the union of the parents' and whose Prime
// is true. a and b are passed by value and left untouched; the caller clears
// their Prime fields on success.
func tryMerge(a, b Implicant) (Implicant, bool) {
	merged, ok := Merge(a.Cube, b.Cube)
	if !ok {
		return Implicant{}, false
	}
	count := 0
	for i := 0; i < merged.Width(); i++ {
		if merged.bits[i] == One {
			count++
		}
	}
	return Implicant{
		Cube:   merged,
		Mask:   maskOf(merged),
		Count:  count,
		Covers: a.Covers.Union(b.Covers),
		Prime:  true,
	}, true
}
