package boolmin

import "strings"

// Cover is an ordered list of cubes over a shared, ordered variable list.
// Duplicates are allowed until Uniq is called; the order of cubes is
// deterministic but not semantically significant.
type Cover struct {
	Vars  []string
	Cubes []Cube
}

// NewCover builds a Cover, validating that every cube's width equals
// len(vars).
func NewCover(vars []string, cubes []Cube) (Cover, error) {
	for _, c := range cubes {
		if c.Width() != len(vars) {
			return Cover{}, &ErrWidthMismatch{Want: len(vars), Got: c.Width()}
		}
	}
	out := make([]Cube, len(cubes))
	copy(out, cubes)
	return Cover{Vars: append([]string(nil), vars...), Cubes: out}, nil
}

func (c Cover) varIndex(name string) (int, error) {
	for i, v := range c.Vars {
		if v == name {
			return i, nil
		}
	}
	return 0, &ErrUnknownVariable{Name: name}
}

// Width is the number of variables the cover is over.
func (c Cover) Width() int { return len(c.Vars) }

// String renders the cover's textual form: the comma-joined variable list,
// a comma, then the comma-joined cube bit-strings.
func (c Cover) String() string {
	parts := append([]string(nil), c.Vars...)
	for _, cube := range c.Cubes {
		parts = append(parts, cube.String())
	}
	return strings.Join(parts, ",")
}

// Unite returns the set-union of c and o (duplicates preserved, as in
// spec.md §4.B — call Uniq to collapse them).
func (c Cover) Unite(o Cover) Cover {
	out := make([]Cube, 0, len(c.Cubes)+len(o.Cubes))
	out = append(out, c.Cubes...)
	out = append(out, o.Cubes...)
	return Cover{Vars: c.Vars, Cubes: out}
}

// Subtract removes from c any cube byte-equal to a cube in o.
func (c Cover) Subtract(o Cover) Cover {
	drop := make(map[string]bool, len(o.Cubes))
	for _, cube := range o.Cubes {
		drop[cube.bits] = true
	}
	out := make([]Cube, 0, len(c.Cubes))
	for _, cube := range c.Cubes {
		if !drop[cube.bits] {
			out = append(out, cube)
		}
	}
	return Cover{Vars: c.Vars, Cubes: out}
}

// Uniq returns c with duplicate cubes removed, preserving first-seen order.
func (c Cover) Uniq() Cover {
	seen := make(map[string]bool, len(c.Cubes))
	out := make([]Cube, 0, len(c.Cubes))
	for _, cube := range c.Cubes {
		if !seen[cube.bits] {
			seen[cube.bits] = true
			out = append(out, cube)
		}
	}
	return Cover{Vars: c.Vars, Cubes: out}
}

// Cofactor substitutes var = val (val is '0' or '1') into every cube: a cube
// whose bit at var's position equals val has that position replaced by dash
// and is kept; a cube whose bit is the opposite non-dash value is dropped; a
// cube that is already dash there is kept unchanged. The result is
// deduplicated.
func (c Cover) Cofactor(v string, val byte) (Cover, error) {
	if val != Zero && val != One {
		return Cover{}, &ErrInvalidCofactorValue{Value: val}
	}
	idx, err := c.varIndex(v)
	if err != nil {
		return Cover{}, err
	}
	out := make([]Cube, 0, len(c.Cubes))
	for _, cube := range c.Cubes {
		switch cube.bits[idx] {
		case Dash:
			out = append(out, cube)
		case val:
			out = append(out, cube.withBit(idx, Dash))
		default:
			// opposite non-dash value: drop
		}
	}
	return Cover{Vars: c.Vars, Cubes: out}.Uniq(), nil
}

// CofactorCube generalizes Cofactor to a whole cube c rather than a single
// variable assignment: for each cube s in the cover, positions where
// s[i] == cube[i] are set to dash; a position where both are non-dash and
// differ drops the cube; otherwise the position is kept as-is. Result is
// deduplicated.
func (c Cover) CofactorCube(cube Cube) (Cover, error) {
	if cube.Width() != c.Width() {
		return Cover{}, &ErrWidthMismatch{Want: c.Width(), Got: cube.Width()}
	}
	out := make([]Cube, 0, len(c.Cubes))
	for _, s := range c.Cubes {
		keep, dropped := cofactorOne(s, cube)
		if !dropped {
			out = append(out, keep)
		}
	}
	return Cover{Vars: c.Vars, Cubes: out}.Uniq(), nil
}

func cofactorOne(s, cube Cube) (Cube, bool) {
	buf := []byte(s.bits)
	for i := 0; i < s.Width(); i++ {
		si, ci := s.bits[i], cube.bits[i]
		switch {
		case ci == Dash:
			// keep as-is
		case si == ci:
			buf[i] = Dash
		case si == Dash:
			// keep as-is
		default:
			return Cube{}, true
		}
	}
	return Cube{bits: string(buf)}, false
}

// FindBinate walks the cover's cubes accumulating a merged signature
// (initially all dash). The first position where a cube's bit conflicts
// with what's already been seen there (a '1' where the signature says '0'
// or vice versa) identifies a binate variable, returned by name. ok is
// false iff the cover is unate.
func (c Cover) FindBinate() (name string, ok bool) {
	if c.Width() == 0 {
		return "", false
	}
	m := []byte(AllDash(c.Width()).bits)
	for _, cube := range c.Cubes {
		for i := 0; i < c.Width(); i++ {
			bi := cube.bits[i]
			if bi == Dash {
				continue
			}
			if m[i] == Dash {
				m[i] = bi
				continue
			}
			if m[i] != bi {
				return c.Vars[i], true
			}
		}
	}
	return "", false
}

// IsTautology reports whether c evaluates to true on every assignment. If c
// is unate, that holds iff c contains the all-dash cube. Otherwise it
// recurses on both cofactors of a binate variable. An empty cover is not a
// tautology.
func (c Cover) IsTautology() bool {
	if len(c.Cubes) == 0 {
		return false
	}
	v, binate := c.FindBinate()
	if !binate {
		all := AllDash(c.Width())
		for _, cube := range c.Cubes {
			if cube.Equal(all) {
				return true
			}
		}
		return false
	}
	cf0, _ := c.Cofactor(v, Zero)
	cf1, _ := c.Cofactor(v, One)
	return cf0.IsTautology() && cf1.IsTautology()
}

// Complement computes the cover of the function's complement.
//
// An empty cover (constant false) complements to the single all-dash cube
// (constant true). A unate cover complements by building a 0/1 incidence
// matrix — one row per cube, one column per variable, entry 1 iff that
// cube has a non-dash bit at that variable's position — and finding all
// minimal column covers; each one translates to a complement cube: for
// every selected column, 0 if some original cube had a 1 there, else 1; all
// other positions stay dash. A binate cover Shannon-splits on a binate
// variable and recombines the cofactors' complements.
func (c Cover) Complement() Cover {
	if len(c.Cubes) == 0 {
		return Cover{Vars: c.Vars, Cubes: []Cube{AllDash(c.Width())}}
	}
	v, binate := c.FindBinate()
	if !binate {
		return c.unateComplement()
	}
	idx, _ := c.varIndex(v)
	cf0, _ := c.Cofactor(v, Zero)
	cf1, _ := c.Cofactor(v, One)
	comp0 := cf0.Complement()
	comp1 := cf1.Complement()

	out := make([]Cube, 0, len(comp0.Cubes)+len(comp1.Cubes))
	for _, q := range comp0.Cubes {
		if q.bits[idx] != One {
			out = append(out, q.withBit(idx, Zero))
		}
	}
	for _, q := range comp1.Cubes {
		if q.bits[idx] != Zero {
			out = append(out, q.withBit(idx, One))
		}
	}
	return Cover{Vars: c.Vars, Cubes: out}.Uniq()
}

func (c Cover) unateComplement() Cover {
	allDash := AllDash(c.Width())
	for _, cube := range c.Cubes {
		if cube.Equal(allDash) {
			// c already contains the universal cube: it's constant true
			// (its incidence-matrix row would be all-zero, contributing no
			// column to cover), so its complement is constant false.
			return Cover{Vars: c.Vars, Cubes: nil}
		}
	}

	matrix := make([]string, len(c.Cubes))
	for i, cube := range c.Cubes {
		buf := make([]byte, c.Width())
		for j := 0; j < c.Width(); j++ {
			if cube.bits[j] != Dash {
				buf[j] = One
			} else {
				buf[j] = Zero
			}
		}
		matrix[i] = string(buf)
	}
	covers, err := AllMinimalColumnCovers(matrix)
	if err != nil {
		// matrix is well-formed by construction; surfaced only as a
		// defensive fallback.
		return Cover{Vars: c.Vars, Cubes: nil}
	}
	out := make([]Cube, 0, len(covers))
	for _, cols := range covers {
		buf := []byte(AllDash(c.Width()).bits)
		for _, k := range cols {
			anyOne := false
			for _, cube := range c.Cubes {
				if cube.bits[k] == One {
					anyOne = true
					break
				}
			}
			if anyOne {
				buf[k] = Zero
			} else {
				buf[k] = One
			}
		}
		out = append(out, Cube{bits: string(buf)})
	}
	return Cover{Vars: c.Vars, Cubes: out}.Uniq()
}
