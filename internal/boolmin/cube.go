// Package boolmin implements the core of a two-level Boolean-function
// minimizer: Quine-McCluskey prime-implicant generation, Petrick-style
// minimal column-cover selection, and unate recursive complementation /
// tautology checking over cube covers.
//
// The package is a pure, synchronous, reentrant library with no I/O and no
// package-level mutable state; every minimization session owns its own data.
package boolmin

import "strings"

// Bit values a cube position may hold. Dash denotes don't-care.
const (
	Zero byte = '0'
	One  byte = '1'
	Dash byte = '-'
)

// Cube is a fixed-width ternary bit-string over {0,1,-}. Cubes are
// value-like: once constructed, a Cube's width and contents never change.
// A cube denotes the conjunction of the literals selected by its non-dash
// positions.
type Cube struct {
	bits string
}

// NewCube validates bits and returns the Cube it denotes.
func NewCube(bits string) (Cube, error) {
	for i := 0; i < len(bits); i++ {
		b := bits[i]
		if b != Zero && b != One && b != Dash {
			return Cube{}, &ErrMalformedCube{Bits: bits}
		}
	}
	return Cube{bits: bits}, nil
}

// MustCube is NewCube but panics on a malformed bit-string; for literals in
// tests and internal call sites where the string is already known-good.
func MustCube(bits string) Cube {
	c, err := NewCube(bits)
	if err != nil {
		panic(err)
	}
	return c
}

// AllDash returns the width-wide cube of all dashes (the universal cube,
// denoting the constant-true function).
func AllDash(width int) Cube {
	return Cube{bits: strings.Repeat(string(Dash), width)}
}

// Width reports the cube's fixed bit-string length.
func (c Cube) Width() int { return len(c.bits) }

// Bit returns the character at position i: '0', '1', or '-'.
func (c Cube) Bit(i int) byte { return c.bits[i] }

// String renders the cube's bit-string form, e.g. "1-0".
func (c Cube) String() string { return c.bits }

// Equal reports whether two cubes have identical bit-strings.
func (c Cube) Equal(o Cube) bool { return c.bits == o.bits }

// withBit returns a copy of c with position i set to v. The caller must have
// already validated v and i.
func (c Cube) withBit(i int, v byte) Cube {
	buf := []byte(c.bits)
	buf[i] = v
	return Cube{bits: string(buf)}
}

// WithBit returns a copy of c with position i set to v, validating v.
func (c Cube) WithBit(i int, v byte) (Cube, error) {
	if v != Zero && v != One && v != Dash {
		return Cube{}, &ErrInvalidBit{Bit: v}
	}
	if i < 0 || i >= len(c.bits) {
		return Cube{}, &ErrWidthMismatch{Want: len(c.bits), Got: i + 1}
	}
	return c.withBit(i, v), nil
}

func checkWidth(a, b Cube) error {
	if a.Width() != b.Width() {
		return &ErrWidthMismatch{Want: a.Width(), Got: b.Width()}
	}
	return nil
}

// Distance counts the positions where a and b are both non-dash and differ.
func Distance(a, b Cube) (int, error) {
	if err := checkWidth(a, b); err != nil {
		return 0, err
	}
	d := 0
	for i := 0; i < a.Width(); i++ {
		ai, bi := a.bits[i], b.bits[i]
		if ai != Dash && bi != Dash && ai != bi {
			d++
		}
	}
	return d, nil
}

// dashMask renders the positions of c that are dash as a mask string: '-' at
// dash positions, ' ' elsewhere. Two cubes can only merge if their dash
// masks are identical.
func dashMask(c Cube) string {
	buf := make([]byte, c.Width())
	for i := 0; i < c.Width(); i++ {
		if c.bits[i] == Dash {
			buf[i] = Dash
		} else {
			buf[i] = ' '
		}
	}
	return string(buf)
}

// CanMerge reports whether a and b differ at exactly one non-dash position
// and otherwise share an identical dash pattern.
func CanMerge(a, b Cube) bool {
	if a.Width() != b.Width() {
		return false
	}
	if dashMask(a) != dashMask(b) {
		return false
	}
	d, _ := Distance(a, b)
	return d == 1
}

// Merge combines a and b into the cube identical to a except that the one
// differing position is set to dash. The second result is false when a and
// b are not mergeable.
func Merge(a, b Cube) (Cube, bool) {
	if !CanMerge(a, b) {
		return Cube{}, false
	}
	for i := 0; i < a.Width(); i++ {
		if a.bits[i] != b.bits[i] {
			return a.withBit(i, Dash), true
		}
	}
	// Identical cubes with identical masks: nothing to merge into.
	return Cube{}, false
}

// Consensus is defined iff Distance(a,b) == 1. At the differing position the
// result is dash; at positions where exactly one of a, b is dash the result
// takes the other's value; at positions where both are non-dash and equal,
// the result keeps that value. The second result is false when the distance
// is not exactly 1.
func Consensus(a, b Cube) (Cube, bool) {
	d, err := Distance(a, b)
	if err != nil || d != 1 {
		return Cube{}, false
	}
	buf := make([]byte, a.Width())
	for i := 0; i < a.Width(); i++ {
		ai, bi := a.bits[i], b.bits[i]
		switch {
		case ai != Dash && bi != Dash && ai != bi:
			buf[i] = Dash
		case ai == Dash:
			buf[i] = bi
		case bi == Dash:
			buf[i] = ai
		default:
			buf[i] = ai
		}
	}
	return Cube{bits: string(buf)}, true
}

// Sharp computes a minus b, the list of cubes whose union of minterms equals
// minterms(a) set-minus minterms(b). For each position where b is non-dash
// and a's bit there is not equal to b's (a dash, or the opposite value), it
// emits a copy of a with that position set to the complement of b's bit
// there. The result is deduplicated.
func Sharp(a, b Cube) ([]Cube, error) {
	if err := checkWidth(a, b); err != nil {
		return nil, err
	}
	var out []Cube
	seen := make(map[string]bool)
	for i := 0; i < a.Width(); i++ {
		bi := b.bits[i]
		if bi == Dash {
			continue
		}
		ai := a.bits[i]
		if ai == bi {
			continue
		}
		comp := complementBit(bi)
		c := a.withBit(i, comp)
		if !seen[c.bits] {
			seen[c.bits] = true
			out = append(out, c)
		}
	}
	return out, nil
}

func complementBit(b byte) byte {
	if b == Zero {
		return One
	}
	return Zero
}

// Intersects reports whether there is no position where a and b are both
// non-dash and differ, i.e. whether the cubes' minterm sets overlap.
func Intersects(a, b Cube) (bool, error) {
	if err := checkWidth(a, b); err != nil {
		return false, err
	}
	for i := 0; i < a.Width(); i++ {
		ai, bi := a.bits[i], b.bits[i]
		if ai != Dash && bi != Dash && ai != bi {
			return false, nil
		}
	}
	return true, nil
}

// Intersect computes the cube denoting minterms(a) ∩ minterms(b), elementwise:
// dash yields the other's bit, equal non-dash bits yield that bit, differing
// non-dash bits have no intersection (second result false).
func Intersect(a, b Cube) (Cube, bool, error) {
	if err := checkWidth(a, b); err != nil {
		return Cube{}, false, err
	}
	buf := make([]byte, a.Width())
	for i := 0; i < a.Width(); i++ {
		ai, bi := a.bits[i], b.bits[i]
		switch {
		case ai == Dash:
			buf[i] = bi
		case bi == Dash:
			buf[i] = ai
		case ai == bi:
			buf[i] = ai
		default:
			return Cube{}, false, nil
		}
	}
	return Cube{bits: string(buf)}, true, nil
}

// EachMinterm enumerates every minterm (fully-specified cube) obtained by
// substituting 0/1 for each dash position, in little-endian order over the
// dash positions as they appear left to right in the cube.
func (c Cube) EachMinterm() []Cube {
	var dashPos []int
	for i := 0; i < c.Width(); i++ {
		if c.bits[i] == Dash {
			dashPos = append(dashPos, i)
		}
	}
	if len(dashPos) == 0 {
		return []Cube{c}
	}
	n := 1 << len(dashPos)
	out := make([]Cube, 0, n)
	base := []byte(c.bits)
	for mask := 0; mask < n; mask++ {
		buf := append([]byte(nil), base...)
		for j, pos := range dashPos {
			if mask&(1<<j) != 0 {
				buf[pos] = One
			} else {
				buf[pos] = Zero
			}
		}
		out = append(out, Cube{bits: string(buf)})
	}
	return out
}
