package boolmin

import "fmt"

// ErrMalformedCube reports a bit-string containing a character outside {0,1,-}.
type ErrMalformedCube struct {
	Bits string
}

func (e *ErrMalformedCube) Error() string {
	return fmt.Sprintf("boolmin: malformed cube %q: bits must be one of \"01-\"", e.Bits)
}

// ErrWidthMismatch reports two cubes, or a cube and a cover, of different widths.
type ErrWidthMismatch struct {
	Want, Got int
}

func (e *ErrWidthMismatch) Error() string {
	return fmt.Sprintf("boolmin: width mismatch: want %d, got %d", e.Want, e.Got)
}

// ErrInvalidBit reports an attempt to write a character outside {0,1,-} to a cube position.
type ErrInvalidBit struct {
	Bit byte
}

func (e *ErrInvalidBit) Error() string {
	return fmt.Sprintf("boolmin: invalid bit %q: must be '0', '1', or '-'", e.Bit)
}

// ErrInvalidCofactorValue reports a cofactor call with a value other than '0' or '1'.
type ErrInvalidCofactorValue struct {
	Value byte
}

func (e *ErrInvalidCofactorValue) Error() string {
	return fmt.Sprintf("boolmin: invalid cofactor value %q: must be '0' or '1'", e.Value)
}

// ErrUnknownVariable reports a variable name absent from a cover's variable list.
type ErrUnknownVariable struct {
	Name string
}

func (e *ErrUnknownVariable) Error() string {
	return fmt.Sprintf("boolmin: unknown variable %q", e.Name)
}

// ErrRaggedMatrix reports an incidence matrix whose rows are not all the same length.
type ErrRaggedMatrix struct {
	Row, Want, Got int
}

func (e *ErrRaggedMatrix) Error() string {
	return fmt.Sprintf("boolmin: ragged matrix: row %d has width %d, want %d", e.Row, e.Got, e.Want)
}
