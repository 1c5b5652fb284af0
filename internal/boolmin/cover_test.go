package boolmin

import "testing"

func mustCover(t *testing.T, vars []string, bits ...string) Cover {
	t.Helper()
	cubes := make([]Cube, len(bits))
	for i, b := range bits {
		cubes[i] = MustCube(b)
	}
	cov, err := NewCover(vars, cubes)
	if err != nil {
		t.Fatalf("NewCover: %v", err)
	}
	return cov
}

func TestCoverUniteSubtractUniq(t *testing.T) {
	a := mustCover(t, []string{"x", "y"}, "10", "01")
	b := mustCover(t, []string{"x", "y"}, "01", "11")

	u := a.Unite(b)
	if len(u.Cubes) != 4 {
		t.Fatalf("Unite len = %d, want 4 (dup preserved)", len(u.Cubes))
	}
	if uq := u.Uniq(); len(uq.Cubes) != 3 {
		t.Fatalf("Uniq len = %d, want 3", len(uq.Cubes))
	}

	s := a.Subtract(b)
	if len(s.Cubes) != 1 || s.Cubes[0].String() != "10" {
		t.Fatalf("Subtract = %v, want [10]", s.Cubes)
	}
}

func TestCofactor(t *testing.T) {
	// a = "1--", "-01" over [a,b,c]
	cov := mustCover(t, []string{"a", "b", "c"}, "1--", "-01")

	cf0, err := cov.Cofactor("a", Zero)
	if err != nil {
		t.Fatal(err)
	}
	// "1--" has bit a=1, opposite of 0: dropped. "-01" has bit a=- : kept as "-01" (dash stays? no var a maps to idx0, which is '-' already, kept unchanged)
	if len(cf0.Cubes) != 1 || cf0.Cubes[0].String() != "-01" {
		t.Fatalf("Cofactor(a,0) = %v, want [-01]", cf0.Cubes)
	}

	cf1, err := cov.Cofactor("a", One)
	if err != nil {
		t.Fatal(err)
	}
	if len(cf1.Cubes) != 2 {
		t.Fatalf("Cofactor(a,1) len = %d, want 2", len(cf1.Cubes))
	}

	if _, err := cov.Cofactor("a", 'z'); err == nil {
		t.Fatal("expected error for invalid cofactor value")
	}
	if _, err := cov.Cofactor("nope", One); err == nil {
		t.Fatal("expected error for unknown variable")
	}
}

func TestCofactorCube(t *testing.T) {
	cov := mustCover(t, []string{"a", "b", "c"}, "1-0", "011")
	got, err := cov.CofactorCube(MustCube("1-0"))
	if err != nil {
		t.Fatal(err)
	}
	// "1-0" matches itself at every non-dash position -> all dash
	// "011" has a=0 conflicting with cube a=1 -> dropped
	if len(got.Cubes) != 1 || got.Cubes[0].String() != "---" {
		t.Fatalf("CofactorCube = %v, want [---]", got.Cubes)
	}
}

func TestFindBinateUnateVsBinate(t *testing.T) {
	unate := mustCover(t, []string{"a", "b", "c"}, "1--", "-1-", "--1")
	if _, ok := unate.FindBinate(); ok {
		t.Fatal("expected unate cover")
	}

	binate := mustCover(t, []string{"a", "b", "c"}, "1--", "0-1")
	v, ok := binate.FindBinate()
	if !ok || v != "a" {
		t.Fatalf("FindBinate = %q,%v, want a,true", v, ok)
	}
}

// S6: is_tautology on ["1--","-1-","--1","000"] over [a,b,c] is true;
// on ["1--","-1-","--1"] is false.
func TestIsTautologyS6(t *testing.T) {
	tautological := mustCover(t, []string{"a", "b", "c"}, "1--", "-1-", "--1", "000")
	if !tautological.IsTautology() {
		t.Fatal("expected tautology")
	}

	notTautological := mustCover(t, []string{"a", "b", "c"}, "1--", "-1-", "--1")
	if notTautological.IsTautology() {
		t.Fatal("expected non-tautology")
	}
}

func TestIsTautologyEmptyCoverIsFalse(t *testing.T) {
	empty := mustCover(t, []string{"a"})
	if empty.IsTautology() {
		t.Fatal("empty cover must not be a tautology")
	}
}

func coverMinterms(c Cover) map[string]bool {
	out := make(map[string]bool)
	for _, cube := range c.Cubes {
		for _, m := range cube.EachMinterm() {
			out[m.String()] = true
		}
	}
	return out
}

func mapEqual(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

// S5: complement of ["10-","-01"] over [a,b,c]. cov's own minterms are
// {100,101,001} (101 shared by both cubes); its complement must be the
// remaining 5 of the 8 possible minterms, disjoint from cov's per spec.md
// §8.5. Re-complementing equals the input under truth-table comparison.
func TestComplementS5(t *testing.T) {
	cov := mustCover(t, []string{"a", "b", "c"}, "10-", "-01")
	comp := cov.Complement()

	want := map[string]bool{}
	for _, m := range []string{"000", "010", "011", "110", "111"} {
		want[m] = true
	}
	got := coverMinterms(comp)
	if !mapEqual(got, want) {
		t.Fatalf("complement minterms = %v, want %v", got, want)
	}

	// involution: complement(complement(C)) is truth-table equal to C
	back := comp.Complement()
	if !mapEqual(coverMinterms(back), coverMinterms(cov)) {
		t.Fatalf("complement(complement(C)) != C: got %v want %v",
			coverMinterms(back), coverMinterms(cov))
	}
}

func TestComplementEmptyCover(t *testing.T) {
	empty := mustCover(t, []string{"a", "b"})
	comp := empty.Complement()
	if len(comp.Cubes) != 1 || comp.Cubes[0].String() != "--" {
		t.Fatalf("Complement(empty) = %v, want [--]", comp.Cubes)
	}
}

// Complement correctness (spec.md §8.5): C unite complement(C) is a
// tautology, and no minterm lies in both.
func TestComplementCorrectness(t *testing.T) {
	cov := mustCover(t, []string{"a", "b", "c"}, "1--", "0-1")
	comp := cov.Complement()

	union := cov.Unite(comp)
	if !union.IsTautology() {
		t.Fatal("C union complement(C) must be a tautology")
	}

	covM := coverMinterms(cov)
	compM := coverMinterms(comp)
	for m := range covM {
		if compM[m] {
			t.Errorf("minterm %s present in both C and complement(C)", m)
		}
	}
}

func TestComplementDeMorgan(t *testing.T) {
	// f = a|b over [a,b]; complement should be !a&!b = "00"
	cov := mustCover(t, []string{"a", "b"}, "1-", "-1")
	comp := cov.Complement()
	got := coverMinterms(comp)
	want := map[string]bool{"00": true}
	if !mapEqual(got, want) {
		t.Fatalf("Complement(a|b) minterms = %v, want %v", got, want)
	}
}

// A unate cover that already contains the all-dash cube is constant true;
// its complement must be the empty cover, not the all-dash cube again.
func TestComplementUnateTautology(t *testing.T) {
	cov := mustCover(t, []string{"a", "b"}, "1-", "--")
	comp := cov.Complement()
	if len(comp.Cubes) != 0 {
		t.Fatalf("Complement(tautological unate cover) = %v, want empty", comp.Cubes)
	}
}

func TestComplementBinateSplit(t *testing.T) {
	// f = a&b | !a&!c over [a,b,c]: a is binate (1 in cube 0, 0 in cube 1),
	// so Complement must Shannon-split on it rather than go straight to
	// the unate path.
	cov := mustCover(t, []string{"a", "b", "c"}, "11-", "0-0")
	if _, ok := cov.FindBinate(); !ok {
		t.Fatal("expected this cover to be binate on a")
	}
	comp := cov.Complement()

	union := cov.Unite(comp)
	if !union.IsTautology() {
		t.Fatal("C union complement(C) must be a tautology")
	}
	covM, compM := coverMinterms(cov), coverMinterms(comp)
	for m := range covM {
		if compM[m] {
			t.Errorf("minterm %s present in both C and complement(C)", m)
		}
	}
}

func TestCoverString(t *testing.T) {
	cov := mustCover(t, []string{"a", "b"}, "1-", "-0")
	if got, want := cov.String(), "a,b,1-,-0"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
}
