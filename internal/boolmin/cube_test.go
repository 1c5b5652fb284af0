package boolmin

import "testing"

func TestNewCubeRejectsBadAlphabet(t *testing.T) {
	if _, err := NewCube("1a0"); err == nil {
		t.Fatal("expected error for malformed cube")
	}
}

func TestDistance(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"101", "100", 1},
		{"1-1", "1-0", 1},
		{"1-1", "1-1", 0},
		{"111", "000", 3},
		{"1--", "0--", 1},
	}
	for _, c := range cases {
		d, err := Distance(MustCube(c.a), MustCube(c.b))
		if err != nil {
			t.Fatalf("Distance(%s,%s): %v", c.a, c.b, err)
		}
		if d != c.want {
			t.Errorf("Distance(%s,%s) = %d, want %d", c.a, c.b, d, c.want)
		}
	}
}

func TestCanMergeAndMerge(t *testing.T) {
	a, b := MustCube("101"), MustCube("100")
	if !CanMerge(a, b) {
		t.Fatal("expected mergeable")
	}
	m, ok := Merge(a, b)
	if !ok || m.String() != "10-" {
		t.Fatalf("Merge(101,100) = %q,%v, want 10-,true", m, ok)
	}

	// different dash patterns never merge even at distance 1
	c, d := MustCube("1-1"), MustCube("110")
	if CanMerge(c, d) {
		t.Fatal("expected non-mergeable: dash patterns differ")
	}

	// distance 2 never merges
	e, f := MustCube("111"), MustCube("000")
	if CanMerge(e, f) {
		t.Fatal("expected non-mergeable: distance != 1")
	}
}

func TestConsensus(t *testing.T) {
	a, b := MustCube("1-0"), MustCube("0-0")
	c, ok := Consensus(a, b)
	if !ok || c.String() != "--0" {
		t.Fatalf("Consensus(1-0,0-0) = %q,%v, want --0,true", c, ok)
	}

	// distance != 1 => undefined
	_, ok = Consensus(MustCube("111"), MustCube("000"))
	if ok {
		t.Fatal("expected consensus undefined at distance 3")
	}
}

func TestSharp(t *testing.T) {
	// a=1-, b=10: only position 1 qualifies (b is non-dash, a is dash there),
	// so a with that position set to !0 gives 11
	got, err := Sharp(MustCube("1-"), MustCube("10"))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].String() != "11" {
		t.Fatalf("Sharp(1-,10) = %v, want [11]", got)
	}

	// a minus a = empty
	none, err := Sharp(MustCube("1-0"), MustCube("1-0"))
	if err != nil {
		t.Fatal(err)
	}
	if len(none) != 0 {
		t.Fatalf("Sharp(a,a) = %v, want empty", none)
	}
}

func TestSharpMintermProperty(t *testing.T) {
	// minterms(a) \ minterms(b) == union of minterms(sharp(a,b))
	a, b := MustCube("1--"), MustCube("10-")
	parts, err := Sharp(a, b)
	if err != nil {
		t.Fatal(err)
	}
	got := mintermSet(a)
	bSet := mintermSet(b)
	for m := range bSet {
		delete(got, m)
	}
	want := make(map[string]bool)
	for _, p := range parts {
		for _, m := range p.EachMinterm() {
			want[m.String()] = true
		}
	}
	if len(got) != len(want) {
		t.Fatalf("cardinality mismatch: got %d want %d", len(got), len(want))
	}
	for m := range got {
		if !want[m] {
			t.Errorf("minterm %s missing from sharp result", m)
		}
	}
}

func mintermSet(c Cube) map[string]bool {
	out := make(map[string]bool)
	for _, m := range c.EachMinterm() {
		out[m.String()] = true
	}
	return out
}

func TestIntersectsAndIntersect(t *testing.T) {
	a, b := MustCube("1-0"), MustCube("11-")
	if ok, err := Intersects(a, b); err != nil || !ok {
		t.Fatalf("Intersects(1-0,11-) = %v,%v, want true,nil", ok, err)
	}
	c, ok, err := Intersect(a, b)
	if err != nil || !ok || c.String() != "110" {
		t.Fatalf("Intersect(1-0,11-) = %q,%v,%v, want 110,true,nil", c, ok, err)
	}

	d, e := MustCube("10"), MustCube("01")
	if ok, _ := Intersects(d, e); ok {
		t.Fatal("expected no intersection")
	}
	_, ok, _ = Intersect(d, e)
	if ok {
		t.Fatal("expected Intersect to report no intersection")
	}
}

func TestEachMintermOrderAndCount(t *testing.T) {
	c := MustCube("1-0-")
	got := c.EachMinterm()
	if len(got) != 4 {
		t.Fatalf("len = %d, want 4", len(got))
	}
	seen := make(map[string]bool)
	for _, m := range got {
		if m.Width() != 4 {
			t.Fatalf("minterm %s has wrong width", m)
		}
		seen[m.String()] = true
	}
	// dash positions 1 and 3 act as a little-endian selector: position 1 is
	// the low bit.
	for i, want := range []string{"1000", "1100", "1001", "1101"} {
		if !seen[want] {
			t.Errorf("missing minterm %s", want)
		}
		if got[i].String() != want {
			t.Errorf("minterm %d = %s, want %s", i, got[i], want)
		}
	}
}

func TestEachMintermNoDash(t *testing.T) {
	c := MustCube("101")
	got := c.EachMinterm()
	if len(got) != 1 || got[0].String() != "101" {
		t.Fatalf("EachMinterm(101) = %v, want [101]", got)
	}
}
