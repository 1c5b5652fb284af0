package boolmin

import (
	"testing"
	"time"
)

func containsIntSlice(have [][]int, want []int) bool {
	for _, h := range have {
		if len(h) != len(want) {
			continue
		}
		match := true
		for i := range h {
			if h[i] != want[i] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// S4: minimal_column_covers on ["110","101","011"] with smallest=true
// returns a length-2 cover, e.g. [0,1].
func TestMinimalColumnCoverS4(t *testing.T) {
	matrix := []string{"110", "101", "011"}
	got, err := MinimalColumnCover(matrix, time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("MinimalColumnCover = %v, want length 2", got)
	}
}

func TestEssentialColumnsForcedIntoCover(t *testing.T) {
	// row 0's sole 1 is column 0: column 0 is essential and must be selected.
	matrix := []string{"100", "110", "011"}
	got, err := MinimalColumnCover(matrix, time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, c := range got {
		if c == 0 {
			found = true
		}
	}
	if !found {
		t.Fatalf("MinimalColumnCover(%v) = %v, essential column 0 missing", matrix, got)
	}
}

func TestMinimalColumnCoverAllEssentials(t *testing.T) {
	// every row has a unique sole 1 -> reduced matrix is empty, essentials
	// alone are the unique minimal cover.
	matrix := []string{"100", "010", "001"}
	got, err := MinimalColumnCover(matrix, time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	want := []int{0, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestAllMinimalColumnCovers(t *testing.T) {
	matrix := []string{"110", "101", "011"}
	all, err := AllMinimalColumnCovers(matrix)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) == 0 {
		t.Fatal("expected at least one minimal cover")
	}
	// every minimal cover here has cardinality 2; all three pairs are valid.
	for _, cov := range all {
		if len(cov) != 2 {
			t.Errorf("cover %v has unexpected length", cov)
		}
	}
	if !containsIntSlice(all, []int{0, 1}) && !containsIntSlice(all, []int{0, 2}) && !containsIntSlice(all, []int{1, 2}) {
		t.Fatalf("AllMinimalColumnCovers(%v) = %v, expected one of the three pairs", matrix, all)
	}
}

// AllMinimalColumnCovers must include every irredundant cover Petrick
// expansion produces, not only the smallest: the unate complement path
// unions every one of them into its result.
func TestAllMinimalColumnCoversKeepsEveryCardinality(t *testing.T) {
	matrix := []string{"110", "011"}
	all, err := AllMinimalColumnCovers(matrix)
	if err != nil {
		t.Fatal(err)
	}
	if !containsIntSlice(all, []int{1}) {
		t.Fatalf("AllMinimalColumnCovers(%v) = %v, missing the cardinality-1 cover [1]", matrix, all)
	}
	if !containsIntSlice(all, []int{0, 2}) {
		t.Fatalf("AllMinimalColumnCovers(%v) = %v, missing the cardinality-2 cover [0,2]", matrix, all)
	}
}

func TestMinimalColumnCoverDeadlineBestEffort(t *testing.T) {
	matrix := []string{"1100", "0110", "0011", "1001"}
	past := time.Now().Add(-time.Hour)
	got, err := MinimalColumnCover(matrix, past)
	if err != nil {
		t.Fatal(err)
	}
	// deadline already expired: result must still be a non-nil best-effort
	// answer, not an error.
	if got == nil {
		t.Fatal("expected a best-effort result even past the deadline")
	}
}

func TestMinimalColumnCoverRejectsRaggedMatrix(t *testing.T) {
	if _, err := MinimalColumnCover([]string{"11", "101"}, time.Time{}); err == nil {
		t.Fatal("expected error for ragged matrix")
	}
}

func TestMinimalColumnCoverRejectsBadAlphabet(t *testing.T) {
	if _, err := MinimalColumnCover([]string{"1-0"}, time.Time{}); err == nil {
		t.Fatal("expected error for non-binary matrix")
	}
}

func TestMinimalColumnCoverEmptyMatrix(t *testing.T) {
	got, err := MinimalColumnCover(nil, time.Time{})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("got %v, want empty", got)
	}
}
