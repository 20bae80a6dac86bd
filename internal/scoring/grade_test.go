package scoring

import "testing"

func TestLetterThresholds(t *testing.T) {
	s := DefaultScale()
	cases := []struct {
		pct  int
		want string
	}{
		{100, "A"},
		{90, "A"},
		{89, "B"},
		{80, "B"},
		{79, "C"},
		{70, "C"},
		{60, "D"},
		{59, "F"},
		{0, "F"},
	}
	for _, tc := range cases {
		if got := s.Letter(tc.pct); got != tc.want {
			t.Errorf("Letter(%d) = %q, want %q", tc.pct, got, tc.want)
		}
	}
}

func TestLetterMonotonic(t *testing.T) {
	s := DefaultScale()
	prev := -1
	for pct := 0; pct <= 110; pct++ {
		rank := s.Rank(s.Letter(pct))
		if rank < prev {
			t.Fatalf("rank dropped at %d%%: %d -> %d", pct, prev, rank)
		}
		prev = rank
	}
}

func TestRank(t *testing.T) {
	s := DefaultScale()
	if s.Rank("F") != 0 {
		t.Errorf("Rank(F) = %d, want 0", s.Rank("F"))
	}
	if s.Rank("A") != 4 {
		t.Errorf("Rank(A) = %d, want 4", s.Rank("A"))
	}
	if s.Rank("X") != -1 {
		t.Errorf("Rank(X) = %d, want -1", s.Rank("X"))
	}
}

func TestScaleValidate(t *testing.T) {
	if err := DefaultScale().Validate(); err != nil {
		t.Fatalf("default scale invalid: %v", err)
	}
	bad := GradeScale{{Threshold: 80, Letter: "B"}, {Threshold: 90, Letter: "A"}}
	if err := bad.Validate(); err == nil {
		t.Fatal("ascending scale should not validate")
	}
	noFloor := GradeScale{{Threshold: 90, Letter: "A"}, {Threshold: 60, Letter: "D"}}
	if err := noFloor.Validate(); err == nil {
		t.Fatal("scale without a 0 band should not validate")
	}
}
