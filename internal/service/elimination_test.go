package service

import "testing"

func testRules() EliminationRules {
	return EliminationRules{GroupDays: 3, Decrement: 0.5}
}

func TestEliminationRules_GroupNumber(t *testing.T) {
	r := testRules()

	cases := []struct {
		days, want int
	}{
		{0, 0}, {1, 0}, {2, 0},
		{3, 1}, {5, 1},
		{6, 2},
		{29, 9},
	}
	for _, tc := range cases {
		if got := r.GroupNumber(tc.days); got != tc.want {
			t.Errorf("day %d: expected group %d, got %d", tc.days, tc.want, got)
		}
	}
}

func TestEliminationRules_ExpectedVolume(t *testing.T) {
	r := testRules()

	// Measured from the rebase point (baseline 4.0 at group 0).
	cases := []struct {
		group int
		want  float64
	}{
		{0, 4.0},
		{1, 3.5},
		{2, 3.0},
		{8, 0.0},
		{100, 0.0}, // never negative
	}
	for _, tc := range cases {
		if got := r.ExpectedVolume(4.0, 0, tc.group); got != tc.want {
			t.Errorf("group %d: expected %.1f, got %.1f", tc.group, tc.want, got)
		}
	}

	// After a rebase to (2.0, group 2) the decrement restarts there.
	if got := r.ExpectedVolume(2.0, 2, 4); got != 1.0 {
		t.Errorf("group 4 from rebase point: expected 1.0, got %.1f", got)
	}
	// Groups at or before the rebase point read the baseline verbatim.
	if got := r.ExpectedVolume(2.0, 2, 1); got != 2.0 {
		t.Errorf("group before rebase point: expected 2.0, got %.1f", got)
	}
}

func TestEliminationRules_Resolve(t *testing.T) {
	r := testRules()

	// Within the anchor group the baseline always wins.
	if stored, rebase := r.Resolve(4.0, 0, 0, 3.0); stored != 4.0 || rebase {
		t.Errorf("anchor group: expected (4.0, false), got (%.1f, %v)", stored, rebase)
	}

	// A lower recording rebases.
	if stored, rebase := r.Resolve(4.0, 0, 2, 2.0); stored != 2.0 || !rebase {
		t.Errorf("lower recording: expected (2.0, true), got (%.1f, %v)", stored, rebase)
	}

	// A higher recording clamps to the glide path without rebasing.
	if stored, rebase := r.Resolve(4.0, 0, 2, 3.5); stored != 3.0 || rebase {
		t.Errorf("higher recording: expected (3.0, false), got (%.1f, %v)", stored, rebase)
	}

	// Recording exactly the expected volume keeps it.
	if stored, rebase := r.Resolve(4.0, 0, 2, 3.0); stored != 3.0 || rebase {
		t.Errorf("exact recording: expected (3.0, false), got (%.1f, %v)", stored, rebase)
	}
}
