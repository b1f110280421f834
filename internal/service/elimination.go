package service

// EliminationRules computes the decreasing volume glide path during an
// elimination phase. A block's baseline and CurrentGroup together form
// the rebase point; expected volumes for later groups are measured from
// it. Pure arithmetic, no I/O.
type EliminationRules struct {
	// GroupDays is the number of consecutive days sharing one volume.
	GroupDays int
	// Decrement is subtracted from the baseline per group past the
	// rebase point.
	Decrement float64
}

// GroupNumber maps a day offset since elimination start onto its group
// index. Day offsets must be non-negative; callers handle times before
// the start separately.
func (r EliminationRules) GroupNumber(daysSinceStart int) int {
	return daysSinceStart / r.GroupDays
}

// ExpectedVolume returns the glide-path volume for a group. Groups at or
// before the rebase point (group 0 included, since CurrentGroup starts
// at 0) read the baseline verbatim; this is the anchor and is never
// reduced by recorded values.
func (r EliminationRules) ExpectedVolume(baseline float64, currentGroup, group int) float64 {
	if group <= currentGroup {
		return baseline
	}
	v := baseline - float64(group-currentGroup)*r.Decrement
	if v < 0 {
		return 0
	}
	return v
}

// Resolve applies the asymmetric recording rule to a recorded volume:
// below the expected volume the recorded value wins and the caller must
// rebase the block's (baseline, CurrentGroup) to (recorded, group);
// at or above it the stored value is clamped down to the expected
// volume, silently rejecting manual increases above the glide path.
// Groups at or before the rebase point always store the baseline.
func (r EliminationRules) Resolve(baseline float64, currentGroup, group int, recorded float64) (stored float64, rebase bool) {
	if group <= currentGroup {
		return baseline, false
	}
	expected := r.ExpectedVolume(baseline, currentGroup, group)
	if recorded < expected {
		return recorded, true
	}
	return expected, false
}
