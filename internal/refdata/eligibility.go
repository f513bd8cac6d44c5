package refdata

// DefaultEligibleModes are the commercial modes that can carry the EEA
// reduction today. The list is configurable (ELIGIBLE_MODES) because the
// regulator can extend it without a code change.
var DefaultEligibleModes = []string{"TGV INOUI", "Intercités"}

// Classifier decides whether a train leg's commercial mode is capable of
// carrying the reduction. It is a pure membership test over an allow-list.
type Classifier struct {
	modes map[string]struct{}
}

// NewClassifier builds a Classifier from the given allow-list.
// An empty list falls back to DefaultEligibleModes.
func NewClassifier(modes []string) *Classifier {
	if len(modes) == 0 {
		modes = DefaultEligibleModes
	}
	set := make(map[string]struct{}, len(modes))
	for _, m := range modes {
		set[m] = struct{}{}
	}
	return &Classifier{modes: set}
}

// Eligible reports whether the given commercial mode carries the reduction.
// Unknown modes are ineligible; downstream annotation forces such legs to
// second class regardless of the traveler's preference.
func (c *Classifier) Eligible(mode string) bool {
	_, ok := c.modes[mode]
	return ok
}
