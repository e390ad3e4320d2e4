package apperrors

import "fmt"

// RuleReason identifies which shift business rule was violated.
type RuleReason string

const (
	TooManyShiftsPerDay  RuleReason = "TOO_MANY_SHIFTS_PER_DAY"
	InvalidWorkType      RuleReason = "INVALID_WORK_TYPE"
	IncompleteTimeWindow RuleReason = "INCOMPLETE_TIME_WINDOW"
	InvertedTimeWindow   RuleReason = "INVERTED_TIME_WINDOW"
)

// RuleViolation is returned by the shift rules engine when a candidate shift
// must not be persisted. It is caller-facing and always short-circuits before
// any write.
type RuleViolation struct {
	Reason RuleReason
	Detail string
}

func (v *RuleViolation) Error() string {
	if v.Detail == "" {
		return string(v.Reason)
	}
	return fmt.Sprintf("%s: %s", v.Reason, v.Detail)
}

// Unwrap lets errors.Is(err, ErrValidation) match rule violations so the
// handlers map them to the same caller-facing class.
func (v *RuleViolation) Unwrap() error {
	return ErrValidation
}

func NewRuleViolation(reason RuleReason, detail string) *RuleViolation {
	return &RuleViolation{Reason: reason, Detail: detail}
}
