package trap

import "context"

// DefaultThresholdPercent is the canonical 1% trigger threshold.
const DefaultThresholdPercent uint64 = 1

// TriggerPolicy turns a computed Delta into a trigger decision.
type TriggerPolicy interface {
	ID() string
	// Decide must be deterministic given delta. Must return ErrPolicyEvaluation
	// (wrapped) if the evaluation itself fails.
	Decide(ctx context.Context, delta Delta) (bool, error)
}

// BothExceed triggers only when both metrics exceed the threshold. This is the
// canonical policy: a spike in a single metric is not a thermal spike.
type BothExceed struct {
	ThresholdPercent uint64
}

var _ TriggerPolicy = BothExceed{}

// ID implements TriggerPolicy.
func (p BothExceed) ID() string { return "both-exceed" }

// Decide implements TriggerPolicy.
func (p BothExceed) Decide(_ context.Context, delta Delta) (bool, error) {
	return delta.BasefeeChange > p.ThresholdPercent && delta.GaslimitChange > p.ThresholdPercent, nil
}

// EitherExceeds triggers when at least one metric exceeds the threshold.
type EitherExceeds struct {
	ThresholdPercent uint64
}

var _ TriggerPolicy = EitherExceeds{}

// ID implements TriggerPolicy.
func (p EitherExceeds) ID() string { return "either-exceeds" }

// Decide implements TriggerPolicy.
func (p EitherExceeds) Decide(_ context.Context, delta Delta) (bool, error) {
	return delta.BasefeeChange > p.ThresholdPercent || delta.GaslimitChange > p.ThresholdPercent, nil
}
