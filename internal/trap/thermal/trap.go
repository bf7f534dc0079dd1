// Package thermal implements the thermal spike trap: it samples base fee and
// gas limit and reports when the configured trigger policy finds the change
// against the prior sample large enough.
package thermal

import (
	"context"
	"fmt"
	"math"
	"math/bits"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/heatwatch/thermaltrap/internal/codec"
	"github.com/heatwatch/thermaltrap/internal/metrics"
	"github.com/heatwatch/thermaltrap/pkg/trap"
)

// CollectOpts lets the caller tune sampling latency and freshness guarantees.
type CollectOpts struct {
	PerReadTimeout time.Duration // zero => no per-read timeout
	MaxSampleAge   time.Duration // zero => no freshness check
}

// Trap implements trap.Trap over an injected ChainReader and TriggerPolicy.
// It holds no state between calls; the evaluation window is the host's.
type Trap struct {
	reader trap.ChainReader
	policy trap.TriggerPolicy
	opts   CollectOpts
}

var _ trap.Trap = (*Trap)(nil)

// New creates a thermal spike trap over the given reader and policy.
func New(reader trap.ChainReader, policy trap.TriggerPolicy, opts CollectOpts) *Trap {
	return &Trap{reader: reader, policy: policy, opts: opts}
}

// Collect reads both metrics concurrently and returns one encoded Sample.
func (t *Trap) Collect(ctx context.Context) ([]byte, error) {
	readerID := t.reader.Describe().ID
	timer := prometheus.NewTimer(metrics.ChainReadLatency.WithLabelValues(readerID))
	defer timer.ObserveDuration()

	var sample trap.Sample
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := t.read(gctx, t.reader.BaseFee)
		if err != nil {
			return fmt.Errorf("reading base fee: %w", err)
		}
		sample.BaseFee = v
		return nil
	})
	g.Go(func() error {
		v, err := t.read(gctx, t.reader.GasLimit)
		if err != nil {
			return fmt.Errorf("reading gas limit: %w", err)
		}
		sample.GasLimit = v
		return nil
	})
	if err := g.Wait(); err != nil {
		metrics.ChainReadErrors.WithLabelValues(readerID, "collect").Inc()
		return nil, err
	}
	sample.CollectedAt = time.Now()

	return codec.EncodeSample(sample)
}

func (t *Trap) read(ctx context.Context, fetch func(context.Context) (uint64, error)) (uint64, error) {
	if t.opts.PerReadTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.opts.PerReadTimeout)
		defer cancel()
	}
	return fetch(ctx)
}

// ShouldRespond decides over a newest-first window of encoded Samples.
// window[0] is the current sample, window[1] the baseline. The two guard
// diagnostics are reported as negative decisions, not errors; malformed or
// stale window entries are a hard failure.
func (t *Trap) ShouldRespond(ctx context.Context, window [][]byte) (bool, []byte, error) {
	if len(window) < 2 {
		metrics.Evaluations.WithLabelValues("insufficient_data").Inc()
		return t.quiet(trap.ReasonNotEnoughData, nil)
	}

	current, err := codec.DecodeSample(window[0])
	if err != nil {
		metrics.Evaluations.WithLabelValues("malformed").Inc()
		return false, nil, fmt.Errorf("window[0]: %w", err)
	}
	previous, err := codec.DecodeSample(window[1])
	if err != nil {
		metrics.Evaluations.WithLabelValues("malformed").Inc()
		return false, nil, fmt.Errorf("window[1]: %w", err)
	}

	if err := t.checkAge(current, "current"); err != nil {
		return false, nil, err
	}
	if err := t.checkAge(previous, "baseline"); err != nil {
		return false, nil, err
	}

	// Percentage change is undefined against a zero baseline; reporting 0%
	// would mask a jump from zero.
	if previous.BaseFee == 0 || previous.GasLimit == 0 {
		metrics.Evaluations.WithLabelValues("invalid_baseline").Inc()
		return t.quiet(trap.ReasonInvalidBaseline, nil)
	}

	delta := trap.Delta{
		BasefeeChange:    percentChange(current.BaseFee, previous.BaseFee),
		GaslimitChange:   percentChange(current.GasLimit, previous.GasLimit),
		CurrentBasefee:   current.BaseFee,
		PreviousBasefee:  previous.BaseFee,
		CurrentGaslimit:  current.GasLimit,
		PreviousGaslimit: previous.GasLimit,
	}

	triggered, err := t.policy.Decide(ctx, delta)
	if err != nil {
		metrics.Evaluations.WithLabelValues("policy_error").Inc()
		return false, nil, err
	}

	if !triggered {
		metrics.Evaluations.WithLabelValues("quiet").Inc()
		return t.quiet(trap.ReasonNoSpike, &delta)
	}

	payload, err := codec.EncodeReport(trap.Report{Reason: trap.ReasonSpike, Delta: &delta})
	if err != nil {
		return false, nil, err
	}
	metrics.Evaluations.WithLabelValues("triggered").Inc()
	return true, payload, nil
}

// checkAge enforces the freshness horizon when one is configured. An
// unstamped sample reads as arbitrarily old and is rejected too.
func (t *Trap) checkAge(s trap.Sample, position string) error {
	if t.opts.MaxSampleAge <= 0 {
		return nil
	}
	age := time.Since(s.CollectedAt)
	if age <= t.opts.MaxSampleAge {
		return nil
	}
	metrics.StaleSamples.WithLabelValues(position).Inc()
	metrics.Evaluations.WithLabelValues("stale").Inc()
	return fmt.Errorf("%w: %s sample aged %s, max %s",
		trap.ErrSampleStale, position, age.Truncate(time.Millisecond), t.opts.MaxSampleAge)
}

func (t *Trap) quiet(reason string, delta *trap.Delta) (bool, []byte, error) {
	payload, err := codec.EncodeReport(trap.Report{Reason: reason, Delta: delta})
	if err != nil {
		return false, nil, err
	}
	return false, payload, nil
}

// percentChange returns floor(|current-previous| * 100 / previous), the
// absolute percent delta. The intermediate product is widened so extreme
// deltas cannot wrap; a quotient that does not fit in 64 bits saturates.
func percentChange(current, previous uint64) uint64 {
	var diff uint64
	if current > previous {
		diff = current - previous
	} else {
		diff = previous - current
	}
	hi, lo := bits.Mul64(diff, 100)
	if hi >= previous {
		return math.MaxUint64
	}
	q, _ := bits.Div64(hi, lo, previous)
	return q
}
