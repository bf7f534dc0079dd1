// Package operator hosts a single trap: it samples on a cadence, maintains the
// evaluation window, evaluates, and relays positive decisions to the
// dispatcher. The rolling window lives here, newest first; the trap itself
// never stores history.
package operator

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/heatwatch/thermaltrap/internal/codec"
	"github.com/heatwatch/thermaltrap/pkg/trap"
)

// Config tunes the runner loop.
type Config struct {
	PollInterval time.Duration
	WindowSize   int    // retained history depth; minimum 2
	Origin       string // identity presented to the dispatcher
}

// Runner drives one trap through the collect/decide/relay cycle.
type Runner struct {
	trap       trap.Trap
	dispatcher trap.Dispatcher
	cfg        Config
	log        *logrus.Logger

	window [][]byte
}

// New creates a runner. A window size below 2 is raised to 2, the minimum the
// predicate needs for a decision.
func New(t trap.Trap, d trap.Dispatcher, cfg Config, log *logrus.Logger) *Runner {
	if cfg.WindowSize < 2 {
		cfg.WindowSize = 2
	}
	return &Runner{trap: t, dispatcher: d, cfg: cfg, log: log}
}

// Step runs one collect/decide/relay cycle.
func (r *Runner) Step(ctx context.Context) error {
	blob, err := r.trap.Collect(ctx)
	if err != nil {
		r.log.WithError(err).Warn("sample collection failed")
		return err
	}
	r.push(blob)

	triggered, payload, err := r.trap.ShouldRespond(ctx, r.window)
	if err != nil {
		r.log.WithError(err).Error("trap evaluation failed")
		return err
	}

	fields := logrus.Fields{"triggered": triggered, "window": len(r.window)}
	if report, derr := codec.DecodeReport(payload); derr == nil {
		fields["reason"] = report.Reason
	}
	r.log.WithFields(fields).Debug("trap evaluated")

	if !triggered {
		return nil
	}

	if err := r.dispatcher.DispatchHeat(ctx, r.cfg.Origin, payload); err != nil {
		r.log.WithError(err).Error("heat signal dispatch failed")
		return err
	}
	return nil
}

// Window returns the current evaluation window, newest first.
func (r *Runner) Window() [][]byte {
	return r.window
}

// Run steps once at launch and then on every poll-interval tick until ctx is
// done. A failed step is logged inside Step and does not stop the loop; the
// next block may sample cleanly.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.cfg.PollInterval)
	defer ticker.Stop()

	_ = r.Step(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			_ = r.Step(ctx)
		}
	}
}

// push prepends blob, trimming to the configured window depth.
func (r *Runner) push(blob []byte) {
	r.window = append([][]byte{blob}, r.window...)
	if len(r.window) > r.cfg.WindowSize {
		r.window = r.window[:r.cfg.WindowSize]
	}
}
