// Package logemit emits heat signals as structured log events for off-chain
// subscribers tailing the event stream.
package logemit

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/heatwatch/thermaltrap/internal/metrics"
	"github.com/heatwatch/thermaltrap/pkg/trap"
)

// Dispatcher implements trap.Dispatcher with logrus output. It keeps no state
// between calls; every event is independent.
type Dispatcher struct {
	log     *logrus.Logger
	allowed trap.AllowList
}

var _ trap.Dispatcher = (*Dispatcher)(nil)

// New creates a log-emitting dispatcher restricted to the given allow-list.
// An empty allow-list leaves the dispatcher open to any origin.
func New(log *logrus.Logger, allowed trap.AllowList) *Dispatcher {
	return &Dispatcher{log: log, allowed: allowed}
}

// DispatchHeat implements trap.Dispatcher. The payload is treated as opaque
// bytes and re-emitted verbatim, hex-encoded for the log field.
func (d *Dispatcher) DispatchHeat(_ context.Context, origin string, payload []byte) error {
	if !d.allowed.Permits(origin) {
		metrics.HeatSignals.WithLabelValues("unauthorized").Inc()
		return fmt.Errorf("%w: %q", trap.ErrUnauthorizedDispatch, origin)
	}

	d.log.WithFields(logrus.Fields{
		"origin":       origin,
		"payload":      hex.EncodeToString(payload),
		"payload_size": len(payload),
	}).Info("heat signal dispatched")

	metrics.HeatSignals.WithLabelValues("emitted").Inc()
	return nil
}
