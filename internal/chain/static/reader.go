// Package static provides a chain reader whose values are pinned from
// configuration, for smoke-testing a deployment without a live source.
package static

import (
	"context"

	"github.com/heatwatch/thermaltrap/internal/config"
	"github.com/heatwatch/thermaltrap/pkg/trap"
)

// Reader implements trap.ChainReader with configuration-pinned values.
type Reader struct {
	baseFee  uint64
	gasLimit uint64
}

var _ trap.ChainReader = (*Reader)(nil)

// NewFromConfig creates a reader serving the static values from cfg.
func NewFromConfig(cfg *config.AppConfig) *Reader {
	return &Reader{
		baseFee:  uint64(cfg.Chain.StaticBaseFee),
		gasLimit: uint64(cfg.Chain.StaticGasLimit),
	}
}

// New creates a reader serving the given fixed values.
func New(baseFee, gasLimit uint64) *Reader {
	return &Reader{baseFee: baseFee, gasLimit: gasLimit}
}

// Describe implements trap.ChainReader.
func (r *Reader) Describe() trap.Schema {
	return trap.Schema{
		ID:          "static",
		Description: "Configuration-pinned chain metrics",
	}
}

// BaseFee implements trap.ChainReader. Static values are always fresh and
// never fail.
func (r *Reader) BaseFee(_ context.Context) (uint64, error) {
	return r.baseFee, nil
}

// GasLimit implements trap.ChainReader.
func (r *Reader) GasLimit(_ context.Context) (uint64, error) {
	return r.gasLimit, nil
}
