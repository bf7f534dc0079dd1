// Package mock provides a controllable in-memory chain reader for tests.
package mock

import (
	"context"
	"sync"

	"github.com/heatwatch/thermaltrap/pkg/trap"
)

// Reader implements trap.ChainReader with controllable values.
type Reader struct {
	mu       sync.RWMutex
	baseFee  uint64
	gasLimit uint64
	err      error
}

var _ trap.ChainReader = (*Reader)(nil)

// New creates a new mock reader with the given initial values.
func New(baseFee, gasLimit uint64) *Reader {
	return &Reader{baseFee: baseFee, gasLimit: gasLimit}
}

// WithError configures the reader to return the specified error on every read.
func (r *Reader) WithError(err error) *Reader {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
	return r
}

// Set replaces both metric values, simulating a new block.
func (r *Reader) Set(baseFee, gasLimit uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.baseFee = baseFee
	r.gasLimit = gasLimit
}

// Describe implements trap.ChainReader.
func (r *Reader) Describe() trap.Schema {
	return trap.Schema{
		ID:          "mock",
		Description: "Controllable in-memory chain reader",
	}
}

// BaseFee implements trap.ChainReader.
func (r *Reader) BaseFee(ctx context.Context) (uint64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.err != nil {
		return 0, r.err
	}
	return r.baseFee, nil
}

// GasLimit implements trap.ChainReader.
func (r *Reader) GasLimit(ctx context.Context) (uint64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.err != nil {
		return 0, r.err
	}
	return r.gasLimit, nil
}
