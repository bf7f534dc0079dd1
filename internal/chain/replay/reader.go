// Package replay provides a chain reader that replays recorded block samples
// from a YAML fixture, for deterministic end-to-end runs.
package replay

import (
	"context"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/heatwatch/thermaltrap/pkg/trap"
)

// Entry is one recorded observation.
type Entry struct {
	BaseFee  uint64 `yaml:"base_fee"`
	GasLimit uint64 `yaml:"gas_limit"`
}

type fixture struct {
	Entries []Entry `yaml:"entries"`
}

// Reader replays entries in order. The cursor advances once both metrics of
// the current entry have been observed, so one collection cycle sees exactly
// one entry regardless of read order.
type Reader struct {
	mu        sync.Mutex
	entries   []Entry
	cursor    int
	readFee   bool
	readLimit bool
}

var _ trap.ChainReader = (*Reader)(nil)

// Load parses the fixture file at path and returns a reader over its entries.
func Load(path string) (*Reader, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading fixture %s: %v", trap.ErrChainSourceUnavailable, path, err)
	}
	var f fixture
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("%w: parsing fixture %s: %v", trap.ErrChainSourceUnavailable, path, err)
	}
	if len(f.Entries) == 0 {
		return nil, fmt.Errorf("%w: fixture %s has no entries", trap.ErrChainSourceUnavailable, path)
	}
	return New(f.Entries), nil
}

// New creates a reader over the given entries.
func New(entries []Entry) *Reader {
	return &Reader{entries: entries}
}

// Describe implements trap.ChainReader.
func (r *Reader) Describe() trap.Schema {
	return trap.Schema{
		ID:          "replay",
		Description: "Recorded block samples replayed from a fixture",
	}
}

// BaseFee implements trap.ChainReader.
func (r *Reader) BaseFee(_ context.Context) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cursor >= len(r.entries) {
		return 0, fmt.Errorf("%w: fixture exhausted after %d entries", trap.ErrChainSourceUnavailable, len(r.entries))
	}
	v := r.entries[r.cursor].BaseFee
	r.readFee = true
	r.maybeAdvance()
	return v, nil
}

// GasLimit implements trap.ChainReader.
func (r *Reader) GasLimit(_ context.Context) (uint64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cursor >= len(r.entries) {
		return 0, fmt.Errorf("%w: fixture exhausted after %d entries", trap.ErrChainSourceUnavailable, len(r.entries))
	}
	v := r.entries[r.cursor].GasLimit
	r.readLimit = true
	r.maybeAdvance()
	return v, nil
}

// Remaining reports how many entries have not yet been fully consumed.
func (r *Reader) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries) - r.cursor
}

func (r *Reader) maybeAdvance() {
	if r.readFee && r.readLimit {
		r.cursor++
		r.readFee, r.readLimit = false, false
	}
}
