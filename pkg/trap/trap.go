package trap

import "context"

// Schema provides metadata about a ChainReader or other pluggable component.
type Schema struct {
	ID          string
	Description string
}

// ChainReader exposes the two block-level metrics a trap samples. Implementations
// own caching and transport; the trap only ever sees the current values.
type ChainReader interface {
	Describe() Schema
	// BaseFee returns the current base fee. Must return ErrChainSourceUnavailable
	// (wrapped) when the underlying source cannot be reached.
	BaseFee(ctx context.Context) (uint64, error)
	// GasLimit returns the current gas limit, with the same error contract.
	GasLimit(ctx context.Context) (uint64, error)
}

// Trap is one pluggable rule evaluated each cycle by the host. Collect produces
// an encoded Sample reflecting current chain state; ShouldRespond decides over a
// newest-first window of encoded Samples supplied by the host. Traps hold no
// state between calls.
type Trap interface {
	Collect(ctx context.Context) ([]byte, error)
	// ShouldRespond returns the trigger flag and an encoded Report payload.
	// Malformed window entries are a hard failure (ErrMalformedPayload), never a
	// quiet negative decision.
	ShouldRespond(ctx context.Context, window [][]byte) (bool, []byte, error)
}
