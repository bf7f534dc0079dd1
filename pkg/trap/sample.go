package trap

import "time"

// Sample is one observation of the two block-level metrics. Immutable once
// produced; retention across blocks is the host's concern, never the trap's.
type Sample struct {
	BaseFee  uint64
	GasLimit uint64

	// CollectedAt anchors the freshness check. Zero means the producer did
	// not stamp the sample.
	CollectedAt time.Time
}
