package trap

// Reason labels embedded in every Report payload.
const (
	ReasonNotEnoughData   = "Not enough data"
	ReasonInvalidBaseline = "Invalid baseline data"
	ReasonSpike           = "Thermal spike detected"
	ReasonNoSpike         = "No thermal spike"
)

// Delta carries the computed percentage changes plus the raw values they were
// derived from, preserving full provenance for off-chain audit.
type Delta struct {
	BasefeeChange    uint64
	GaslimitChange   uint64
	CurrentBasefee   uint64
	PreviousBasefee  uint64
	CurrentGaslimit  uint64
	PreviousGaslimit uint64
}

// Report is the decoded form of a ShouldRespond payload. Delta is nil when a
// data-sufficiency guard produced the report instead of a full evaluation.
type Report struct {
	Reason string
	Delta  *Delta
}
