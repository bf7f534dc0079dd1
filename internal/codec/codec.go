// Package codec defines the versioned wire encoding for samples and reports.
// Every cross-boundary blob is a msgpack-encoded fixed-schema struct carrying
// an explicit version tag, so consumers never decode blind bytes.
package codec

import (
	"fmt"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/heatwatch/thermaltrap/pkg/trap"
)

// Version tags for the two payload schemas.
const (
	SampleVersion uint8 = 1
	ReportVersion uint8 = 1
)

type sampleV1 struct {
	Version   uint8  `msgpack:"v"`
	BaseFee   uint64 `msgpack:"base_fee"`
	GasLimit  uint64 `msgpack:"gas_limit"`
	Collected int64  `msgpack:"collected"` // unix nanos; 0 for an unstamped sample
}

type deltaV1 struct {
	BasefeeChange    uint64 `msgpack:"basefee_change"`
	GaslimitChange   uint64 `msgpack:"gaslimit_change"`
	CurrentBasefee   uint64 `msgpack:"current_basefee"`
	PreviousBasefee  uint64 `msgpack:"previous_basefee"`
	CurrentGaslimit  uint64 `msgpack:"current_gaslimit"`
	PreviousGaslimit uint64 `msgpack:"previous_gaslimit"`
}

type reportV1 struct {
	Version uint8    `msgpack:"v"`
	Reason  string   `msgpack:"reason"`
	Delta   *deltaV1 `msgpack:"delta"`
}

// EncodeSample encodes one sample as a versioned blob.
func EncodeSample(s trap.Sample) ([]byte, error) {
	var collected int64
	if !s.CollectedAt.IsZero() {
		collected = s.CollectedAt.UnixNano()
	}
	return msgpack.Marshal(sampleV1{
		Version:   SampleVersion,
		BaseFee:   s.BaseFee,
		GasLimit:  s.GasLimit,
		Collected: collected,
	})
}

// DecodeSample rejects undecodable bytes and unknown versions with
// trap.ErrMalformedPayload. A bad blob from the host indicates a caller bug,
// not a runtime condition to mask.
func DecodeSample(b []byte) (trap.Sample, error) {
	var s sampleV1
	if err := msgpack.Unmarshal(b, &s); err != nil {
		return trap.Sample{}, fmt.Errorf("%w: decoding sample: %v", trap.ErrMalformedPayload, err)
	}
	if s.Version != SampleVersion {
		return trap.Sample{}, fmt.Errorf("%w: unsupported sample version %d", trap.ErrMalformedPayload, s.Version)
	}
	out := trap.Sample{BaseFee: s.BaseFee, GasLimit: s.GasLimit}
	if s.Collected != 0 {
		out.CollectedAt = time.Unix(0, s.Collected)
	}
	return out, nil
}

// EncodeReport encodes one decision report as a versioned blob.
func EncodeReport(r trap.Report) ([]byte, error) {
	out := reportV1{
		Version: ReportVersion,
		Reason:  r.Reason,
	}
	if r.Delta != nil {
		out.Delta = &deltaV1{
			BasefeeChange:    r.Delta.BasefeeChange,
			GaslimitChange:   r.Delta.GaslimitChange,
			CurrentBasefee:   r.Delta.CurrentBasefee,
			PreviousBasefee:  r.Delta.PreviousBasefee,
			CurrentGaslimit:  r.Delta.CurrentGaslimit,
			PreviousGaslimit: r.Delta.PreviousGaslimit,
		}
	}
	return msgpack.Marshal(out)
}

// DecodeReport is the inverse of EncodeReport, with the same error contract as
// DecodeSample.
func DecodeReport(b []byte) (trap.Report, error) {
	var r reportV1
	if err := msgpack.Unmarshal(b, &r); err != nil {
		return trap.Report{}, fmt.Errorf("%w: decoding report: %v", trap.ErrMalformedPayload, err)
	}
	if r.Version != ReportVersion {
		return trap.Report{}, fmt.Errorf("%w: unsupported report version %d", trap.ErrMalformedPayload, r.Version)
	}
	out := trap.Report{Reason: r.Reason}
	if r.Delta != nil {
		out.Delta = &trap.Delta{
			BasefeeChange:    r.Delta.BasefeeChange,
			GaslimitChange:   r.Delta.GaslimitChange,
			CurrentBasefee:   r.Delta.CurrentBasefee,
			PreviousBasefee:  r.Delta.PreviousBasefee,
			CurrentGaslimit:  r.Delta.CurrentGaslimit,
			PreviousGaslimit: r.Delta.PreviousGaslimit,
		}
	}
	return out, nil
}
