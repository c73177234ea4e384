package shared

import (
	"errors"
	"fmt"
)

var (
	ErrCapacityExceeded = errors.New("capacity exceeded")
	ErrTruncatedStream  = errors.New("truncated stream")
	ErrMalformedCarrier = errors.New("malformed carrier")
	ErrPayloadTooLarge  = errors.New("payload too large")
	ErrUnalignedBits    = errors.New("bit count is not a multiple of 8")
	ErrReceiptMismatch  = errors.New("receipt mismatch")
)

// CapacityError is returned when a bitstream requires more channel slots than the carrier holds.
type CapacityError struct {
	Required  uint64
	Available uint64
}

func (err *CapacityError) Error() string {
	return fmt.Sprintf("%v; required: %d slots, available: %d slots", ErrCapacityExceeded, err.Required, err.Available)
}

func (err *CapacityError) Unwrap() error { return ErrCapacityExceeded }

// TruncatedStreamError is returned when a bitstream ends before the extent its length prefix declares.
type TruncatedStreamError struct {
	// Declared payload length, in bytes. Zero if the length prefix itself is incomplete.
	Declared  uint64
	Required  uint64
	Available uint64
}

func (err *TruncatedStreamError) Error() string {
	return fmt.Sprintf("%v; declared length: %d, required: %d bits, available: %d bits",
		ErrTruncatedStream, err.Declared, err.Required, err.Available)
}

func (err *TruncatedStreamError) Unwrap() error { return ErrTruncatedStream }

// MalformedCarrierError is returned when a carrier's length prefix declares a payload
// the carrier could never hold.
type MalformedCarrierError struct {
	Declared uint64
	Capacity uint64
}

func (err *MalformedCarrierError) Error() string {
	return fmt.Sprintf("%v; declared length: %d bytes, carrier capacity: %d slots",
		ErrMalformedCarrier, err.Declared, err.Capacity)
}

func (err *MalformedCarrierError) Unwrap() error { return ErrMalformedCarrier }

type ConfigMismatchError struct {
	Param    string
	Expected string
	Found    string
}

func (err ConfigMismatchError) Error() string {
	return fmt.Sprintf("`%v` mismatch; expected: %v, found: %v",
		err.Param, err.Expected, err.Found)
}

func (err ConfigMismatchError) Unwrap() error { return ErrReceiptMismatch }
