package profile

import "errors"

// These never escape Parse, they describe why a field was left empty
// in telemetry reports.
var (
	ErrMalformedCache      = errors.New("malformed cache blob")
	ErrUnresolvedReference = errors.New("unresolved reference")
	ErrUnparseableAmount   = errors.New("unparseable amount")
	ErrStructuralMismatch  = errors.New("structural mismatch")
)
