// Package planning turns recipes and banquet event orders into scaled
// quantities, purchase lines, schedule grids and division prep sheets.
//
// Everything here is a pure function of its inputs. Nothing is cached; a
// changed input is handled by computing again.
package planning

import "errors"

// Contract violations. These indicate a caller bug and are never coerced.
var (
	ErrInvalidScalingInput      = errors.New("invalid scaling input")
	ErrInvalidPackConfiguration = errors.New("invalid pack configuration")
	ErrUnparsableTime           = errors.New("unparsable time")
)

// WarningKind classifies a data-quality gap reported alongside a result.
type WarningKind string

const (
	MissingVendorMapping WarningKind = "missing_vendor_mapping"
	UnitMismatch         WarningKind = "unit_mismatch"
	EventSkipped         WarningKind = "event_skipped"
)

// Warning is a data-quality gap that was absorbed rather than failed on.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Item    string      `json:"item"`
	Message string      `json:"message"`
}
