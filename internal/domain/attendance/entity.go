package attendance

import (
	"time"

	"github.com/guardsystem/guardpost-backend-go/internal/domain/post"
)

type ActionType string

const (
	ActionCheckIn  ActionType = "CHECK_IN"
	ActionRonda    ActionType = "RONDA"
	ActionCheckOut ActionType = "CHECK_OUT"
)

var ActionTypeValues = []string{
	string(ActionCheckIn),
	string(ActionRonda),
	string(ActionCheckOut),
}

type RecordStatus string

const (
	// StatusValid marks an action matching the roster, or any ronda or
	// check-out tied to an open shift.
	StatusValid RecordStatus = "VALID"
	// StatusSubstitution marks a check-in by someone other than the
	// planned employee for the resolved slot.
	StatusSubstitution RecordStatus = "SUBSTITUTION"
	// StatusMismatch marks a check-in whose timestamp falls outside every
	// active shift window of the post. It is recorded for admin review
	// and never matched to a planned slot.
	StatusMismatch RecordStatus = "MISMATCH"
)

// MaxRondaPhotos bounds the evidence a single patrol may carry. Enforced
// at the capture stage, not by the validator.
const MaxRondaPhotos = 15

// Location is a single device-reported GPS reading.
type Location struct {
	Latitude  float64
	Longitude float64
	Altitude  *float64
}

// AttendanceRecord is an immutable event in the append-only ledger. It is
// created only by a successful validated action and never mutated or
// deleted afterwards.
type AttendanceRecord struct {
	ID                    string
	Timestamp             time.Time
	EmployeeID            string
	PostID                string
	Latitude              float64
	Longitude             float64
	Altitude              *float64
	Type                  ActionType
	Status                RecordStatus
	SubstitutedEmployeeID *string
	Photos                []string
}

type SlotStatusKind string

const (
	// SlotAtivo: the planned employee has a matching check-in.
	SlotAtivo SlotStatusKind = "ATIVO"
	// SlotFalta: no matching check-in and no substitute found.
	SlotFalta SlotStatusKind = "FALTA"
	// SlotSubstituicao: a different employee covered the slot.
	SlotSubstituicao SlotStatusKind = "SUBSTITUICAO"
)

// SlotStatus is the derived coverage state of one planned slot. The
// window always comes from the roster entry, never from the check-in
// timestamp, so a late check-in stays attributed to its scheduled slot.
type SlotStatus struct {
	Kind   SlotStatusKind
	Window post.ShiftWindowID

	// EmployeeID/EmployeeName identify the planned employee for ATIVO and
	// FALTA slots, and the substitute for SUBSTITUICAO slots.
	EmployeeID   string
	EmployeeName string

	// Set only for SUBSTITUICAO.
	SubstitutedEmployeeID string
	SubstitutedName       string

	CheckIn  *time.Time
	CheckOut *time.Time
}
