// Package qr models the short-lived, single-use tokens proving physical
// presence at work order check-in and check-out. Expiration is a wall-clock
// comparison at validation time; no background sweep is needed for
// correctness.
package qr

import (
	"fmt"
	"time"
)

// ScanType says which visit boundary a token gates.
type ScanType string

const (
	ScanCheckIn  ScanType = "CHECKIN"
	ScanCheckOut ScanType = "CHECKOUT"
)

func (s ScanType) IsValid() bool {
	return s == ScanCheckIn || s == ScanCheckOut
}

// Reason classifies a failed validation. Failures have no side effects.
type Reason string

const (
	ReasonNotFound    Reason = "not_found"
	ReasonMismatch    Reason = "mismatch"
	ReasonAlreadyUsed Reason = "already_used"
	ReasonExpired     Reason = "expired"
)

// ValidationError carries the typed refusal reason to the caller.
type ValidationError struct {
	Reason Reason
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("qr token validation failed: %s", e.Reason)
}

// Record is one generated token. It moves unused → used exactly once and is
// never reactivated.
type Record struct {
	id                      uint
	workOrderID             uint
	token                   string
	scanType                ScanType
	declaredTechnicianCount int
	generatedAt             time.Time
	expiresAt               time.Time
	used                    bool
	usedAt                  *time.Time
}

// NewRecord issues a token for a work order. The declared technician count
// is only meaningful for check-in tokens and must then be at least 1.
func NewRecord(workOrderID uint, token string, scanType ScanType, declaredTechnicianCount int, now time.Time, ttl time.Duration) (*Record, error) {
	if workOrderID == 0 {
		return nil, fmt.Errorf("work order ID is required")
	}
	if len(token) == 0 {
		return nil, fmt.Errorf("token is required")
	}
	if !scanType.IsValid() {
		return nil, fmt.Errorf("invalid scan type: %s", scanType)
	}
	if scanType == ScanCheckIn && declaredTechnicianCount < 1 {
		return nil, fmt.Errorf("declared technician count must be at least 1 for check-in")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive")
	}

	return &Record{
		workOrderID:             workOrderID,
		token:                   token,
		scanType:                scanType,
		declaredTechnicianCount: declaredTechnicianCount,
		generatedAt:             now,
		expiresAt:               now.Add(ttl),
	}, nil
}

func ReconstructRecord(
	id uint,
	workOrderID uint,
	token string,
	scanType ScanType,
	declaredTechnicianCount int,
	generatedAt, expiresAt time.Time,
	used bool,
	usedAt *time.Time,
) (*Record, error) {
	if id == 0 {
		return nil, fmt.Errorf("qr record ID cannot be zero")
	}
	return &Record{
		id:                      id,
		workOrderID:             workOrderID,
		token:                   token,
		scanType:                scanType,
		declaredTechnicianCount: declaredTechnicianCount,
		generatedAt:             generatedAt,
		expiresAt:               expiresAt,
		used:                    used,
		usedAt:                  usedAt,
	}, nil
}

func (r *Record) ID() uint                     { return r.id }
func (r *Record) WorkOrderID() uint            { return r.workOrderID }
func (r *Record) Token() string                { return r.token }
func (r *Record) ScanType() ScanType           { return r.scanType }
func (r *Record) DeclaredTechnicianCount() int { return r.declaredTechnicianCount }
func (r *Record) GeneratedAt() time.Time       { return r.generatedAt }
func (r *Record) ExpiresAt() time.Time         { return r.expiresAt }
func (r *Record) Used() bool                   { return r.used }
func (r *Record) UsedAt() *time.Time           { return r.usedAt }

func (r *Record) SetID(id uint) error {
	if r.id != 0 {
		return fmt.Errorf("qr record ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("qr record ID cannot be zero")
	}
	r.id = id
	return nil
}

// Consume validates the token against a target work order at a point in
// time and marks it used. On failure the record is untouched; success flips
// unused → used exactly once.
func (r *Record) Consume(workOrderID uint, now time.Time) error {
	if r.workOrderID != workOrderID {
		return &ValidationError{Reason: ReasonMismatch}
	}
	if r.used {
		return &ValidationError{Reason: ReasonAlreadyUsed}
	}
	if now.After(r.expiresAt) {
		return &ValidationError{Reason: ReasonExpired}
	}

	r.used = true
	r.usedAt = &now
	return nil
}
