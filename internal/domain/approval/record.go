package approval

import (
	"fmt"
	"time"

	"storefix/internal/domain/workflow"
)

// RecordOutcome is the decision one approver took at their chain position.
type RecordOutcome string

const (
	OutcomeApproved RecordOutcome = "APPROVED"
	OutcomeReturned RecordOutcome = "RETURNED"
	OutcomeRejected RecordOutcome = "REJECTED"
)

var validOutcomes = map[RecordOutcome]bool{
	OutcomeApproved: true,
	OutcomeReturned: true,
	OutcomeRejected: true,
}

// Record is one append-only approval-chain decision. Records are never
// mutated or deleted; the chain's current position is derived from the
// record history together with the ticket's current owner.
type Record struct {
	id         uint
	ticketID   uint
	approverID uint
	role       workflow.Role
	outcome    RecordOutcome
	comment    string
	createdAt  time.Time
}

func NewRecord(ticketID, approverID uint, role workflow.Role, outcome RecordOutcome, comment string) (*Record, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if approverID == 0 {
		return nil, fmt.Errorf("approver ID is required")
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("invalid role: %s", role)
	}
	if !validOutcomes[outcome] {
		return nil, fmt.Errorf("invalid outcome: %s", outcome)
	}

	return &Record{
		ticketID:   ticketID,
		approverID: approverID,
		role:       role,
		outcome:    outcome,
		comment:    comment,
		createdAt:  time.Now(),
	}, nil
}

func ReconstructRecord(id, ticketID, approverID uint, role workflow.Role, outcome RecordOutcome, comment string, createdAt time.Time) (*Record, error) {
	if id == 0 {
		return nil, fmt.Errorf("record ID cannot be zero")
	}
	return &Record{
		id:         id,
		ticketID:   ticketID,
		approverID: approverID,
		role:       role,
		outcome:    outcome,
		comment:    comment,
		createdAt:  createdAt,
	}, nil
}

func (r *Record) ID() uint               { return r.id }
func (r *Record) TicketID() uint         { return r.ticketID }
func (r *Record) ApproverID() uint       { return r.approverID }
func (r *Record) Role() workflow.Role    { return r.role }
func (r *Record) Outcome() RecordOutcome { return r.outcome }
func (r *Record) Comment() string        { return r.comment }
func (r *Record) CreatedAt() time.Time   { return r.createdAt }

func (r *Record) SetID(id uint) error {
	if r.id != 0 {
		return fmt.Errorf("record ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("record ID cannot be zero")
	}
	r.id = id
	return nil
}
