package audit

import (
	"fmt"
	"time"

	"storefix/internal/domain/workflow"
)

// Entry records a single accepted transition. Entries are append-only and
// are written in the same transaction as the transition they describe.
type Entry struct {
	id         uint
	entityKind workflow.EntityKind
	entityID   uint
	action     workflow.Action
	fromStatus workflow.Status
	toStatus   workflow.Status
	actorID    uint
	actorRole  workflow.Role
	detail     map[string]any
	createdAt  time.Time
}

func NewEntry(
	entityKind workflow.EntityKind,
	entityID uint,
	action workflow.Action,
	fromStatus, toStatus workflow.Status,
	actorID uint,
	actorRole workflow.Role,
	detail map[string]any,
) (*Entry, error) {
	if entityID == 0 {
		return nil, fmt.Errorf("entity ID is required")
	}
	if action == "" {
		return nil, fmt.Errorf("action is required")
	}
	if actorID == 0 {
		return nil, fmt.Errorf("actor ID is required")
	}
	return &Entry{
		entityKind: entityKind,
		entityID:   entityID,
		action:     action,
		fromStatus: fromStatus,
		toStatus:   toStatus,
		actorID:    actorID,
		actorRole:  actorRole,
		detail:     detail,
		createdAt:  time.Now(),
	}, nil
}

func ReconstructEntry(
	id uint,
	entityKind workflow.EntityKind,
	entityID uint,
	action workflow.Action,
	fromStatus, toStatus workflow.Status,
	actorID uint,
	actorRole workflow.Role,
	detail map[string]any,
	createdAt time.Time,
) *Entry {
	return &Entry{
		id:         id,
		entityKind: entityKind,
		entityID:   entityID,
		action:     action,
		fromStatus: fromStatus,
		toStatus:   toStatus,
		actorID:    actorID,
		actorRole:  actorRole,
		detail:     detail,
		createdAt:  createdAt,
	}
}

func (e *Entry) ID() uint                        { return e.id }
func (e *Entry) EntityKind() workflow.EntityKind { return e.entityKind }
func (e *Entry) EntityID() uint                  { return e.entityID }
func (e *Entry) Action() workflow.Action         { return e.action }
func (e *Entry) FromStatus() workflow.Status     { return e.fromStatus }
func (e *Entry) ToStatus() workflow.Status       { return e.toStatus }
func (e *Entry) ActorID() uint                   { return e.actorID }
func (e *Entry) ActorRole() workflow.Role        { return e.actorRole }
func (e *Entry) Detail() map[string]any          { return e.detail }
func (e *Entry) CreatedAt() time.Time            { return e.createdAt }

func (e *Entry) SetID(id uint) error {
	if e.id != 0 {
		return fmt.Errorf("audit entry ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("audit entry ID cannot be zero")
	}
	e.id = id
	return nil
}
