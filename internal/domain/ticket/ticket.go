package ticket

import (
	"fmt"
	"time"

	vo "storefix/internal/domain/ticket/valueobjects"
)

// Ticket is a reported maintenance issue moving through review, estimation,
// approval and execution. Status and owner only ever change through
// engine-approved transitions applied via ApplyTransition; the urgent flag
// and the original description are fixed at creation.
type Ticket struct {
	id                       uint
	number                   string
	storeID                  uint
	creatorID                uint
	title                    string
	originalDescription      string
	description              string
	category                 vo.Category
	urgent                   bool
	status                   vo.TicketStatus
	ownerID                  *uint
	clarificationRequesterID *uint
	assetID                  *uint
	archived                 bool
	version                  int
	createdAt                time.Time
	updatedAt                time.Time
}

func NewTicket(
	storeID uint,
	creatorID uint,
	title string,
	description string,
	category vo.Category,
	urgent bool,
	assetID *uint,
) (*Ticket, error) {
	if storeID == 0 {
		return nil, fmt.Errorf("store ID is required")
	}
	if creatorID == 0 {
		return nil, fmt.Errorf("creator ID is required")
	}
	if len(title) == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if len(title) > 200 {
		return nil, fmt.Errorf("title exceeds maximum length of 200 characters")
	}
	if len(description) == 0 {
		return nil, fmt.Errorf("description is required")
	}
	if len(description) > 5000 {
		return nil, fmt.Errorf("description exceeds maximum length of 5000 characters")
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("invalid category")
	}

	now := time.Now()
	owner := creatorID

	return &Ticket{
		number:              "",
		storeID:             storeID,
		creatorID:           creatorID,
		title:               title,
		originalDescription: description,
		description:         description,
		category:            category,
		urgent:              urgent,
		status:              vo.StatusDraft,
		ownerID:             &owner,
		assetID:             assetID,
		version:             1,
		createdAt:           now,
		updatedAt:           now,
	}, nil
}

func ReconstructTicket(
	id uint,
	number string,
	storeID uint,
	creatorID uint,
	title string,
	originalDescription string,
	description string,
	category vo.Category,
	urgent bool,
	status vo.TicketStatus,
	ownerID *uint,
	clarificationRequesterID *uint,
	assetID *uint,
	archived bool,
	version int,
	createdAt, updatedAt time.Time,
) (*Ticket, error) {
	if id == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if len(number) == 0 {
		return nil, fmt.Errorf("ticket number is required")
	}
	if !category.IsValid() {
		return nil, fmt.Errorf("invalid category")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status")
	}

	return &Ticket{
		id:                       id,
		number:                   number,
		storeID:                  storeID,
		creatorID:                creatorID,
		title:                    title,
		originalDescription:      originalDescription,
		description:              description,
		category:                 category,
		urgent:                   urgent,
		status:                   status,
		ownerID:                  ownerID,
		clarificationRequesterID: clarificationRequesterID,
		assetID:                  assetID,
		archived:                 archived,
		version:                  version,
		createdAt:                createdAt,
		updatedAt:                updatedAt,
	}, nil
}

func (t *Ticket) ID() uint                        { return t.id }
func (t *Ticket) Number() string                  { return t.number }
func (t *Ticket) StoreID() uint                   { return t.storeID }
func (t *Ticket) CreatorID() uint                 { return t.creatorID }
func (t *Ticket) Title() string                   { return t.title }
func (t *Ticket) OriginalDescription() string     { return t.originalDescription }
func (t *Ticket) Description() string             { return t.description }
func (t *Ticket) Category() vo.Category           { return t.category }
func (t *Ticket) Urgent() bool                    { return t.urgent }
func (t *Ticket) Status() vo.TicketStatus         { return t.status }
func (t *Ticket) OwnerID() *uint                  { return t.ownerID }
func (t *Ticket) ClarificationRequesterID() *uint { return t.clarificationRequesterID }
func (t *Ticket) AssetID() *uint                  { return t.assetID }
func (t *Ticket) Archived() bool                  { return t.archived }
func (t *Ticket) Version() int                    { return t.version }
func (t *Ticket) CreatedAt() time.Time            { return t.createdAt }
func (t *Ticket) UpdatedAt() time.Time            { return t.updatedAt }

func (t *Ticket) SetID(id uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = id
	return nil
}

func (t *Ticket) SetNumber(number string) error {
	if len(t.number) > 0 {
		return fmt.Errorf("ticket number is already set")
	}
	if len(number) == 0 {
		return fmt.Errorf("ticket number cannot be empty")
	}
	t.number = number
	return nil
}

// ApplyTransition records an engine-approved status change together with
// the resulting owner. It is the only mutation path for status and owner;
// callers must have run the transition through the workflow engine first.
func (t *Ticket) ApplyTransition(newStatus vo.TicketStatus, newOwnerID *uint) error {
	if !newStatus.IsValid() {
		return fmt.Errorf("invalid status: %s", newStatus)
	}
	if t.status.IsTerminal() {
		return fmt.Errorf("ticket in terminal status %s cannot transition", t.status)
	}

	t.status = newStatus
	t.ownerID = newOwnerID
	if newStatus == vo.StatusArchived {
		t.archived = true
	}
	t.updatedAt = time.Now()
	t.version++
	return nil
}

// BeginClarification remembers which reviewer asked for clarification so
// the store's response can be routed back to that exact user, however many
// rounds the exchange takes.
func (t *Ticket) BeginClarification(requesterID uint) error {
	if requesterID == 0 {
		return fmt.Errorf("clarification requester ID cannot be zero")
	}
	t.clarificationRequesterID = &requesterID
	return nil
}

// EndClarification consumes the recorded requester for the current round.
func (t *Ticket) EndClarification() (uint, error) {
	if t.clarificationRequesterID == nil {
		return 0, fmt.Errorf("no clarification requester recorded")
	}
	requester := *t.clarificationRequesterID
	t.clarificationRequesterID = nil
	return requester, nil
}

// AmendDescription updates the working description during a clarification
// round. The original description is immutable.
func (t *Ticket) AmendDescription(description string) error {
	if len(description) == 0 {
		return fmt.Errorf("description is required")
	}
	if len(description) > 5000 {
		return fmt.Errorf("description exceeds maximum length of 5000 characters")
	}
	t.description = description
	t.updatedAt = time.Now()
	return nil
}

func (t *Ticket) Validate() error {
	if t.storeID == 0 {
		return fmt.Errorf("store ID is required")
	}
	if t.creatorID == 0 {
		return fmt.Errorf("creator ID is required")
	}
	if len(t.title) == 0 {
		return fmt.Errorf("title is required")
	}
	if !t.category.IsValid() {
		return fmt.Errorf("invalid category")
	}
	if !t.status.IsValid() {
		return fmt.Errorf("invalid status")
	}
	return nil
}
