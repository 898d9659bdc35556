package valueobjects

import "fmt"

type TicketStatus string

const (
	StatusDraft                        TicketStatus = "DRAFT"
	StatusSubmitted                    TicketStatus = "SUBMITTED"
	StatusAwaitingCreatorResponse      TicketStatus = "AWAITING_CREATOR_RESPONSE"
	StatusUpdatedSubmitted             TicketStatus = "UPDATED_SUBMITTED"
	StatusCostEstimationNeeded         TicketStatus = "COST_ESTIMATION_NEEDED"
	StatusCostEstimationApprovalNeeded TicketStatus = "COST_ESTIMATION_APPROVAL_NEEDED"
	StatusCostEstimationApproved       TicketStatus = "COST_ESTIMATION_APPROVED"
	StatusWorkOrderInProgress          TicketStatus = "WORK_ORDER_IN_PROGRESS"
	StatusRejected                     TicketStatus = "REJECTED"
	StatusWithdrawn                    TicketStatus = "WITHDRAWN"
	StatusArchived                     TicketStatus = "ARCHIVED"
)

var validTicketStatuses = map[TicketStatus]bool{
	StatusDraft:                        true,
	StatusSubmitted:                    true,
	StatusAwaitingCreatorResponse:      true,
	StatusUpdatedSubmitted:             true,
	StatusCostEstimationNeeded:         true,
	StatusCostEstimationApprovalNeeded: true,
	StatusCostEstimationApproved:       true,
	StatusWorkOrderInProgress:          true,
	StatusRejected:                     true,
	StatusWithdrawn:                    true,
	StatusArchived:                     true,
}

// terminalTicketStatuses have no outgoing transition rules.
var terminalTicketStatuses = map[TicketStatus]bool{
	StatusRejected:  true,
	StatusWithdrawn: true,
	StatusArchived:  true,
}

func (ts TicketStatus) String() string {
	return string(ts)
}

func (ts TicketStatus) IsValid() bool {
	return validTicketStatuses[ts]
}

func (ts TicketStatus) IsTerminal() bool {
	return terminalTicketStatuses[ts]
}

func NewTicketStatus(s string) (TicketStatus, error) {
	ts := TicketStatus(s)
	if !ts.IsValid() {
		return "", fmt.Errorf("invalid ticket status: %s", s)
	}
	return ts, nil
}
