package valueobjects

import "fmt"

type WorkOrderStatus string

const (
	StatusCreated                    WorkOrderStatus = "CREATED"
	StatusAcceptedTechnicianAssigned WorkOrderStatus = "ACCEPTED_TECHNICIAN_ASSIGNED"
	StatusServiceInProgress          WorkOrderStatus = "SERVICE_IN_PROGRESS"
	StatusServiceCompleted           WorkOrderStatus = "SERVICE_COMPLETED"
	StatusFollowUpRequested          WorkOrderStatus = "FOLLOW_UP_REQUESTED"
	StatusNewWorkOrderNeeded         WorkOrderStatus = "NEW_WORK_ORDER_NEEDED"
	StatusRepairUnsuccessful         WorkOrderStatus = "REPAIR_UNSUCCESSFUL"
	StatusCostProposalPrepared       WorkOrderStatus = "COST_PROPOSAL_PREPARED"
	StatusCostProposalApproved       WorkOrderStatus = "COST_PROPOSAL_APPROVED"
	StatusCostRevisionRequested      WorkOrderStatus = "COST_REVISION_REQUESTED"
	StatusClosedWithoutCost          WorkOrderStatus = "CLOSED_WITHOUT_COST"
	StatusRejected                   WorkOrderStatus = "REJECTED"
)

var validWorkOrderStatuses = map[WorkOrderStatus]bool{
	StatusCreated:                    true,
	StatusAcceptedTechnicianAssigned: true,
	StatusServiceInProgress:          true,
	StatusServiceCompleted:           true,
	StatusFollowUpRequested:          true,
	StatusNewWorkOrderNeeded:         true,
	StatusRepairUnsuccessful:         true,
	StatusCostProposalPrepared:       true,
	StatusCostProposalApproved:       true,
	StatusCostRevisionRequested:      true,
	StatusClosedWithoutCost:          true,
	StatusRejected:                   true,
}

// Terminal statuses have no outgoing rules; NEW_WORK_ORDER_NEEDED,
// REPAIR_UNSUCCESSFUL and COST_PROPOSAL_APPROVED end the vendor execution
// flow as well, which is what the ticket ownership guard cares about.
var terminalWorkOrderStatuses = map[WorkOrderStatus]bool{
	StatusNewWorkOrderNeeded:   true,
	StatusRepairUnsuccessful:   true,
	StatusCostProposalApproved: true,
	StatusClosedWithoutCost:    true,
	StatusRejected:             true,
}

func (ws WorkOrderStatus) String() string {
	return string(ws)
}

func (ws WorkOrderStatus) IsValid() bool {
	return validWorkOrderStatuses[ws]
}

func (ws WorkOrderStatus) IsTerminal() bool {
	return terminalWorkOrderStatuses[ws]
}

func NewWorkOrderStatus(s string) (WorkOrderStatus, error) {
	ws := WorkOrderStatus(s)
	if !ws.IsValid() {
		return "", fmt.Errorf("invalid work order status: %s", s)
	}
	return ws, nil
}
