package workflow

import (
	wvo "storefix/internal/domain/workorder/valueobjects"
)

func woStatus(s wvo.WorkOrderStatus) Status {
	return Status(s)
}

// WorkOrderTable returns the fixed work order transition rules. Ownership
// alternates between the vendor service admin, the assigned technician, the
// vendor back office and the internal area maintenance manager exactly as
// each rule's NewOwnerRole encodes. The CREATED→CREATED return/resend pair
// and the tech-count correction are explicit same-status rules because the
// resulting owner is observable state, not a no-op.
func WorkOrderTable() *Table {
	return NewTable(KindWorkOrder, []Rule{
		{
			From: woStatus(wvo.StatusCreated), Action: ActionAccept,
			To:    woStatus(wvo.StatusAcceptedTechnicianAssigned),
			Roles: []Role{RoleVendorServiceAdmin}, RequireOwner: true, NewOwnerRole: RoleVendorTechnician,
		},
		{
			// Vendor admin hands the order back for clarification.
			From: woStatus(wvo.StatusCreated), Action: ActionReturn,
			To:    woStatus(wvo.StatusCreated),
			Roles: []Role{RoleVendorServiceAdmin}, RequireOwner: true, NewOwnerRole: RoleAreaMaintenanceManager,
		},
		{
			// The area maintenance manager resends after clarifying.
			From: woStatus(wvo.StatusCreated), Action: ActionResend,
			To:    woStatus(wvo.StatusCreated),
			Roles: []Role{RoleAreaMaintenanceManager}, RequireOwner: true, NewOwnerRole: RoleVendorServiceAdmin,
		},
		{
			From: woStatus(wvo.StatusCreated), Action: ActionReject,
			To:    woStatus(wvo.StatusRejected),
			Roles: []Role{RoleVendorServiceAdmin}, RequireOwner: true, ClearOwner: true,
		},

		{
			From: woStatus(wvo.StatusAcceptedTechnicianAssigned), Action: ActionReturnForCorrection,
			To:    woStatus(wvo.StatusAcceptedTechnicianAssigned),
			Roles: []Role{RoleStore}, NewOwnerRole: RoleVendorServiceAdmin,
		},
		{
			// Check-in tolerates the owner being the technician, the store
			// or a follow-up state; compatibility is enforced where the QR
			// token is generated.
			From: woStatus(wvo.StatusAcceptedTechnicianAssigned), Action: ActionCheckIn,
			To:    woStatus(wvo.StatusServiceInProgress),
			Roles: []Role{RoleVendorTechnician, RoleStore}, NewOwnerRole: RoleVendorTechnician,
		},

		{
			From: woStatus(wvo.StatusServiceInProgress), Action: ActionCheckOut,
			To:    woStatus(wvo.StatusServiceCompleted),
			Roles: []Role{RoleVendorTechnician}, RequireOwner: true, NewOwnerRole: RoleVendorBackOffice,
		},
		{
			From: woStatus(wvo.StatusServiceInProgress), Action: ActionRequestFollowUp,
			To:    woStatus(wvo.StatusFollowUpRequested),
			Roles: []Role{RoleVendorTechnician}, RequireOwner: true, NewOwnerRole: RoleVendorServiceAdmin,
		},
		{
			From: woStatus(wvo.StatusServiceInProgress), Action: ActionRequestNewWorkOrder,
			To:    woStatus(wvo.StatusNewWorkOrderNeeded),
			Roles: []Role{RoleVendorTechnician}, RequireOwner: true, NewOwnerRole: RoleAreaMaintenanceManager,
		},
		{
			From: woStatus(wvo.StatusServiceInProgress), Action: ActionMarkUnsuccessful,
			To:    woStatus(wvo.StatusRepairUnsuccessful),
			Roles: []Role{RoleVendorTechnician}, RequireOwner: true, NewOwnerRole: RoleAreaMaintenanceManager,
		},
		{
			// Direct proposal without a completed-service step.
			From: woStatus(wvo.StatusServiceInProgress), Action: ActionPrepareCostProposal,
			To:    woStatus(wvo.StatusCostProposalPrepared),
			Roles: []Role{RoleVendorTechnician, RoleVendorBackOffice}, RequireOwner: true,
			NewOwnerRole: RoleAreaMaintenanceManager,
		},
		{
			From: woStatus(wvo.StatusServiceInProgress), Action: ActionCloseWithoutCost,
			To:    woStatus(wvo.StatusClosedWithoutCost),
			Roles: []Role{RoleAreaMaintenanceManager}, ClearOwner: true,
		},

		{
			From: woStatus(wvo.StatusFollowUpRequested), Action: ActionReschedule,
			To:    woStatus(wvo.StatusAcceptedTechnicianAssigned),
			Roles: []Role{RoleVendorServiceAdmin, RoleStore}, NewOwnerRole: RoleVendorTechnician,
		},

		{
			From: woStatus(wvo.StatusServiceCompleted), Action: ActionPrepareCostProposal,
			To:    woStatus(wvo.StatusCostProposalPrepared),
			Roles: []Role{RoleVendorBackOffice}, RequireOwner: true, NewOwnerRole: RoleAreaMaintenanceManager,
		},

		{
			From: woStatus(wvo.StatusCostProposalPrepared), Action: ActionApproveCostProposal,
			To:    woStatus(wvo.StatusCostProposalApproved),
			Roles: []Role{RoleAreaMaintenanceManager}, RequireOwner: true, NewOwnerRole: RoleAreaMaintenanceManager,
		},
		{
			From: woStatus(wvo.StatusCostProposalPrepared), Action: ActionRequestCostRevision,
			To:    woStatus(wvo.StatusCostRevisionRequested),
			Roles: []Role{RoleAreaMaintenanceManager}, RequireOwner: true, NewOwnerRole: RoleVendorBackOffice,
		},
		{
			From: woStatus(wvo.StatusCostProposalPrepared), Action: ActionReject,
			To:    woStatus(wvo.StatusRejected),
			Roles: []Role{RoleAreaMaintenanceManager}, RequireOwner: true, ClearOwner: true,
		},
		{
			From: woStatus(wvo.StatusCostProposalPrepared), Action: ActionCloseWithoutCost,
			To:    woStatus(wvo.StatusClosedWithoutCost),
			Roles: []Role{RoleAreaMaintenanceManager}, RequireOwner: true, ClearOwner: true,
		},

		{
			From: woStatus(wvo.StatusCostRevisionRequested), Action: ActionResubmitProposal,
			To:    woStatus(wvo.StatusCostProposalPrepared),
			Roles: []Role{RoleVendorBackOffice}, RequireOwner: true, NewOwnerRole: RoleAreaMaintenanceManager,
		},
	})
}
