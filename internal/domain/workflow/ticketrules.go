package workflow

import (
	"fmt"

	tvo "storefix/internal/domain/ticket/valueobjects"
)

// ContextKeyUrgent is the request-context key carrying the ticket's urgent
// flag for rules that only apply on the urgent fast path.
const ContextKeyUrgent = "urgent"

func ticketStatus(s tvo.TicketStatus) Status {
	return Status(s)
}

// requireUrgent only passes for tickets flagged urgent at creation.
func requireUrgent(req Request) error {
	if urgent, ok := req.Context[ContextKeyUrgent].(bool); ok && urgent {
		return nil
	}
	return fmt.Errorf("only urgent tickets may take %s from %s", req.Action, req.Status)
}

// TicketTable returns the fixed ticket transition rules.
//
// Owner selection stays in the rule wherever it is static. SUBMIT,
// RESPOND_CLARIFICATION and ESCALATE intentionally leave NewOwnerRole empty:
// submission routes by urgency (urgent straight to the area maintenance
// manager, otherwise to the area manager), a clarification response routes
// back to whichever reviewer asked for it, and escalation's destination is
// amount-dependent and supplied by the approval chain resolver.
func TicketTable() *Table {
	reviewers := []Role{RoleAreaManager, RoleAreaMaintenanceManager}
	approvers := []Role{RoleAreaManager, RoleSalesDirector, RoleMaintenanceDirector, RoleBoardOfDirectors}
	escalators := []Role{RoleAreaManager, RoleSalesDirector, RoleMaintenanceDirector}

	return NewTable(KindTicket, []Rule{
		{
			From: ticketStatus(tvo.StatusDraft), Action: ActionSubmit,
			To:    ticketStatus(tvo.StatusSubmitted),
			Roles: []Role{RoleStore}, RequireOwner: true,
		},

		{
			From: ticketStatus(tvo.StatusSubmitted), Action: ActionRequestClarification,
			To:    ticketStatus(tvo.StatusAwaitingCreatorResponse),
			Roles: reviewers, RequireOwner: true, NewOwnerRole: RoleStore,
		},
		{
			From: ticketStatus(tvo.StatusSubmitted), Action: ActionReject,
			To:    ticketStatus(tvo.StatusRejected),
			Roles: reviewers, RequireOwner: true, ClearOwner: true,
		},
		{
			From: ticketStatus(tvo.StatusSubmitted), Action: ActionSendForEstimation,
			To:    ticketStatus(tvo.StatusCostEstimationNeeded),
			Roles: []Role{RoleAreaManager}, RequireOwner: true, NewOwnerRole: RoleAreaMaintenanceManager,
		},
		{
			From: ticketStatus(tvo.StatusSubmitted), Action: ActionArchive,
			To:    ticketStatus(tvo.StatusArchived),
			Roles: []Role{RoleAreaMaintenanceManager}, RequireOwner: true,
			ClearOwner: true, Validate: requireUrgent,
		},
		{
			From: ticketStatus(tvo.StatusSubmitted), Action: ActionOpenWorkOrder,
			To:    ticketStatus(tvo.StatusWorkOrderInProgress),
			Roles: []Role{RoleAreaMaintenanceManager}, RequireOwner: true,
			NewOwnerRole: RoleAreaMaintenanceManager, Validate: requireUrgent,
		},

		{
			From: ticketStatus(tvo.StatusAwaitingCreatorResponse), Action: ActionRespondClarification,
			To:    ticketStatus(tvo.StatusUpdatedSubmitted),
			Roles: []Role{RoleStore}, RequireOwner: true,
		},
		{
			From: ticketStatus(tvo.StatusAwaitingCreatorResponse), Action: ActionWithdraw,
			To:    ticketStatus(tvo.StatusWithdrawn),
			Roles: []Role{RoleStore}, RequireOwner: true, ClearOwner: true,
		},

		{
			From: ticketStatus(tvo.StatusUpdatedSubmitted), Action: ActionRequestClarification,
			To:    ticketStatus(tvo.StatusAwaitingCreatorResponse),
			Roles: reviewers, RequireOwner: true, NewOwnerRole: RoleStore,
		},
		{
			From: ticketStatus(tvo.StatusUpdatedSubmitted), Action: ActionReject,
			To:    ticketStatus(tvo.StatusRejected),
			Roles: reviewers, RequireOwner: true, ClearOwner: true,
		},
		{
			// Both reviewers may route an updated ticket to estimation: the
			// area manager during initial review, and the area maintenance
			// manager resuming after an estimation-phase clarification.
			From: ticketStatus(tvo.StatusUpdatedSubmitted), Action: ActionSendForEstimation,
			To:    ticketStatus(tvo.StatusCostEstimationNeeded),
			Roles: reviewers, RequireOwner: true, NewOwnerRole: RoleAreaMaintenanceManager,
		},

		{
			From: ticketStatus(tvo.StatusCostEstimationNeeded), Action: ActionSubmitEstimation,
			To:    ticketStatus(tvo.StatusCostEstimationApprovalNeeded),
			Roles: []Role{RoleAreaMaintenanceManager}, RequireOwner: true, NewOwnerRole: RoleAreaManager,
		},
		{
			From: ticketStatus(tvo.StatusCostEstimationNeeded), Action: ActionRequestClarification,
			To:    ticketStatus(tvo.StatusAwaitingCreatorResponse),
			Roles: []Role{RoleAreaMaintenanceManager}, RequireOwner: true, NewOwnerRole: RoleStore,
		},
		{
			From: ticketStatus(tvo.StatusCostEstimationNeeded), Action: ActionReject,
			To:    ticketStatus(tvo.StatusRejected),
			Roles: []Role{RoleAreaMaintenanceManager}, RequireOwner: true, ClearOwner: true,
		},

		{
			From: ticketStatus(tvo.StatusCostEstimationApprovalNeeded), Action: ActionApprove,
			To:    ticketStatus(tvo.StatusCostEstimationApproved),
			Roles: approvers, RequireOwner: true, NewOwnerRole: RoleAreaMaintenanceManager,
		},
		{
			// Same status, different owner: the approval chain resolver
			// picks the next approver at the call site.
			From: ticketStatus(tvo.StatusCostEstimationApprovalNeeded), Action: ActionEscalate,
			To:    ticketStatus(tvo.StatusCostEstimationApprovalNeeded),
			Roles: escalators, RequireOwner: true,
		},
		{
			From: ticketStatus(tvo.StatusCostEstimationApprovalNeeded), Action: ActionReturn,
			To:    ticketStatus(tvo.StatusCostEstimationNeeded),
			Roles: approvers, RequireOwner: true, NewOwnerRole: RoleAreaMaintenanceManager,
		},
		{
			From: ticketStatus(tvo.StatusCostEstimationApprovalNeeded), Action: ActionReject,
			To:    ticketStatus(tvo.StatusRejected),
			Roles: approvers, RequireOwner: true, ClearOwner: true,
		},

		{
			From: ticketStatus(tvo.StatusCostEstimationApproved), Action: ActionOpenWorkOrder,
			To:    ticketStatus(tvo.StatusWorkOrderInProgress),
			Roles: []Role{RoleAreaMaintenanceManager}, RequireOwner: true,
			NewOwnerRole: RoleAreaMaintenanceManager,
		},
		{
			From: ticketStatus(tvo.StatusCostEstimationApproved), Action: ActionArchive,
			To:    ticketStatus(tvo.StatusArchived),
			Roles: []Role{RoleAreaMaintenanceManager}, RequireOwner: true, ClearOwner: true,
		},

		{
			From: ticketStatus(tvo.StatusWorkOrderInProgress), Action: ActionArchive,
			To:    ticketStatus(tvo.StatusArchived),
			Roles: []Role{RoleAreaMaintenanceManager}, RequireOwner: true, ClearOwner: true,
		},
	})
}
