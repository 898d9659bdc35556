package workflow

// Action identifies a requested transition. The set is fixed at build time;
// new actions require a table change, never runtime configuration.
type Action string

// Ticket actions.
const (
	ActionSubmit               Action = "SUBMIT"
	ActionRequestClarification Action = "REQUEST_CLARIFICATION"
	ActionRespondClarification Action = "RESPOND_CLARIFICATION"
	ActionWithdraw             Action = "WITHDRAW"
	ActionReject               Action = "REJECT"
	ActionSendForEstimation    Action = "SEND_FOR_ESTIMATION"
	ActionSubmitEstimation     Action = "SUBMIT_ESTIMATION"
	ActionApprove              Action = "APPROVE"
	ActionEscalate             Action = "ESCALATE"
	ActionReturn               Action = "RETURN"
	ActionOpenWorkOrder        Action = "OPEN_WORK_ORDER"
	ActionArchive              Action = "ARCHIVE"
)

// Work order actions.
const (
	ActionAccept              Action = "ACCEPT"
	ActionResend              Action = "RESEND"
	ActionReturnForCorrection Action = "RETURN_FOR_CORRECTION"
	ActionCheckIn             Action = "CHECK_IN"
	ActionCheckOut            Action = "CHECK_OUT"
	ActionRequestFollowUp     Action = "REQUEST_FOLLOW_UP"
	ActionReschedule          Action = "RESCHEDULE"
	ActionRequestNewWorkOrder Action = "REQUEST_NEW_WORK_ORDER"
	ActionMarkUnsuccessful    Action = "MARK_UNSUCCESSFUL"
	ActionPrepareCostProposal Action = "PREPARE_COST_PROPOSAL"
	ActionApproveCostProposal Action = "APPROVE_COST_PROPOSAL"
	ActionRequestCostRevision Action = "REQUEST_COST_REVISION"
	ActionResubmitProposal    Action = "RESUBMIT_PROPOSAL"
	ActionCloseWithoutCost    Action = "CLOSE_WITHOUT_COST"
)

func (a Action) String() string {
	return string(a)
}
