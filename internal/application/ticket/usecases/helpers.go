package usecases

import (
	"context"

	"storefix/internal/application/common/transition"
	"storefix/internal/domain/audit"
	"storefix/internal/domain/ticket"
	"storefix/internal/domain/user"
	"storefix/internal/domain/workflow"
)

// newOwnerFromDecision resolves the ticket's next owner for an allowed
// decision. A rule targeting the STORE role always means the ticket's own
// creator, never an arbitrary store user; other roles resolve through the
// directory. The fallback covers rules that delegate owner selection to the
// use case (submission routing, clarification response, escalation).
func newOwnerFromDecision(
	ctx context.Context,
	users user.Repository,
	t *ticket.Ticket,
	d workflow.Decision,
	fallback *uint,
) (*uint, error) {
	if d.NewOwnerRole == workflow.RoleStore {
		creator := t.CreatorID()
		return &creator, nil
	}
	return transition.ResolveOwner(ctx, users, d, 0, fallback)
}

func ticketAuditEntry(
	t *ticket.Ticket,
	action workflow.Action,
	from workflow.Status,
	actorID uint,
	actorRole workflow.Role,
	detail map[string]any,
) (*audit.Entry, error) {
	return audit.NewEntry(
		workflow.KindTicket,
		t.ID(),
		action,
		from,
		workflow.Status(t.Status()),
		actorID,
		actorRole,
		detail,
	)
}
