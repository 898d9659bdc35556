// Package transition carries the plumbing every transition use case shares:
// mapping engine denials onto the application error taxonomy and resolving
// rule-designated owner roles to concrete users.
package transition

import (
	"context"

	"storefix/internal/domain/user"
	"storefix/internal/domain/workflow"
	"storefix/internal/shared/errors"
)

// DenialError converts a refused engine decision into an AppError. Invalid
// transitions surface as conflicts because the entity has usually moved on
// since the caller last read it; role and ownership refusals are forbidden;
// validator refusals are validation errors.
func DenialError(d workflow.Decision) error {
	msg := "transition denied"
	if d.Err != nil {
		msg = d.Err.Error()
	}

	switch d.Code {
	case workflow.DenyInvalidTransition:
		return errors.NewConflictError(msg)
	case workflow.DenyRoleNotAllowed, workflow.DenyNotOwner:
		return errors.NewForbiddenError(msg)
	case workflow.DenyValidationFailed:
		return errors.NewValidationError(msg)
	default:
		return errors.NewInternalError(msg)
	}
}

// ResolveOwner turns an allowed decision into the concrete new owner id.
// ClearOwner yields nil. A rule-designated internal role resolves through
// the user directory; vendor roles resolve within the given company. An
// empty NewOwnerRole means the rule delegated owner selection to the
// caller, which must then pass the owner through fallback.
func ResolveOwner(
	ctx context.Context,
	users user.Repository,
	d workflow.Decision,
	vendorCompanyID uint,
	fallback *uint,
) (*uint, error) {
	if d.ClearOwner {
		return nil, nil
	}
	if d.NewOwnerRole == "" {
		return fallback, nil
	}

	var (
		next *user.User
		err  error
	)
	if d.NewOwnerRole.IsVendor() {
		next, err = users.FindActiveByRoleAndCompany(ctx, d.NewOwnerRole, vendorCompanyID)
	} else {
		next, err = users.FindActiveByRole(ctx, d.NewOwnerRole)
	}
	if err != nil {
		return nil, errors.NewInternalError("no active " + d.NewOwnerRole.String() + " to assign as owner")
	}

	id := next.ID()
	return &id, nil
}
