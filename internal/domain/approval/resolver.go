// Package approval computes who must approve a cost estimation next. The
// role chain is a pure function of the amount; the concrete user is looked
// up through the user directory, deterministically, so identical inputs at
// the same point in a ticket's life always name the same next approver.
package approval

import (
	"context"
	"fmt"

	"storefix/internal/domain/user"
	"storefix/internal/domain/workflow"
)

// Fixed escalation thresholds in whole currency units.
const (
	ThresholdAreaManagerOnly = 1000
	ThresholdDirectors       = 3000
)

// ChainFor returns the ordered approver roles required for an amount.
// Amounts at or below ThresholdAreaManagerOnly stop at the area manager;
// above ThresholdDirectors the board of directors is appended.
func ChainFor(amount int64) []workflow.Role {
	if amount <= ThresholdAreaManagerOnly {
		return []workflow.Role{workflow.RoleAreaManager}
	}
	chain := []workflow.Role{
		workflow.RoleAreaManager,
		workflow.RoleSalesDirector,
		workflow.RoleMaintenanceDirector,
	}
	if amount > ThresholdDirectors {
		chain = append(chain, workflow.RoleBoardOfDirectors)
	}
	return chain
}

// NextRole returns the role after currentRole in the amount's chain, or
// empty when currentRole is the final required step. An empty currentRole
// asks for the start of the chain.
func NextRole(amount int64, currentRole workflow.Role) (workflow.Role, error) {
	chain := ChainFor(amount)
	if currentRole == "" {
		return chain[0], nil
	}
	for i, role := range chain {
		if role == currentRole {
			if i == len(chain)-1 {
				return "", nil
			}
			return chain[i+1], nil
		}
	}
	return "", fmt.Errorf("role %s is not part of the approval chain for amount %d", currentRole, amount)
}

// ReturnTarget is where an unconditional "return" from any chain position
// lands: always the area maintenance manager, independent of thresholds.
func ReturnTarget() workflow.Role {
	return workflow.RoleAreaMaintenanceManager
}

// ChainResolver resolves next approvers to concrete users.
type ChainResolver struct {
	users user.Repository
}

func NewChainResolver(users user.Repository) *ChainResolver {
	return &ChainResolver{users: users}
}

// NextApprover returns the user who must approve next after currentRole
// has approved, or nil when the chain is complete and the caller should
// finalize the approval instead of escalating.
func (r *ChainResolver) NextApprover(ctx context.Context, ticketID uint, amount int64, currentRole workflow.Role) (*user.User, error) {
	nextRole, err := NextRole(amount, currentRole)
	if err != nil {
		return nil, err
	}
	if nextRole == "" {
		return nil, nil
	}

	next, err := r.users.FindActiveByRole(ctx, nextRole)
	if err != nil {
		return nil, fmt.Errorf("no active %s to escalate ticket %d to: %w", nextRole, ticketID, err)
	}
	return next, nil
}

// FirstApprover resolves the start of the chain when an estimation enters
// approval.
func (r *ChainResolver) FirstApprover(ctx context.Context, ticketID uint, amount int64) (*user.User, error) {
	return r.NextApprover(ctx, ticketID, amount, "")
}
