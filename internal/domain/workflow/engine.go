// Package workflow implements the state transition engine for tickets and
// work orders: a pure decision function over declarative rule tables. The
// engine never touches persistent state; callers apply the resulting
// status/owner and write the audit entry themselves.
package workflow

import "fmt"

// DenyCode classifies why a transition request was refused. All denials are
// caller-recoverable; the engine reserves Go errors for programming faults
// such as an unknown entity kind.
type DenyCode string

const (
	DenyInvalidTransition DenyCode = "INVALID_TRANSITION"
	DenyRoleNotAllowed    DenyCode = "ROLE_NOT_ALLOWED"
	DenyNotOwner          DenyCode = "NOT_OWNER"
	DenyValidationFailed  DenyCode = "VALIDATION_FAILED"
)

// Request carries everything the engine needs to decide one transition.
// Context is free-form input for rule validators (e.g. the urgent flag).
type Request struct {
	Kind      EntityKind
	Status    Status
	OwnerID   *uint
	Action    Action
	ActorID   uint
	ActorRole string
	Context   map[string]any
}

// Decision is the engine's verdict. When Allowed, NewStatus holds the rule's
// target; NewOwnerRole is empty when the rule delegates owner selection to
// the caller; ClearOwner signals the owner must become nil (terminal and
// system states). NewOwnerType is only meaningful for work orders.
type Decision struct {
	Allowed      bool
	NewStatus    Status
	NewOwnerRole Role
	NewOwnerType OwnerType
	ClearOwner   bool
	Code         DenyCode
	Err          error
}

func deny(code DenyCode, err error) Decision {
	return Decision{Allowed: false, Code: code, Err: err}
}

// Engine evaluates transition requests against the fixed per-kind tables.
// It is stateless and safe for concurrent use.
type Engine struct {
	tables map[EntityKind]*Table
}

// NewEngine builds the engine over the built-in ticket and work order
// tables.
func NewEngine() *Engine {
	return &Engine{
		tables: map[EntityKind]*Table{
			KindTicket:    TicketTable(),
			KindWorkOrder: WorkOrderTable(),
		},
	}
}

// Table exposes the rule table for an entity kind, primarily for tests that
// enumerate the rule set.
func (e *Engine) Table(kind EntityKind) (*Table, bool) {
	t, ok := e.tables[kind]
	return t, ok
}

// Evaluate decides a single transition request. The returned error is
// non-nil only for an unknown entity kind; every business refusal comes
// back inside the Decision with a DenyCode.
func (e *Engine) Evaluate(req Request) (Decision, error) {
	table, ok := e.tables[req.Kind]
	if !ok {
		return Decision{}, fmt.Errorf("workflow: unknown entity kind %q", req.Kind)
	}

	rule, ok := table.Lookup(req.Status, req.Action)
	if !ok {
		return deny(DenyInvalidTransition,
			fmt.Errorf("no transition %s from status %s", req.Action, req.Status)), nil
	}

	role := NormalizeRole(req.ActorRole)
	if !rule.allows(role) {
		return deny(DenyRoleNotAllowed,
			fmt.Errorf("role %s may not perform %s from %s", role, req.Action, req.Status)), nil
	}

	if rule.RequireOwner {
		// A nil owner means the entity sits in a system or archived state
		// with no active actor; ownership-required actions always refuse.
		if req.OwnerID == nil {
			return deny(DenyNotOwner,
				fmt.Errorf("%s has no current owner", req.Kind)), nil
		}
		if *req.OwnerID != req.ActorID {
			return deny(DenyNotOwner,
				fmt.Errorf("actor %d is not the current owner", req.ActorID)), nil
		}
	}

	if rule.Validate != nil {
		if err := rule.Validate(req); err != nil {
			return deny(DenyValidationFailed, err), nil
		}
	}

	d := Decision{
		Allowed:      true,
		NewStatus:    rule.To,
		NewOwnerRole: rule.NewOwnerRole,
		ClearOwner:   rule.ClearOwner,
	}
	if req.Kind == KindWorkOrder && rule.NewOwnerRole != "" {
		d.NewOwnerType = OwnerTypeFor(rule.NewOwnerRole)
	}
	return d, nil
}
