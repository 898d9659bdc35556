package workflow

import "fmt"

// EntityKind selects which transition table governs a request.
type EntityKind string

const (
	KindTicket    EntityKind = "ticket"
	KindWorkOrder EntityKind = "work_order"
)

// Status is the engine-side view of an entity status. The typed status
// value objects of the ticket and work order aggregates convert to it via
// their String() form.
type Status string

func (s Status) String() string {
	return string(s)
}

// Validator is a per-rule extension point for business checks that cannot
// be expressed as role or ownership requirements. It receives the full
// transition request including its free-form context.
type Validator func(req Request) error

// Rule is one declarative transition: (From, Action) must be unique within
// a table. NewOwnerRole is the role the resulting owner must hold; it is
// left empty when the rule intentionally delegates owner selection to the
// caller (urgency routing, clarification round routing, escalation) or when
// ClearOwner applies. Rules are immutable after table construction.
type Rule struct {
	From         Status
	Action       Action
	To           Status
	Roles        []Role
	RequireOwner bool
	NewOwnerRole Role
	ClearOwner   bool
	Validate     Validator
}

func (r Rule) allows(role Role) bool {
	for _, allowed := range r.Roles {
		if allowed == role {
			return true
		}
	}
	return false
}

type ruleKey struct {
	from   Status
	action Action
}

// Table holds one entity kind's rules together with the compiled
// (from, action) lookup index.
type Table struct {
	kind  EntityKind
	rules []Rule
	index map[ruleKey]Rule
}

// NewTable compiles an ordered rule list. Duplicate (from, action) pairs
// are a programming error and panic at init.
func NewTable(kind EntityKind, rules []Rule) *Table {
	index := make(map[ruleKey]Rule, len(rules))
	for _, r := range rules {
		key := ruleKey{from: r.From, action: r.Action}
		if _, exists := index[key]; exists {
			panic(fmt.Sprintf("workflow: duplicate rule (%s, %s) in %s table", r.From, r.Action, kind))
		}
		index[key] = r
	}
	return &Table{kind: kind, rules: rules, index: index}
}

// Lookup returns the unique rule for (from, action).
func (t *Table) Lookup(from Status, action Action) (Rule, bool) {
	r, ok := t.index[ruleKey{from: from, action: action}]
	return r, ok
}

// Rules returns the full rule set in declaration order, so the table stays
// enumerable as a truth table in tests.
func (t *Table) Rules() []Rule {
	out := make([]Rule, len(t.rules))
	copy(out, t.rules)
	return out
}

func (t *Table) Kind() EntityKind {
	return t.kind
}
