package audit

import (
	"context"

	"storefix/internal/domain/workflow"
)

// Repository is the append-only audit log. Append runs inside the caller's
// transaction so an entry is never recorded without its transition.
type Repository interface {
	Append(ctx context.Context, entry *Entry) error
	FindByEntity(ctx context.Context, kind workflow.EntityKind, entityID uint) ([]*Entry, error)
}
