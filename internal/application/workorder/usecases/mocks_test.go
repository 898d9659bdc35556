package usecases

import (
	"context"

	"storefix/internal/domain/audit"
	"storefix/internal/domain/qr"
	"storefix/internal/domain/ticket"
	"storefix/internal/domain/user"
	"storefix/internal/domain/workflow"
	"storefix/internal/domain/workorder"
	"storefix/internal/shared/logger"
)

type mockWorkOrderRepository struct {
	SaveFunc                  func(ctx context.Context, w *workorder.WorkOrder) error
	UpdateFunc                func(ctx context.Context, w *workorder.WorkOrder) error
	FindByIDFunc              func(ctx context.Context, id uint) (*workorder.WorkOrder, error)
	FindByTicketIDFunc        func(ctx context.Context, ticketID uint) ([]*workorder.WorkOrder, error)
	CountActiveByTicketIDFunc func(ctx context.Context, ticketID uint) (int64, error)
	ListFunc                  func(ctx context.Context, filter workorder.Filter) ([]*workorder.WorkOrder, int64, error)
}

func (m *mockWorkOrderRepository) Save(ctx context.Context, w *workorder.WorkOrder) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, w)
	}
	return nil
}

func (m *mockWorkOrderRepository) Update(ctx context.Context, w *workorder.WorkOrder) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, w)
	}
	return nil
}

func (m *mockWorkOrderRepository) FindByID(ctx context.Context, id uint) (*workorder.WorkOrder, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockWorkOrderRepository) FindByTicketID(ctx context.Context, ticketID uint) ([]*workorder.WorkOrder, error) {
	if m.FindByTicketIDFunc != nil {
		return m.FindByTicketIDFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockWorkOrderRepository) CountActiveByTicketID(ctx context.Context, ticketID uint) (int64, error) {
	if m.CountActiveByTicketIDFunc != nil {
		return m.CountActiveByTicketIDFunc(ctx, ticketID)
	}
	return 0, nil
}

func (m *mockWorkOrderRepository) List(ctx context.Context, filter workorder.Filter) ([]*workorder.WorkOrder, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

type mockTicketRepository struct {
	SaveFunc         func(ctx context.Context, t *ticket.Ticket) error
	UpdateFunc       func(ctx context.Context, t *ticket.Ticket) error
	FindByIDFunc     func(ctx context.Context, id uint) (*ticket.Ticket, error)
	FindByNumberFunc func(ctx context.Context, number string) (*ticket.Ticket, error)
	ListFunc         func(ctx context.Context, filter ticket.Filter) ([]*ticket.Ticket, int64, error)
}

func (m *mockTicketRepository) Save(ctx context.Context, t *ticket.Ticket) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) FindByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockTicketRepository) FindByNumber(ctx context.Context, number string) (*ticket.Ticket, error) {
	if m.FindByNumberFunc != nil {
		return m.FindByNumberFunc(ctx, number)
	}
	return nil, nil
}

func (m *mockTicketRepository) List(ctx context.Context, filter ticket.Filter) ([]*ticket.Ticket, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

type mockUserRepository struct {
	FindByIDFunc                   func(ctx context.Context, id uint) (*user.User, error)
	FindActiveByRoleFunc           func(ctx context.Context, role workflow.Role) (*user.User, error)
	FindActiveByRoleAndCompanyFunc func(ctx context.Context, role workflow.Role, companyID uint) (*user.User, error)
	SaveFunc                       func(ctx context.Context, u *user.User) error
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*user.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepository) FindActiveByRole(ctx context.Context, role workflow.Role) (*user.User, error) {
	if m.FindActiveByRoleFunc != nil {
		return m.FindActiveByRoleFunc(ctx, role)
	}
	return nil, nil
}

func (m *mockUserRepository) FindActiveByRoleAndCompany(ctx context.Context, role workflow.Role, companyID uint) (*user.User, error) {
	if m.FindActiveByRoleAndCompanyFunc != nil {
		return m.FindActiveByRoleAndCompanyFunc(ctx, role, companyID)
	}
	return nil, nil
}

func (m *mockUserRepository) Save(ctx context.Context, u *user.User) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, u)
	}
	return nil
}

type mockQRRepository struct {
	SaveFunc              func(ctx context.Context, r *qr.Record) error
	FindByTokenFunc       func(ctx context.Context, token string) (*qr.Record, error)
	MarkUsedFunc          func(ctx context.Context, r *qr.Record) error
	FindByWorkOrderIDFunc func(ctx context.Context, workOrderID uint) ([]*qr.Record, error)

	saved []*qr.Record
}

func (m *mockQRRepository) Save(ctx context.Context, r *qr.Record) error {
	m.saved = append(m.saved, r)
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, r)
	}
	return nil
}

func (m *mockQRRepository) FindByToken(ctx context.Context, token string) (*qr.Record, error) {
	if m.FindByTokenFunc != nil {
		return m.FindByTokenFunc(ctx, token)
	}
	for _, r := range m.saved {
		if r.Token() == token {
			return r, nil
		}
	}
	return nil, &qr.ValidationError{Reason: qr.ReasonNotFound}
}

func (m *mockQRRepository) MarkUsed(ctx context.Context, r *qr.Record) error {
	if m.MarkUsedFunc != nil {
		return m.MarkUsedFunc(ctx, r)
	}
	return nil
}

func (m *mockQRRepository) FindByWorkOrderID(ctx context.Context, workOrderID uint) ([]*qr.Record, error) {
	if m.FindByWorkOrderIDFunc != nil {
		return m.FindByWorkOrderIDFunc(ctx, workOrderID)
	}
	var out []*qr.Record
	for _, r := range m.saved {
		if r.WorkOrderID() == workOrderID {
			out = append(out, r)
		}
	}
	return out, nil
}

type mockAuditRepository struct {
	AppendFunc       func(ctx context.Context, e *audit.Entry) error
	FindByEntityFunc func(ctx context.Context, kind workflow.EntityKind, entityID uint) ([]*audit.Entry, error)

	appended []*audit.Entry
}

func (m *mockAuditRepository) Append(ctx context.Context, e *audit.Entry) error {
	m.appended = append(m.appended, e)
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, e)
	}
	return nil
}

func (m *mockAuditRepository) FindByEntity(ctx context.Context, kind workflow.EntityKind, entityID uint) ([]*audit.Entry, error) {
	if m.FindByEntityFunc != nil {
		return m.FindByEntityFunc(ctx, kind, entityID)
	}
	return m.appended, nil
}

// mockTxManager runs the function directly; transactional atomicity is
// covered by the repository integration tests.
type mockTxManager struct{}

func (m *mockTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockLogger struct{}

func (m *mockLogger) Debug(msg string, args ...any)                   {}
func (m *mockLogger) Info(msg string, args ...any)                    {}
func (m *mockLogger) Warn(msg string, args ...any)                    {}
func (m *mockLogger) Error(msg string, args ...any)                   {}
func (m *mockLogger) Fatal(msg string, args ...any)                   {}
func (m *mockLogger) With(args ...any) logger.Interface               { return m }
func (m *mockLogger) Named(name string) logger.Interface              { return m }
func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Infow(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Fatalw(msg string, keysAndValues ...interface{}) {}
