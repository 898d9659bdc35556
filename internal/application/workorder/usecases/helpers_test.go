package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"storefix/internal/domain/user"
	"storefix/internal/domain/workflow"
	"storefix/internal/domain/workorder"
	wvo "storefix/internal/domain/workorder/valueobjects"
	apperrors "storefix/internal/shared/errors"
)

const (
	testVendorID     = uint(7)
	testAdminID      = uint(70)
	testTechnicianID = uint(71)
	testBackOfficeID = uint(72)
	testStoreUserID  = uint(2)
	testAMMID        = uint(11)
)

var errRepoNotFound = errors.New("record not found")

func reconstructTestWorkOrder(t *testing.T, id uint, status wvo.WorkOrderStatus, ownerType workflow.OwnerType, ownerID, technicianID *uint) *workorder.WorkOrder {
	t.Helper()
	w, err := workorder.ReconstructWorkOrder(
		id,
		1,
		testVendorID,
		technicianID,
		status,
		ownerType,
		ownerID,
		0,
		nil,
		nil,
		nil,
		1,
		time.Now().Add(-time.Hour),
		time.Now().Add(-time.Hour),
	)
	require.NoError(t, err)
	return w
}

func testUser(t *testing.T, id uint, role workflow.Role, companyID uint) *user.User {
	t.Helper()
	u, err := user.ReconstructUser(id, "Test User", role, companyID, true)
	require.NoError(t, err)
	return u
}

// vendorUserRepo answers both lookup shapes the work order flows use: by id
// for technicians and by role within the vendor company or internal staff.
func vendorUserRepo(t *testing.T) *mockUserRepository {
	t.Helper()
	byID := map[uint]*user.User{
		testAdminID:      testUser(t, testAdminID, workflow.RoleVendorServiceAdmin, testVendorID),
		testTechnicianID: testUser(t, testTechnicianID, workflow.RoleVendorTechnician, testVendorID),
		testBackOfficeID: testUser(t, testBackOfficeID, workflow.RoleVendorBackOffice, testVendorID),
		testStoreUserID:  testUser(t, testStoreUserID, workflow.RoleStore, 1),
		testAMMID:        testUser(t, testAMMID, workflow.RoleAreaMaintenanceManager, 1),
	}
	byRole := map[workflow.Role]uint{
		workflow.RoleVendorServiceAdmin:     testAdminID,
		workflow.RoleVendorTechnician:       testTechnicianID,
		workflow.RoleVendorBackOffice:       testBackOfficeID,
		workflow.RoleStore:                  testStoreUserID,
		workflow.RoleAreaMaintenanceManager: testAMMID,
	}
	return &mockUserRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*user.User, error) {
			u, ok := byID[id]
			if !ok {
				return nil, errRepoNotFound
			}
			return u, nil
		},
		FindActiveByRoleFunc: func(ctx context.Context, role workflow.Role) (*user.User, error) {
			id, ok := byRole[role]
			if !ok {
				return nil, errRepoNotFound
			}
			return byID[id], nil
		},
		FindActiveByRoleAndCompanyFunc: func(ctx context.Context, role workflow.Role, companyID uint) (*user.User, error) {
			id, ok := byRole[role]
			if !ok || byID[id].CompanyID() != companyID {
				return nil, errRepoNotFound
			}
			return byID[id], nil
		},
	}
}

// sharedWorkOrderRepo serves the same aggregate instance on every lookup so
// a sequence of use case calls observes each other's in-memory mutations.
func sharedWorkOrderRepo(w *workorder.WorkOrder) *mockWorkOrderRepository {
	return &mockWorkOrderRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*workorder.WorkOrder, error) {
			return w, nil
		},
	}
}

func requireErrorType(t *testing.T, err error, want apperrors.ErrorType) {
	t.Helper()
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, want, appErr.Type)
}
