package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"storefix/internal/domain/ticket"
	apperrors "storefix/internal/shared/errors"
	vo "storefix/internal/domain/ticket/valueobjects"
	"storefix/internal/domain/user"
	"storefix/internal/domain/workflow"
)

const (
	testStoreUserID = uint(2)
	testAMID        = uint(10)
	testAMMID       = uint(11)
	testSDID        = uint(12)
	testMDID        = uint(13)
	testBODID       = uint(14)
)

func reconstructTestTicket(t *testing.T, id uint, status vo.TicketStatus, ownerID *uint, urgent bool) *ticket.Ticket {
	t.Helper()
	tk, err := ticket.ReconstructTicket(
		id,
		"MT-20260101-0001",
		1,
		testStoreUserID,
		"Broken freezer",
		"The walk-in freezer stopped cooling.",
		"The walk-in freezer stopped cooling.",
		vo.CategoryEquipment,
		urgent,
		status,
		ownerID,
		nil,
		nil,
		false,
		1,
		time.Now().Add(-time.Hour),
		time.Now().Add(-time.Hour),
	)
	require.NoError(t, err)
	return tk
}

func testUser(t *testing.T, id uint, role workflow.Role) *user.User {
	t.Helper()
	u, err := user.ReconstructUser(id, "Test User", role, 1, true)
	require.NoError(t, err)
	return u
}

// directoryUserRepo resolves roles from a fixed map, mimicking the
// deterministic lowest-id lookup of the real repository.
func directoryUserRepo(t *testing.T) *mockUserRepository {
	t.Helper()
	directory := map[workflow.Role]uint{
		workflow.RoleAreaManager:            testAMID,
		workflow.RoleAreaMaintenanceManager: testAMMID,
		workflow.RoleSalesDirector:          testSDID,
		workflow.RoleMaintenanceDirector:    testMDID,
		workflow.RoleBoardOfDirectors:       testBODID,
	}
	return &mockUserRepository{
		FindActiveByRoleFunc: func(ctx context.Context, role workflow.Role) (*user.User, error) {
			id, ok := directory[role]
			if !ok {
				return nil, errNoSuchRole
			}
			return testUser(t, id, role), nil
		},
	}
}

var (
	errNoSuchRole   = errors.New("no active user for role")
	errRepoNotFound = errors.New("record not found")
)

func requireErrorType(t *testing.T, err error, want apperrors.ErrorType) {
	t.Helper()
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, want, appErr.Type)
}

// sharedTicketRepo serves the same aggregate instance on every lookup so a
// sequence of use case calls observes each other's in-memory mutations.
func sharedTicketRepo(tk *ticket.Ticket) *mockTicketRepository {
	return &mockTicketRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return tk, nil
		},
	}
}
