package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"storefix/internal/domain/ticket"
	vo "storefix/internal/domain/ticket/valueobjects"
	"storefix/internal/infrastructure/persistence/models"
	"storefix/internal/shared/db"
	"storefix/internal/shared/query"
)

func setupTestDB(t *testing.T) *gorm.DB {
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = gdb.AutoMigrate(
		&models.TicketModel{},
		&models.WorkOrderModel{},
		&models.QRScanTokenModel{},
	)
	require.NoError(t, err)

	return gdb
}

func createTestTicket(t *testing.T, storeID uint, title string, category vo.Category, urgent bool) *ticket.Ticket {
	tk, err := ticket.NewTicket(storeID, 1, title, "Test description", category, urgent, nil)
	require.NoError(t, err)
	return tk
}

func TestTicketRepository_Save(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewTicketRepository(gdb)
	ctx := context.Background()

	t.Run("save new ticket successfully", func(t *testing.T) {
		tk := createTestTicket(t, 1, "Broken freezer", vo.CategoryEquipment, false)
		err := tk.SetNumber("MT-20260101-0001")
		require.NoError(t, err)

		err = repo.Save(ctx, tk)
		assert.NoError(t, err)
		assert.NotZero(t, tk.ID())
	})

	t.Run("saved ticket round-trips", func(t *testing.T) {
		tk := createTestTicket(t, 2, "Leaking pipe", vo.CategoryPlumbing, true)
		err := tk.SetNumber("MT-20260101-0002")
		require.NoError(t, err)

		err = repo.Save(ctx, tk)
		assert.NoError(t, err)

		found, err := repo.FindByID(ctx, tk.ID())
		assert.NoError(t, err)
		assert.Equal(t, tk.Number(), found.Number())
		assert.Equal(t, tk.Title(), found.Title())
		assert.Equal(t, tk.Category(), found.Category())
		assert.True(t, found.Urgent())
		assert.Equal(t, vo.StatusDraft, found.Status())
		require.NotNil(t, found.OwnerID())
		assert.Equal(t, tk.CreatorID(), *found.OwnerID())
	})

	t.Run("duplicate number should fail", func(t *testing.T) {
		tk1 := createTestTicket(t, 3, "Ticket 1", vo.CategoryOther, false)
		err := tk1.SetNumber("MT-20260101-DUP")
		require.NoError(t, err)
		err = repo.Save(ctx, tk1)
		require.NoError(t, err)

		tk2 := createTestTicket(t, 3, "Ticket 2", vo.CategoryOther, false)
		err = tk2.SetNumber("MT-20260101-DUP")
		require.NoError(t, err)
		err = repo.Save(ctx, tk2)
		assert.Error(t, err)
	})
}

func TestTicketRepository_Update(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewTicketRepository(gdb)
	ctx := context.Background()

	t.Run("update persists transition and bumped version", func(t *testing.T) {
		tk := createTestTicket(t, 1, "Original Title", vo.CategoryElectrical, false)
		err := tk.SetNumber("MT-UPDATE-001")
		require.NoError(t, err)
		err = repo.Save(ctx, tk)
		require.NoError(t, err)

		reviewerID := uint(5)
		err = tk.ApplyTransition(vo.StatusSubmitted, &reviewerID)
		require.NoError(t, err)

		err = repo.Update(ctx, tk)
		assert.NoError(t, err)

		found, err := repo.FindByID(ctx, tk.ID())
		assert.NoError(t, err)
		assert.Equal(t, vo.StatusSubmitted, found.Status())
		require.NotNil(t, found.OwnerID())
		assert.Equal(t, reviewerID, *found.OwnerID())
		assert.Equal(t, 2, found.Version())
	})

	t.Run("update persists cleared owner", func(t *testing.T) {
		tk := createTestTicket(t, 1, "Clear Owner", vo.CategoryBuilding, false)
		err := tk.SetNumber("MT-UPDATE-002")
		require.NoError(t, err)
		err = repo.Save(ctx, tk)
		require.NoError(t, err)

		err = tk.ApplyTransition(vo.StatusWithdrawn, nil)
		require.NoError(t, err)

		err = repo.Update(ctx, tk)
		assert.NoError(t, err)

		found, err := repo.FindByID(ctx, tk.ID())
		assert.NoError(t, err)
		assert.Equal(t, vo.StatusWithdrawn, found.Status())
		assert.Nil(t, found.OwnerID())
	})

	t.Run("optimistic locking - concurrent update conflict", func(t *testing.T) {
		tk := createTestTicket(t, 1, "Locking Test", vo.CategoryHVAC, false)
		err := tk.SetNumber("MT-LOCK-001")
		require.NoError(t, err)
		err = repo.Save(ctx, tk)
		require.NoError(t, err)

		tk1, err := repo.FindByID(ctx, tk.ID())
		require.NoError(t, err)
		tk2, err := repo.FindByID(ctx, tk.ID())
		require.NoError(t, err)

		ownerA := uint(10)
		err = tk1.ApplyTransition(vo.StatusSubmitted, &ownerA)
		require.NoError(t, err)
		err = repo.Update(ctx, tk1)
		assert.NoError(t, err)

		ownerB := uint(20)
		err = tk2.ApplyTransition(vo.StatusWithdrawn, &ownerB)
		require.NoError(t, err)
		err = repo.Update(ctx, tk2)
		assert.ErrorIs(t, err, ticket.ErrStaleTicket)

		// The loser left no trace.
		found, err := repo.FindByID(ctx, tk.ID())
		assert.NoError(t, err)
		assert.Equal(t, vo.StatusSubmitted, found.Status())
	})

	t.Run("update non-existent ticket should fail", func(t *testing.T) {
		tk := createTestTicket(t, 1, "Non-existent", vo.CategoryOther, false)
		err := tk.SetNumber("MT-NONEXIST")
		require.NoError(t, err)
		err = tk.SetID(99999)
		require.NoError(t, err)

		ownerID := uint(5)
		err = tk.ApplyTransition(vo.StatusSubmitted, &ownerID)
		require.NoError(t, err)

		err = repo.Update(ctx, tk)
		assert.ErrorIs(t, err, ticket.ErrStaleTicket)
	})
}

func TestTicketRepository_FindByID(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewTicketRepository(gdb)
	ctx := context.Background()

	t.Run("find existing ticket", func(t *testing.T) {
		tk := createTestTicket(t, 1, "Find by ID", vo.CategoryElectrical, false)
		err := tk.SetNumber("MT-FIND-001")
		require.NoError(t, err)
		err = repo.Save(ctx, tk)
		require.NoError(t, err)

		found, err := repo.FindByID(ctx, tk.ID())
		assert.NoError(t, err)
		assert.Equal(t, tk.ID(), found.ID())
		assert.Equal(t, tk.Number(), found.Number())
		assert.Equal(t, tk.Title(), found.Title())
	})

	t.Run("find non-existent ticket", func(t *testing.T) {
		found, err := repo.FindByID(ctx, 99999)
		assert.Error(t, err)
		assert.Nil(t, found)
		assert.Contains(t, err.Error(), "not found")
	})
}

func TestTicketRepository_FindByNumber(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewTicketRepository(gdb)
	ctx := context.Background()

	t.Run("find by existing number", func(t *testing.T) {
		tk := createTestTicket(t, 1, "Find by Number", vo.CategoryPlumbing, false)
		err := tk.SetNumber("MT-NUM-001")
		require.NoError(t, err)
		err = repo.Save(ctx, tk)
		require.NoError(t, err)

		found, err := repo.FindByNumber(ctx, "MT-NUM-001")
		assert.NoError(t, err)
		assert.Equal(t, tk.ID(), found.ID())
		assert.Equal(t, "MT-NUM-001", found.Number())
	})

	t.Run("find by non-existent number", func(t *testing.T) {
		found, err := repo.FindByNumber(ctx, "MT-NONEXIST")
		assert.Error(t, err)
		assert.Nil(t, found)
	})
}

func TestTicketRepository_List(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewTicketRepository(gdb)
	ctx := context.Background()

	tk1 := createTestTicket(t, 1, "Ticket 1", vo.CategoryElectrical, true)
	require.NoError(t, tk1.SetNumber("MT-LIST-001"))
	require.NoError(t, repo.Save(ctx, tk1))

	tk2 := createTestTicket(t, 2, "Ticket 2", vo.CategoryPlumbing, false)
	require.NoError(t, tk2.SetNumber("MT-LIST-002"))
	require.NoError(t, repo.Save(ctx, tk2))

	tk3 := createTestTicket(t, 1, "Ticket 3", vo.CategoryElectrical, false)
	require.NoError(t, tk3.SetNumber("MT-LIST-003"))
	require.NoError(t, repo.Save(ctx, tk3))

	t.Run("list all tickets", func(t *testing.T) {
		filter := ticket.Filter{
			BaseFilter: query.NewBaseFilter(query.WithPage(1, 10)),
		}

		tickets, total, err := repo.List(ctx, filter)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, tickets, 3)
	})

	t.Run("filter by status", func(t *testing.T) {
		status := vo.StatusDraft
		filter := ticket.Filter{
			BaseFilter: query.NewBaseFilter(query.WithPage(1, 10)),
			Status:     &status,
		}

		tickets, total, err := repo.List(ctx, filter)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, tickets, 3)
	})

	t.Run("filter by store ID", func(t *testing.T) {
		storeID := uint(1)
		filter := ticket.Filter{
			BaseFilter: query.NewBaseFilter(query.WithPage(1, 10)),
			StoreID:    &storeID,
		}

		tickets, total, err := repo.List(ctx, filter)
		assert.NoError(t, err)
		assert.Equal(t, int64(2), total)
		assert.Len(t, tickets, 2)
	})

	t.Run("filter by urgent", func(t *testing.T) {
		urgent := true
		filter := ticket.Filter{
			BaseFilter: query.NewBaseFilter(query.WithPage(1, 10)),
			Urgent:     &urgent,
		}

		tickets, total, err := repo.List(ctx, filter)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, tickets, 1)
		assert.Equal(t, "MT-LIST-001", tickets[0].Number())
	})

	t.Run("filter by owner ID", func(t *testing.T) {
		ownerID := tk1.CreatorID()
		filter := ticket.Filter{
			BaseFilter: query.NewBaseFilter(query.WithPage(1, 10)),
			OwnerID:    &ownerID,
		}

		tickets, total, err := repo.List(ctx, filter)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, tickets, 3)
	})

	t.Run("pagination", func(t *testing.T) {
		filter := ticket.Filter{
			BaseFilter: query.NewBaseFilter(query.WithPage(1, 2)),
		}

		tickets, total, err := repo.List(ctx, filter)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, tickets, 2)

		filter.BaseFilter.PageFilter.Page = 2
		tickets, total, err = repo.List(ctx, filter)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, tickets, 1)
	})

	t.Run("sort by number asc", func(t *testing.T) {
		filter := ticket.Filter{
			BaseFilter: query.NewBaseFilter(
				query.WithPage(1, 10),
				query.WithSort("number", "asc"),
			),
		}

		tickets, _, err := repo.List(ctx, filter)
		assert.NoError(t, err)
		require.Len(t, tickets, 3)
		assert.Equal(t, "MT-LIST-001", tickets[0].Number())
		assert.Equal(t, "MT-LIST-003", tickets[2].Number())
	})

	t.Run("unknown sort field falls back to default order", func(t *testing.T) {
		filter := ticket.Filter{
			BaseFilter: query.NewBaseFilter(
				query.WithPage(1, 10),
				query.WithSort("number; DROP TABLE tickets", "asc"),
			),
		}

		tickets, total, err := repo.List(ctx, filter)
		assert.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, tickets, 3)
	})
}

func TestTicketRepository_Transactions(t *testing.T) {
	gdb := setupTestDB(t)
	repo := NewTicketRepository(gdb)
	tm := db.NewTransactionManager(gdb)
	ctx := context.Background()

	t.Run("rollback discards saved ticket", func(t *testing.T) {
		tk := createTestTicket(t, 1, "Rolled Back", vo.CategoryOther, false)
		require.NoError(t, tk.SetNumber("MT-TX-001"))

		err := tm.RunInTransaction(ctx, func(txCtx context.Context) error {
			if err := repo.Save(txCtx, tk); err != nil {
				return err
			}
			return fmt.Errorf("trigger rollback")
		})
		assert.Error(t, err)

		found, err := repo.FindByNumber(ctx, "MT-TX-001")
		assert.Error(t, err)
		assert.Nil(t, found)
	})

	t.Run("commit keeps saved ticket", func(t *testing.T) {
		tk := createTestTicket(t, 1, "Committed", vo.CategoryOther, false)
		require.NoError(t, tk.SetNumber("MT-TX-002"))

		err := tm.RunInTransaction(ctx, func(txCtx context.Context) error {
			return repo.Save(txCtx, tk)
		})
		assert.NoError(t, err)

		found, err := repo.FindByNumber(ctx, "MT-TX-002")
		assert.NoError(t, err)
		assert.Equal(t, tk.ID(), found.ID())
	})
}
