package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"storefix/internal/domain/workorder"
	vo "storefix/internal/domain/workorder/valueobjects"
	"storefix/internal/infrastructure/persistence/mappers"
	"storefix/internal/infrastructure/persistence/models"
	db "storefix/internal/shared/db"
)

var allowedWorkOrderOrderByFields = map[string]bool{
	"id":         true,
	"ticket_id":  true,
	"vendor_id":  true,
	"status":     true,
	"owner_id":   true,
	"created_at": true,
	"updated_at": true,
}

type WorkOrderRepository struct {
	db     *gorm.DB
	mapper mappers.WorkOrderMapper
}

func NewWorkOrderRepository(db *gorm.DB) *WorkOrderRepository {
	return &WorkOrderRepository{
		db:     db,
		mapper: mappers.NewWorkOrderMapper(),
	}
}

func (r *WorkOrderRepository) Save(ctx context.Context, w *workorder.WorkOrder) error {
	model := r.mapper.ToModel(w)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save work order: %w", err)
	}

	if w.ID() == 0 {
		if err := w.SetID(model.ID); err != nil {
			return err
		}
	}

	return nil
}

// Update writes the work order guarded by its version column, matching
// the ticket repository's optimistic concurrency scheme.
func (r *WorkOrderRepository) Update(ctx context.Context, w *workorder.WorkOrder) error {
	model := r.mapper.ToModel(w)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.WorkOrderModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version-1).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update work order: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return workorder.ErrStaleWorkOrder
	}

	return nil
}

func (r *WorkOrderRepository) FindByID(ctx context.Context, id uint) (*workorder.WorkOrder, error) {
	var model models.WorkOrderModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("work order not found")
		}
		return nil, fmt.Errorf("failed to find work order: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *WorkOrderRepository) FindByTicketID(ctx context.Context, ticketID uint) ([]*workorder.WorkOrder, error) {
	var workOrderModels []models.WorkOrderModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC").
		Find(&workOrderModels).Error; err != nil {
		return nil, fmt.Errorf("failed to find work orders: %w", err)
	}

	workOrders := make([]*workorder.WorkOrder, len(workOrderModels))
	for i := range workOrderModels {
		w, err := r.mapper.ToDomain(&workOrderModels[i])
		if err != nil {
			return nil, err
		}
		workOrders[i] = w
	}

	return workOrders, nil
}

func (r *WorkOrderRepository) CountActiveByTicketID(ctx context.Context, ticketID uint) (int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var count int64
	if err := tx.
		Model(&models.WorkOrderModel{}).
		Where("ticket_id = ? AND status NOT IN ?", ticketID, terminalWorkOrderStatuses()).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count active work orders: %w", err)
	}

	return count, nil
}

func (r *WorkOrderRepository) List(
	ctx context.Context,
	filter workorder.Filter,
) ([]*workorder.WorkOrder, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.WorkOrderModel{})

	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.TicketID != nil {
		query = query.Where("ticket_id = ?", *filter.TicketID)
	}
	if filter.VendorID != nil {
		query = query.Where("vendor_id = ?", *filter.VendorID)
	}
	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count work orders: %w", err)
	}

	if allowedWorkOrderOrderByFields[filter.SortBy] {
		query = query.Order(filter.OrderClause())
	} else {
		query = query.Order("created_at DESC")
	}

	query = query.Limit(filter.Limit()).Offset(filter.Offset())

	var workOrderModels []models.WorkOrderModel
	if err := query.Find(&workOrderModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list work orders: %w", err)
	}

	workOrders := make([]*workorder.WorkOrder, len(workOrderModels))
	for i := range workOrderModels {
		w, err := r.mapper.ToDomain(&workOrderModels[i])
		if err != nil {
			return nil, 0, err
		}
		workOrders[i] = w
	}

	return workOrders, total, nil
}

func terminalWorkOrderStatuses() []string {
	return []string{
		vo.StatusNewWorkOrderNeeded.String(),
		vo.StatusRepairUnsuccessful.String(),
		vo.StatusCostProposalApproved.String(),
		vo.StatusClosedWithoutCost.String(),
		vo.StatusRejected.String(),
	}
}
