package mappers

import (
	"fmt"

	"storefix/internal/domain/workflow"
	"storefix/internal/domain/workorder"
	vo "storefix/internal/domain/workorder/valueobjects"
	"storefix/internal/infrastructure/persistence/models"
)

// WorkOrderMapper handles the conversion between WorkOrder domain entities and persistence models.
type WorkOrderMapper interface {
	ToModel(w *workorder.WorkOrder) *models.WorkOrderModel
	ToDomain(model *models.WorkOrderModel) (*workorder.WorkOrder, error)
}

type WorkOrderMapperImpl struct{}

func NewWorkOrderMapper() WorkOrderMapper {
	return &WorkOrderMapperImpl{}
}

func (m *WorkOrderMapperImpl) ToModel(w *workorder.WorkOrder) *models.WorkOrderModel {
	return &models.WorkOrderModel{
		ID:                      w.ID(),
		TicketID:                w.TicketID(),
		VendorID:                w.VendorID(),
		TechnicianID:            w.TechnicianID(),
		Status:                  w.Status().String(),
		OwnerType:               string(w.OwnerType()),
		OwnerID:                 w.OwnerID(),
		DeclaredTechnicianCount: w.DeclaredTechnicianCount(),
		CheckInAt:               timePtrToMillisPtr(w.CheckInAt()),
		CheckOutAt:              timePtrToMillisPtr(w.CheckOutAt()),
		InvoiceBatchID:          w.InvoiceBatchID(),
		Version:                 w.Version(),
		CreatedAt:               w.CreatedAt().UnixMilli(),
		UpdatedAt:               w.UpdatedAt().UnixMilli(),
	}
}

func (m *WorkOrderMapperImpl) ToDomain(model *models.WorkOrderModel) (*workorder.WorkOrder, error) {
	status, err := vo.NewWorkOrderStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("invalid work order status (id=%d): %w", model.ID, err)
	}

	return workorder.ReconstructWorkOrder(
		model.ID,
		model.TicketID,
		model.VendorID,
		model.TechnicianID,
		status,
		workflow.OwnerType(model.OwnerType),
		model.OwnerID,
		model.DeclaredTechnicianCount,
		millisPtrToTimePtr(model.CheckInAt),
		millisPtrToTimePtr(model.CheckOutAt),
		model.InvoiceBatchID,
		model.Version,
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
	)
}
