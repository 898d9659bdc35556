package workorder

import (
	"storefix/internal/application/workorder/usecases"
)

type CreateWorkOrderRequest struct {
	TicketID uint `json:"ticket_id" binding:"required"`
	VendorID uint `json:"vendor_id" binding:"required"`
}

type AcceptWorkOrderRequest struct {
	TechnicianID uint `json:"technician_id" binding:"required"`
}

type CommentRequest struct {
	Comment string `json:"comment"`
}

type FinishServiceRequest struct {
	Outcome string `json:"outcome" binding:"required"`
	Comment string `json:"comment"`
}

type DecideCostProposalRequest struct {
	Decision string `json:"decision" binding:"required"`
	Comment  string `json:"comment"`
}

type GenerateQRRequest struct {
	ScanType                string `json:"scan_type" binding:"required"`
	DeclaredTechnicianCount int    `json:"declared_technician_count"`
}

type ScanQRRequest struct {
	Token string `json:"token" binding:"required"`
}

type ListWorkOrdersQuery struct {
	Status    string `form:"status"`
	TicketID  *uint  `form:"ticket_id"`
	VendorID  *uint  `form:"vendor_id"`
	OwnerID   *uint  `form:"owner_id"`
	Page      int    `form:"page"`
	PageSize  int    `form:"page_size"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
}

func (q *ListWorkOrdersQuery) ToCommand() usecases.ListWorkOrdersCommand {
	return usecases.ListWorkOrdersCommand{
		Status:    q.Status,
		TicketID:  q.TicketID,
		VendorID:  q.VendorID,
		OwnerID:   q.OwnerID,
		Page:      q.Page,
		PageSize:  q.PageSize,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
	}
}
