package ticket

import (
	"storefix/internal/application/ticket/usecases"
)

type CreateTicketRequest struct {
	StoreID     uint   `json:"store_id" binding:"required"`
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Urgent      bool   `json:"urgent"`
	AssetID     *uint  `json:"asset_id"`
}

func (r *CreateTicketRequest) ToCommand(creatorID uint) usecases.CreateTicketCommand {
	return usecases.CreateTicketCommand{
		StoreID:     r.StoreID,
		CreatorID:   creatorID,
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		Urgent:      r.Urgent,
		AssetID:     r.AssetID,
	}
}

type RespondClarificationRequest struct {
	UpdatedDescription string `json:"updated_description"`
}

type SubmitEstimationRequest struct {
	Amount int64 `json:"amount" binding:"required"`
}

type DecideEstimationRequest struct {
	Decision string `json:"decision" binding:"required"`
	Comment  string `json:"comment"`
}

type RejectTicketRequest struct {
	Comment string `json:"comment"`
}

type ListTicketsQuery struct {
	Status    string `form:"status"`
	StoreID   *uint  `form:"store_id"`
	OwnerID   *uint  `form:"owner_id"`
	Urgent    *bool  `form:"urgent"`
	Archived  *bool  `form:"archived"`
	Page      int    `form:"page"`
	PageSize  int    `form:"page_size"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
}

func (q *ListTicketsQuery) ToCommand() usecases.ListTicketsCommand {
	return usecases.ListTicketsCommand{
		Status:    q.Status,
		StoreID:   q.StoreID,
		OwnerID:   q.OwnerID,
		Urgent:    q.Urgent,
		Archived:  q.Archived,
		Page:      q.Page,
		PageSize:  q.PageSize,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
	}
}
