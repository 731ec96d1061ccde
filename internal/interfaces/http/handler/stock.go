package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	inventoryapp "github.com/stokku/backend/internal/application/inventory"
)

// StockHandler handles stock mutation API endpoints
type StockHandler struct {
	BaseHandler
	mutations *inventoryapp.StockMutationService
}

// NewStockHandler creates a new StockHandler
func NewStockHandler(mutations *inventoryapp.StockMutationService) *StockHandler {
	return &StockHandler{mutations: mutations}
}

// InboundRequest is the request body for a MASUK mutation. Exactly one of
// batch_id (existing lot) or item_id (new lot) must be set.
type InboundRequest struct {
	BatchID    *string `json:"batch_id" binding:"omitempty,uuid"`
	ItemID     *string `json:"item_id" binding:"omitempty,uuid"`
	ExpiryDate *string `json:"expiry_date" binding:"omitempty,datetime=2006-01-02"`
	Quantity   int64   `json:"quantity" binding:"required,gt=0"`
	Supplier   string  `json:"supplier" binding:"max=200"`
	Notes      string  `json:"notes"`
}

// OutboundRequest is the request body for a KELUAR mutation
type OutboundRequest struct {
	BatchID  string `json:"batch_id" binding:"required,uuid"`
	Quantity int64  `json:"quantity" binding:"required,gt=0"`
	Customer string `json:"customer" binding:"max=200"`
	Notes    string `json:"notes"`
}

// OpnameRequest is the request body for a physical count reconciliation
type OpnameRequest struct {
	BatchID       string `json:"batch_id" binding:"required,uuid"`
	PhysicalCount *int64 `json:"physical_count" binding:"required,gte=0"`
	Notes         string `json:"notes"`
}

// Inbound records goods received into a batch
func (h *StockHandler) Inbound(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user")
		return
	}

	var req InboundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	appReq := inventoryapp.InboundRequest{
		TenantID: tenantID,
		ActorID:  actorID,
		Quantity: req.Quantity,
		Supplier: req.Supplier,
		Notes:    req.Notes,
	}
	if req.BatchID != nil {
		id, err := uuid.Parse(*req.BatchID)
		if err != nil {
			h.BadRequest(c, "Invalid batch_id")
			return
		}
		appReq.BatchID = &id
	}
	if req.ItemID != nil {
		id, err := uuid.Parse(*req.ItemID)
		if err != nil {
			h.BadRequest(c, "Invalid item_id")
			return
		}
		appReq.ItemID = &id
	}
	if req.ExpiryDate != nil {
		expiry, err := time.Parse("2006-01-02", *req.ExpiryDate)
		if err != nil {
			h.BadRequest(c, "Invalid expiry_date")
			return
		}
		appReq.ExpiryDate = &expiry
	}

	tx, err := h.mutations.ApplyInbound(c.Request.Context(), appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, tx)
}

// Outbound records goods issued from a batch
func (h *StockHandler) Outbound(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user")
		return
	}

	var req OutboundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	batchID, err := uuid.Parse(req.BatchID)
	if err != nil {
		h.BadRequest(c, "Invalid batch_id")
		return
	}

	tx, err := h.mutations.ApplyOutbound(c.Request.Context(), inventoryapp.OutboundRequest{
		TenantID: tenantID,
		ActorID:  actorID,
		BatchID:  batchID,
		Quantity: req.Quantity,
		Customer: req.Customer,
		Notes:    req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, tx)
}

// Opname reconciles a batch against a physical count
func (h *StockHandler) Opname(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}
	actorID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid user")
		return
	}

	var req OpnameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	batchID, err := uuid.Parse(req.BatchID)
	if err != nil {
		h.BadRequest(c, "Invalid batch_id")
		return
	}

	opname, err := h.mutations.ApplyOpname(c.Request.Context(), inventoryapp.OpnameRequest{
		TenantID:      tenantID,
		ActorID:       actorID,
		BatchID:       batchID,
		PhysicalCount: *req.PhysicalCount,
		Notes:         req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, opname)
}
