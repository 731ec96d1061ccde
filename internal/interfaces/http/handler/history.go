package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	inventoryapp "github.com/stokku/backend/internal/application/inventory"
)

// HistoryHandler handles historical stock reconstruction and analytics endpoints
type HistoryHandler struct {
	BaseHandler
	history *inventoryapp.StockHistoryService
	loc     *time.Location
}

// NewHistoryHandler creates a new HistoryHandler
func NewHistoryHandler(history *inventoryapp.StockHistoryService, loc *time.Location) *HistoryHandler {
	return &HistoryHandler{history: history, loc: loc}
}

// HistoryRangeRequest selects a civil-day date range for a warehouse
type HistoryRangeRequest struct {
	WarehouseID string `form:"warehouse_id" binding:"required,uuid"`
	StartDate   string `form:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate     string `form:"end_date" binding:"required,datetime=2006-01-02"`
}

// ProjectionRequest selects the velocity window for stock-out projections
type ProjectionRequest struct {
	WarehouseID string `form:"warehouse_id" binding:"required,uuid"`
	WindowDays  int    `form:"window_days" binding:"omitempty,min=1,max=365"`
}

// parseRange parses the bound date strings at civil midnight in the service timezone
func (h *HistoryHandler) parseRange(req HistoryRangeRequest) (warehouseID uuid.UUID, start, end time.Time, err error) {
	warehouseID, err = uuid.Parse(req.WarehouseID)
	if err != nil {
		return
	}
	start, err = time.ParseInLocation("2006-01-02", req.StartDate, h.loc)
	if err != nil {
		return
	}
	end, err = time.ParseInLocation("2006-01-02", req.EndDate, h.loc)
	return
}

// Reconstruct returns the per-day stock series for every item of a warehouse
func (h *HistoryHandler) Reconstruct(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}

	var req HistoryRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	warehouseID, start, end, err := h.parseRange(req)
	if err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	series, err := h.history.Reconstruct(c.Request.Context(), tenantID, warehouseID, start, end)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, series)
}

// ProjectStockOut returns estimated stock-out dates per item at current velocity
func (h *HistoryHandler) ProjectStockOut(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}

	var req ProjectionRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	warehouseID, err := uuid.Parse(req.WarehouseID)
	if err != nil {
		h.BadRequest(c, "Invalid warehouse_id")
		return
	}

	windowDays := req.WindowDays
	if windowDays == 0 {
		windowDays = 30
	}

	projections, err := h.history.ProjectStockOut(c.Request.Context(), tenantID, warehouseID, windowDays)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, projections)
}

// ClassifyABC returns the ABC sales-contribution classes over a date range
func (h *HistoryHandler) ClassifyABC(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}

	var req HistoryRangeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	warehouseID, start, end, err := h.parseRange(req)
	if err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	entries, err := h.history.ClassifyABC(c.Request.Context(), tenantID, warehouseID, start, end)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}
