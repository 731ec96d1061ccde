package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	notifapp "github.com/stokku/backend/internal/application/notification"
	"github.com/stokku/backend/internal/domain/shared"
	"github.com/stokku/backend/internal/interfaces/http/dto"
)

// AlertHandler handles stock alert API endpoints
type AlertHandler struct {
	BaseHandler
	alerts *notifapp.AlertService
}

// NewAlertHandler creates a new AlertHandler
func NewAlertHandler(alerts *notifapp.AlertService) *AlertHandler {
	return &AlertHandler{alerts: alerts}
}

// AlertScopeRequest optionally narrows an alert operation to one warehouse
type AlertScopeRequest struct {
	WarehouseID *string `form:"warehouse_id" binding:"omitempty,uuid"`
}

// parseScope parses the optional warehouse narrowing
func parseScope(req AlertScopeRequest) (*uuid.UUID, error) {
	if req.WarehouseID == nil {
		return nil, nil
	}
	id, err := uuid.Parse(*req.WarehouseID)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// Regenerate rederives the alert set for the tenant or one warehouse
func (h *AlertHandler) Regenerate(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}

	var req AlertScopeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}
	warehouseID, err := parseScope(req)
	if err != nil {
		h.BadRequest(c, "Invalid warehouse_id")
		return
	}

	if err := h.alerts.Regenerate(c.Request.Context(), tenantID, warehouseID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// List returns the current alert set
func (h *AlertHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}

	var scope AlertScopeRequest
	if err := c.ShouldBindQuery(&scope); err != nil {
		h.HandleBindingError(c, err)
		return
	}
	warehouseID, err := parseScope(scope)
	if err != nil {
		h.BadRequest(c, "Invalid warehouse_id")
		return
	}

	var list dto.ListRequest
	if err := c.ShouldBindQuery(&list); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	filter := shared.DefaultFilter()
	if list.Page > 0 {
		filter.Page = list.Page
	}
	if list.PageSize > 0 {
		filter.PageSize = list.PageSize
	}
	if list.OrderBy != "" {
		filter.OrderBy = list.OrderBy
		filter.OrderDir = list.OrderDir
	}

	alerts, err := h.alerts.List(c.Request.Context(), tenantID, warehouseID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, alerts)
}

// Summary returns per-type alert counts for the tenant
func (h *AlertHandler) Summary(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}

	summary, err := h.alerts.Summary(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// ListExpiringBatches returns stocked batches inside the expiry warning window
func (h *AlertHandler) ListExpiringBatches(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}

	var req AlertScopeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}
	warehouseID, err := parseScope(req)
	if err != nil {
		h.BadRequest(c, "Invalid warehouse_id")
		return
	}

	batches, err := h.alerts.ListExpiringBatches(c.Request.Context(), tenantID, warehouseID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, batches)
}
