package handler

import (
	"github.com/gin-gonic/gin"
	tenantapp "github.com/stokku/backend/internal/application/tenant"
)

// SubscriptionHandler handles subscription plan API endpoints
type SubscriptionHandler struct {
	BaseHandler
	subscriptions *tenantapp.SubscriptionService
}

// NewSubscriptionHandler creates a new SubscriptionHandler
func NewSubscriptionHandler(subscriptions *tenantapp.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptions: subscriptions}
}

// ChangePlanRequest is the request body for a plan change
type ChangePlanRequest struct {
	PlanCode string `json:"plan_code" binding:"required,max=50"`
}

// ChangePlan moves the tenant to another plan, resetting the expiry from the
// plan's duration
func (h *SubscriptionHandler) ChangePlan(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}

	var req ChangePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	business, err := h.subscriptions.ChangePlan(c.Request.Context(), tenantID, req.PlanCode)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, business)
}
