package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	tenantapp "github.com/stokku/backend/internal/application/tenant"
)

// StaffHandler handles staff and quota API endpoints
type StaffHandler struct {
	BaseHandler
	quotas *tenantapp.QuotaService
}

// NewStaffHandler creates a new StaffHandler
func NewStaffHandler(quotas *tenantapp.QuotaService) *StaffHandler {
	return &StaffHandler{quotas: quotas}
}

// InviteStaffRequest is the request body for a staff invitation
type InviteStaffRequest struct {
	UserID string `json:"user_id" binding:"required,uuid"`
	Name   string `json:"name" binding:"required,max=200"`
	Email  string `json:"email" binding:"required,email"`
}

// StaffQuotaResponse reports seat usage. Limit and remaining are omitted for
// unlimited plans.
type StaffQuotaResponse struct {
	Used      int64  `json:"used"`
	Unlimited bool   `json:"unlimited"`
	Limit     *int64 `json:"limit,omitempty"`
	Remaining *int64 `json:"remaining,omitempty"`
}

// newStaffQuotaResponse converts a StaffQuota into its wire form
func newStaffQuotaResponse(q tenantapp.StaffQuota) StaffQuotaResponse {
	resp := StaffQuotaResponse{
		Used:      q.Used,
		Unlimited: q.Limit.IsUnbounded(),
	}
	if !q.Limit.IsUnbounded() {
		limit := q.Limit.Value()
		remaining := q.Remaining()
		resp.Limit = &limit
		resp.Remaining = &remaining
	}
	return resp
}

// Quota returns the current staff seat usage for the tenant
func (h *StaffHandler) Quota(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}

	quota, err := h.quotas.CanAddStaff(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, newStaffQuotaResponse(quota))
}

// Invite creates a pending staff invitation, enforcing the seat quota
func (h *StaffHandler) Invite(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}

	var req InviteStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.HandleBindingError(c, err)
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		h.BadRequest(c, "Invalid user_id")
		return
	}

	staff, err := h.quotas.InviteStaff(c.Request.Context(), tenantID, userID, req.Name, req.Email)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, staff)
}

// Activate transitions a staff member to active, re-checking the quota when
// the member was previously deactivated
func (h *StaffHandler) Activate(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}

	staffID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid staff ID")
		return
	}

	staff, err := h.quotas.ActivateStaff(c.Request.Context(), tenantID, staffID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, staff)
}

// Deactivate frees the seat held by a staff member
func (h *StaffHandler) Deactivate(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.Unauthorized(c, "Invalid tenant")
		return
	}

	staffID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid staff ID")
		return
	}

	staff, err := h.quotas.DeactivateStaff(c.Request.Context(), tenantID, staffID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, staff)
}
