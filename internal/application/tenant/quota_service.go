package tenant

import (
	"context"

	"github.com/google/uuid"
	"github.com/stokku/backend/internal/domain/shared"
	"github.com/stokku/backend/internal/domain/tenant"
)

// QuotaService enforces subscription plan limits for a business. Seats are
// counted over active and pending staff: an unaccepted invitation already
// occupies a slot.
type QuotaService struct {
	scope        TransactionScope
	businessRepo tenant.BusinessRepository
	planRepo     tenant.SubscriptionPlanRepository
	staffRepo    tenant.StaffUserRepository
}

// NewQuotaService creates a new QuotaService
func NewQuotaService(
	scope TransactionScope,
	businessRepo tenant.BusinessRepository,
	planRepo tenant.SubscriptionPlanRepository,
	staffRepo tenant.StaffUserRepository,
) *QuotaService {
	return &QuotaService{
		scope:        scope,
		businessRepo: businessRepo,
		planRepo:     planRepo,
		staffRepo:    staffRepo,
	}
}

// StaffQuota describes current seat usage against the plan limit
type StaffQuota struct {
	Used  int64        `json:"used"`
	Limit tenant.Limit `json:"-"`
}

// Remaining returns how many seats are left, or -1 when unbounded
func (q StaffQuota) Remaining() int64 {
	if q.Limit.IsUnbounded() {
		return -1
	}
	left := q.Limit.Value() - q.Used
	if left < 0 {
		left = 0
	}
	return left
}

// CanAddStaff reports whether the business has a free staff seat. This is the
// advisory check for UI display; InviteStaff re-checks under a lock before
// writing.
func (s *QuotaService) CanAddStaff(ctx context.Context, businessID uuid.UUID) (StaffQuota, error) {
	business, err := s.businessRepo.FindByID(ctx, businessID)
	if err != nil {
		return StaffQuota{}, err
	}
	plan, err := s.planRepo.FindByID(ctx, business.PlanID)
	if err != nil {
		return StaffQuota{}, err
	}
	used, err := s.staffRepo.CountOccupiedSeats(ctx, businessID)
	if err != nil {
		return StaffQuota{}, err
	}
	return StaffQuota{Used: used, Limit: plan.StaffLimit()}, nil
}

// WarehouseQuotaAllows reports whether the business may create another
// warehouse under its plan.
func (s *QuotaService) WarehouseQuotaAllows(ctx context.Context, businessID uuid.UUID, warehouseCount int64) (bool, error) {
	business, err := s.businessRepo.FindByID(ctx, businessID)
	if err != nil {
		return false, err
	}
	plan, err := s.planRepo.FindByID(ctx, business.PlanID)
	if err != nil {
		return false, err
	}
	return plan.WarehouseLimit().Allows(warehouseCount), nil
}

// InviteStaff creates a pending staff member, enforcing the seat quota. The
// check and the insert run in one transaction with the business row locked,
// so concurrent invitations serialize and the limit cannot be oversubscribed.
func (s *QuotaService) InviteStaff(ctx context.Context, businessID, userID uuid.UUID, name, email string) (*tenant.StaffUser, error) {
	var created *tenant.StaffUser
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		business, err := repos.BusinessRepo().FindByIDForUpdate(ctx, businessID)
		if err != nil {
			return err
		}
		plan, err := repos.PlanRepo().FindByID(ctx, business.PlanID)
		if err != nil {
			return err
		}
		used, err := repos.StaffRepo().CountOccupiedSeats(ctx, businessID)
		if err != nil {
			return err
		}

		limit := plan.StaffLimit()
		if !limit.Allows(used) {
			return shared.NewQuotaExceededError("staff", used, limit.Value())
		}

		staff, err := tenant.NewStaffInvitation(businessID, userID, name, email)
		if err != nil {
			return err
		}
		if err := repos.StaffRepo().Save(ctx, staff); err != nil {
			return err
		}
		created = staff
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ActivateStaff moves a pending staff member to active. The seat was already
// claimed at invitation time, so no quota check is repeated here; a
// deactivated member however must reclaim a seat.
func (s *QuotaService) ActivateStaff(ctx context.Context, businessID, staffID uuid.UUID) (*tenant.StaffUser, error) {
	var activated *tenant.StaffUser
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		staff, err := repos.StaffRepo().FindByIDForTenant(ctx, businessID, staffID)
		if err != nil {
			return err
		}

		if staff.Status == tenant.StaffStatusInactive {
			business, err := repos.BusinessRepo().FindByIDForUpdate(ctx, businessID)
			if err != nil {
				return err
			}
			plan, err := repos.PlanRepo().FindByID(ctx, business.PlanID)
			if err != nil {
				return err
			}
			used, err := repos.StaffRepo().CountOccupiedSeats(ctx, businessID)
			if err != nil {
				return err
			}
			limit := plan.StaffLimit()
			if !limit.Allows(used) {
				return shared.NewQuotaExceededError("staff", used, limit.Value())
			}
		}

		if err := staff.Activate(); err != nil {
			return err
		}
		if err := repos.StaffRepo().Save(ctx, staff); err != nil {
			return err
		}
		activated = staff
		return nil
	})
	if err != nil {
		return nil, err
	}
	return activated, nil
}

// DeactivateStaff frees a staff member's seat
func (s *QuotaService) DeactivateStaff(ctx context.Context, businessID, staffID uuid.UUID) (*tenant.StaffUser, error) {
	staff, err := s.staffRepo.FindByIDForTenant(ctx, businessID, staffID)
	if err != nil {
		return nil, err
	}
	if err := staff.Deactivate(); err != nil {
		return nil, err
	}
	if err := s.staffRepo.Save(ctx, staff); err != nil {
		return nil, err
	}
	return staff, nil
}
