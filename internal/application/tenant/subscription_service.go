package tenant

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stokku/backend/internal/domain/tenant"
	"github.com/stokku/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// FreePlanCode is the plan a business falls back to when its subscription
// lapses.
const FreePlanCode = "free"

// SubscriptionService manages the subscription lifecycle of businesses
type SubscriptionService struct {
	businessRepo tenant.BusinessRepository
	planRepo     tenant.SubscriptionPlanRepository
	now          func() time.Time
}

// NewSubscriptionService creates a new SubscriptionService
func NewSubscriptionService(businessRepo tenant.BusinessRepository, planRepo tenant.SubscriptionPlanRepository) *SubscriptionService {
	return &SubscriptionService{
		businessRepo: businessRepo,
		planRepo:     planRepo,
		now:          time.Now,
	}
}

// ChangePlan moves a business to the plan with the given code. For plans with
// a duration the expiry is set relative to now; zero-duration plans never
// expire.
func (s *SubscriptionService) ChangePlan(ctx context.Context, businessID uuid.UUID, planCode string) (*tenant.Business, error) {
	business, err := s.businessRepo.FindByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	plan, err := s.planRepo.FindByCode(ctx, planCode)
	if err != nil {
		return nil, err
	}

	var expiresAt *time.Time
	if plan.DurationDays > 0 {
		t := s.now().AddDate(0, 0, plan.DurationDays)
		expiresAt = &t
	}
	if err := business.ChangePlan(plan.ID, expiresAt); err != nil {
		return nil, err
	}
	if err := s.businessRepo.Save(ctx, business); err != nil {
		return nil, err
	}
	return business, nil
}

// SweepExpired downgrades every business whose subscription lapsed to the
// free plan. Returns the number of businesses downgraded. A failure on one
// business is logged and does not stop the sweep.
func (s *SubscriptionService) SweepExpired(ctx context.Context) (int, error) {
	freePlan, err := s.planRepo.FindByCode(ctx, FreePlanCode)
	if err != nil {
		return 0, err
	}

	expired, err := s.businessRepo.FindExpiredBefore(ctx, s.now())
	if err != nil {
		return 0, err
	}

	downgraded := 0
	for i := range expired {
		business := &expired[i]
		if business.PlanID == freePlan.ID {
			continue
		}
		if err := business.ChangePlan(freePlan.ID, nil); err != nil {
			logger.L(ctx).Error("failed to downgrade expired business",
				zap.String("business_id", business.ID.String()),
				zap.Error(err))
			continue
		}
		if err := s.businessRepo.Save(ctx, business); err != nil {
			logger.L(ctx).Error("failed to save downgraded business",
				zap.String("business_id", business.ID.String()),
				zap.Error(err))
			continue
		}
		downgraded++
		logger.L(ctx).Info("business downgraded to free plan",
			zap.String("business_id", business.ID.String()))
	}
	return downgraded, nil
}
