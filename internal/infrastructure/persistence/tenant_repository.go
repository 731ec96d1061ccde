package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/stokku/backend/internal/domain/shared"
	"github.com/stokku/backend/internal/domain/tenant"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBusinessRepository implements BusinessRepository using GORM
type GormBusinessRepository struct {
	db *gorm.DB
}

// NewGormBusinessRepository creates a new GormBusinessRepository
func NewGormBusinessRepository(db *gorm.DB) *GormBusinessRepository {
	return &GormBusinessRepository{db: db}
}

// FindByID finds a business by its ID
func (r *GormBusinessRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenant.Business, error) {
	var b tenant.Business
	if err := r.db.WithContext(ctx).First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// FindByIDForUpdate finds a business by ID taking a row lock. Only meaningful
// inside a transaction; concurrent quota checks serialize on this lock.
func (r *GormBusinessRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*tenant.Business, error) {
	var b tenant.Business
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&b, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

// FindExpiredBefore finds businesses whose subscription lapsed before the cutoff
func (r *GormBusinessRepository) FindExpiredBefore(ctx context.Context, cutoff time.Time) ([]tenant.Business, error) {
	var businesses []tenant.Business
	if err := r.db.WithContext(ctx).
		Where("subscription_expires_at IS NOT NULL AND subscription_expires_at < ?", cutoff).
		Find(&businesses).Error; err != nil {
		return nil, err
	}
	return businesses, nil
}

// FindAll finds all businesses matching the filter
func (r *GormBusinessRepository) FindAll(ctx context.Context, filter shared.Filter) ([]tenant.Business, error) {
	var businesses []tenant.Business
	query := applyFilter(r.db.WithContext(ctx).Model(&tenant.Business{}), filter)
	if err := query.Find(&businesses).Error; err != nil {
		return nil, err
	}
	return businesses, nil
}

// Save creates or updates a business
func (r *GormBusinessRepository) Save(ctx context.Context, b *tenant.Business) error {
	return r.db.WithContext(ctx).Save(b).Error
}

// Ensure GormBusinessRepository implements BusinessRepository
var _ tenant.BusinessRepository = (*GormBusinessRepository)(nil)

// GormSubscriptionPlanRepository implements SubscriptionPlanRepository using GORM
type GormSubscriptionPlanRepository struct {
	db *gorm.DB
}

// NewGormSubscriptionPlanRepository creates a new GormSubscriptionPlanRepository
func NewGormSubscriptionPlanRepository(db *gorm.DB) *GormSubscriptionPlanRepository {
	return &GormSubscriptionPlanRepository{db: db}
}

// FindByID finds a plan by its ID
func (r *GormSubscriptionPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenant.SubscriptionPlan, error) {
	var p tenant.SubscriptionPlan
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindByCode finds a plan by its code
func (r *GormSubscriptionPlanRepository) FindByCode(ctx context.Context, code string) (*tenant.SubscriptionPlan, error) {
	var p tenant.SubscriptionPlan
	if err := r.db.WithContext(ctx).First(&p, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Save creates or updates a plan
func (r *GormSubscriptionPlanRepository) Save(ctx context.Context, p *tenant.SubscriptionPlan) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// Ensure GormSubscriptionPlanRepository implements SubscriptionPlanRepository
var _ tenant.SubscriptionPlanRepository = (*GormSubscriptionPlanRepository)(nil)

// GormStaffUserRepository implements StaffUserRepository using GORM
type GormStaffUserRepository struct {
	db *gorm.DB
}

// NewGormStaffUserRepository creates a new GormStaffUserRepository
func NewGormStaffUserRepository(db *gorm.DB) *GormStaffUserRepository {
	return &GormStaffUserRepository{db: db}
}

// FindByIDForTenant finds a staff member by ID within a tenant
func (r *GormStaffUserRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*tenant.StaffUser, error) {
	var s tenant.StaffUser
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// FindAllForTenant finds all staff for a tenant
func (r *GormStaffUserRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]tenant.StaffUser, error) {
	var staff []tenant.StaffUser
	query := applyFilter(
		r.db.WithContext(ctx).Model(&tenant.StaffUser{}).
			Where("tenant_id = ?", tenantID),
		filter,
	)

	if err := query.Find(&staff).Error; err != nil {
		return nil, err
	}
	return staff, nil
}

// CountOccupiedSeats counts staff whose status occupies a seat
func (r *GormStaffUserRepository) CountOccupiedSeats(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&tenant.StaffUser{}).
		Where("tenant_id = ? AND status IN ?", tenantID,
			[]tenant.StaffStatus{tenant.StaffStatusActive, tenant.StaffStatusPending}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a staff member
func (r *GormStaffUserRepository) Save(ctx context.Context, s *tenant.StaffUser) error {
	return r.db.WithContext(ctx).Save(s).Error
}

// Ensure GormStaffUserRepository implements StaffUserRepository
var _ tenant.StaffUserRepository = (*GormStaffUserRepository)(nil)
