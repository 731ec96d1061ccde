package notification

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/stokku/backend/internal/domain/inventory"
	"github.com/stokku/backend/internal/domain/notification"
	"github.com/stokku/backend/internal/domain/shared"
	"github.com/stokku/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// SummaryCache caches per-tenant alert counts. Implementations may lose
// entries at any time; the database remains the source of truth.
type SummaryCache interface {
	// Get returns the cached summary, or ok=false on a miss
	Get(ctx context.Context, tenantID uuid.UUID) (map[notification.Type]int64, bool, error)
	// Set stores the summary
	Set(ctx context.Context, tenantID uuid.UUID, summary map[notification.Type]int64) error
	// Invalidate drops the cached summary for a tenant
	Invalidate(ctx context.Context, tenantID uuid.UUID) error
}

// ExpiringBatch pairs a batch with its owning item for expiry reports
type ExpiringBatch struct {
	Batch    inventory.ItemBatch `json:"batch"`
	ItemName string              `json:"item_name"`
	DaysLeft int                 `json:"days_left"`
}

// AlertService derives stock alerts from item and batch state. Alerts are not
// accumulated: every run deletes the previous set for the scope and writes a
// freshly derived one in the same transaction, so running twice against
// unchanged stock yields an identical set.
type AlertService struct {
	scope            TransactionScope
	notifRepo        notification.Repository
	batchRepo        inventory.ItemBatchRepository
	itemRepo         inventory.ItemRepository
	cache            SummaryCache
	expiryWindowDays int
	loc              *time.Location
	now              func() time.Time
}

// NewAlertService creates a new AlertService. expiryWindowDays is the
// mendekati_kadaluarsa horizon; loc determines civil-day boundaries.
func NewAlertService(
	scope TransactionScope,
	notifRepo notification.Repository,
	batchRepo inventory.ItemBatchRepository,
	itemRepo inventory.ItemRepository,
	cache SummaryCache,
	expiryWindowDays int,
	loc *time.Location,
) *AlertService {
	return &AlertService{
		scope:            scope,
		notifRepo:        notifRepo,
		batchRepo:        batchRepo,
		itemRepo:         itemRepo,
		cache:            cache,
		expiryWindowDays: expiryWindowDays,
		loc:              loc,
		now:              time.Now,
	}
}

// Regenerate recomputes the alert set for a tenant, or for one warehouse when
// warehouseID is non-nil. The previous set for the scope is deleted and the
// new one inserted atomically.
func (s *AlertService) Regenerate(ctx context.Context, tenantID uuid.UUID, warehouseID *uuid.UUID) error {
	today := s.now()

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var items []inventory.Item
		var err error
		if warehouseID != nil {
			items, err = repos.ItemRepo().FindByWarehouse(ctx, tenantID, *warehouseID, shared.UnpagedFilter())
		} else {
			items, err = repos.ItemRepo().FindAllForTenant(ctx, tenantID, shared.UnpagedFilter())
		}
		if err != nil {
			return err
		}

		alerts := s.derive(items, tenantID, today)

		if err := repos.NotificationRepo().DeleteScope(ctx, tenantID, warehouseID); err != nil {
			return err
		}
		if len(alerts) == 0 {
			return nil
		}
		return repos.NotificationRepo().CreateBatch(ctx, alerts)
	})
	if err != nil {
		return err
	}

	s.invalidateSummary(ctx, tenantID)
	return nil
}

// derive computes the alert set for the given items. Stock-level alerts are
// mutually exclusive per item; expiry alerts fire per batch, for batches that
// still hold stock.
func (s *AlertService) derive(items []inventory.Item, tenantID uuid.UUID, today time.Time) []notification.Notification {
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })

	var alerts []notification.Notification
	for i := range items {
		item := &items[i]
		qty := item.AggregateQuantity()

		switch {
		case qty == 0:
			alerts = append(alerts, *notification.NewThresholdAlert(
				tenantID, item.WarehouseID, item.ID, notification.TypeStokHabis, item.Name, qty))
		case item.IsBelowMinimum(qty):
			alerts = append(alerts, *notification.NewThresholdAlert(
				tenantID, item.WarehouseID, item.ID, notification.TypeStokMenipis, item.Name, qty))
		case item.IsAboveMaximum(qty):
			alerts = append(alerts, *notification.NewThresholdAlert(
				tenantID, item.WarehouseID, item.ID, notification.TypeStokBerlebih, item.Name, qty))
		}

		batches := make([]inventory.ItemBatch, len(item.Batches))
		copy(batches, item.Batches)
		sort.Slice(batches, func(a, b int) bool {
			return batches[a].ID.String() < batches[b].ID.String()
		})
		for j := range batches {
			batch := &batches[j]
			if batch.Quantity <= 0 {
				continue
			}
			daysLeft, ok := batch.DaysUntilExpiry(today, s.loc)
			if !ok {
				continue
			}
			switch {
			case daysLeft <= 0:
				alerts = append(alerts, *notification.NewExpiryAlert(
					tenantID, item.WarehouseID, item.ID, batch.ID,
					notification.TypeSudahKadaluarsa, item.Name, daysLeft))
			case daysLeft <= s.expiryWindowDays:
				alerts = append(alerts, *notification.NewExpiryAlert(
					tenantID, item.WarehouseID, item.ID, batch.ID,
					notification.TypeMendekatiKadaluarsa, item.Name, daysLeft))
			}
		}
	}
	return alerts
}

// List returns one page of the current alerts for a tenant, optionally
// narrowed to one warehouse.
func (s *AlertService) List(ctx context.Context, tenantID uuid.UUID, warehouseID *uuid.UUID, filter shared.Filter) (shared.Paginated[notification.Notification], error) {
	alerts, err := s.notifRepo.FindForTenant(ctx, tenantID, warehouseID, filter)
	if err != nil {
		return shared.Paginated[notification.Notification]{}, err
	}
	total, err := s.notifRepo.CountForTenant(ctx, tenantID, warehouseID)
	if err != nil {
		return shared.Paginated[notification.Notification]{}, err
	}
	return shared.NewPaginated(alerts, total, filter.Page, filter.PageSize), nil
}

// Summary returns alert counts per type for a tenant, served from cache when
// possible.
func (s *AlertService) Summary(ctx context.Context, tenantID uuid.UUID) (map[notification.Type]int64, error) {
	if s.cache != nil {
		if summary, ok, err := s.cache.Get(ctx, tenantID); err == nil && ok {
			return summary, nil
		} else if err != nil {
			logger.L(ctx).Warn("alert summary cache read failed", zap.Error(err))
		}
	}

	summary, err := s.notifRepo.CountByType(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, tenantID, summary); err != nil {
			logger.L(ctx).Warn("alert summary cache write failed", zap.Error(err))
		}
	}
	return summary, nil
}

// ListExpiringBatches returns stocked batches expiring within the warning
// window (or already expired), soonest first.
func (s *AlertService) ListExpiringBatches(ctx context.Context, tenantID uuid.UUID, warehouseID *uuid.UUID) ([]ExpiringBatch, error) {
	batches, err := s.batchRepo.FindWithExpiry(ctx, tenantID, warehouseID)
	if err != nil {
		return nil, err
	}

	today := s.now()
	var expiring []ExpiringBatch
	itemIDs := make([]uuid.UUID, 0, len(batches))
	for i := range batches {
		itemIDs = append(itemIDs, batches[i].ItemID)
	}
	items, err := s.itemRepo.FindByIDs(ctx, tenantID, itemIDs)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(items))
	for i := range items {
		names[items[i].ID] = items[i].Name
	}

	for i := range batches {
		daysLeft, ok := batches[i].DaysUntilExpiry(today, s.loc)
		if !ok || daysLeft > s.expiryWindowDays {
			continue
		}
		expiring = append(expiring, ExpiringBatch{
			Batch:    batches[i],
			ItemName: names[batches[i].ItemID],
			DaysLeft: daysLeft,
		})
	}
	sort.Slice(expiring, func(i, j int) bool { return expiring[i].DaysLeft < expiring[j].DaysLeft })
	return expiring, nil
}

// invalidateSummary drops the cached summary; failures are logged only
func (s *AlertService) invalidateSummary(ctx context.Context, tenantID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, tenantID); err != nil {
		logger.L(ctx).Warn("alert summary cache invalidation failed", zap.Error(err))
	}
}
