package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stokku/backend/internal/domain/inventory"
	"github.com/stokku/backend/internal/domain/shared"
)

// ABC cut lines: items covering the top 80% of outbound volume are class A,
// the next 15% class B, the rest class C.
var (
	abcCutA = decimal.NewFromFloat(0.80)
	abcCutB = decimal.NewFromFloat(0.95)
)

// StockHistoryService reconstructs historical stock levels from the
// transaction ledger and derives sales analytics from it. No historical
// levels are stored; every series is recomputed by walking transactions
// backward from the current batch quantities.
type StockHistoryService struct {
	itemRepo inventory.ItemRepository
	txRepo   inventory.StockTransactionRepository
	loc      *time.Location
	now      func() time.Time
}

// NewStockHistoryService creates a new StockHistoryService. Civil days are
// evaluated in loc, the tenant-facing timezone.
func NewStockHistoryService(itemRepo inventory.ItemRepository, txRepo inventory.StockTransactionRepository, loc *time.Location) *StockHistoryService {
	return &StockHistoryService{
		itemRepo: itemRepo,
		txRepo:   txRepo,
		loc:      loc,
		now:      time.Now,
	}
}

// Reconstruct returns one stock level per civil day in [start, end] for every
// item in the warehouse, oldest day first. The series is dense: days without
// transactions repeat the previous day's level. Days after today carry the
// current level. Reconstructed values are clamped at zero.
//
// The walk starts from the live batch quantities and undoes each day's
// transactions going backward, so the value reported for a day is the stock
// at the end of that civil day. Transactions carrying a snapshot resync the
// walk to it; a legacy transaction without one resets its batch to zero,
// since nothing earlier can be known.
func (s *StockHistoryService) Reconstruct(ctx context.Context, tenantID, warehouseID uuid.UUID, start, end time.Time) ([]DailyStockPoint, error) {
	startDay := inventory.CivilDayStart(start, s.loc)
	endDay := inventory.CivilDayStart(end, s.loc)
	if endDay.Before(startDay) {
		return nil, shared.NewDomainError("INVALID_RANGE", "End date is before start date")
	}
	today := inventory.CivilDayStart(s.now(), s.loc)

	items, err := s.itemRepo.FindByWarehouse(ctx, tenantID, warehouseID, shared.UnpagedFilter())
	if err != nil {
		return nil, err
	}

	itemIDs := make([]uuid.UUID, 0, len(items))
	batchQty := make(map[uuid.UUID]int64)      // live quantity per batch
	batchItem := make(map[uuid.UUID]uuid.UUID) // batch -> owning item
	for i := range items {
		itemIDs = append(itemIDs, items[i].ID)
		for j := range items[i].Batches {
			b := &items[i].Batches[j]
			batchQty[b.ID] = b.Quantity
			batchItem[b.ID] = items[i].ID
		}
	}

	// The walk is seeded from live quantities, so every transaction between
	// the range start and today must be undone, including those after endDay.
	txs, err := s.txRepo.FindByItemsInRange(ctx, tenantID, itemIDs, startDay, today.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	byDay := make(map[time.Time][]inventory.StockTransaction)
	for i := range txs {
		day := inventory.CivilDayStart(txs[i].CreatedAt, s.loc)
		byDay[day] = append(byDay[day], txs[i])
	}

	levels := make(map[time.Time]map[uuid.UUID]int64)
	for day := today; !day.Before(startDay); day = day.AddDate(0, 0, -1) {
		if !day.After(endDay) {
			levels[day] = aggregateByItem(itemIDs, batchQty, batchItem)
		}
		// Undo this day's transactions, newest first, to reach the end of
		// the previous day.
		dayTxs := byDay[day]
		for i := len(dayTxs) - 1; i >= 0; i-- {
			tx := &dayTxs[i]
			if tx.StockSnapshot == nil {
				batchQty[tx.BatchID] = 0
				continue
			}
			q := *tx.StockSnapshot - tx.SignedQuantity()
			if q < 0 {
				q = 0
			}
			batchQty[tx.BatchID] = q
		}
	}

	series := make([]DailyStockPoint, 0, int(endDay.Sub(startDay).Hours()/24)+1)
	current := aggregateItemBatches(items)
	for day := startDay; !day.After(endDay); day = day.AddDate(0, 0, 1) {
		point := DailyStockPoint{Date: day}
		if day.After(today) {
			point.Quantities = current
		} else {
			point.Quantities = levels[day]
		}
		series = append(series, point)
	}
	return series, nil
}

// SalesVelocity returns the average daily outbound quantity per item over the
// last windowDays civil days, ending yesterday.
func (s *StockHistoryService) SalesVelocity(ctx context.Context, tenantID, warehouseID uuid.UUID, windowDays int) (map[uuid.UUID]decimal.Decimal, error) {
	if windowDays <= 0 {
		return nil, shared.NewDomainError("INVALID_WINDOW", "Velocity window must be positive")
	}

	today := inventory.CivilDayStart(s.now(), s.loc)
	start := today.AddDate(0, 0, -windowDays)
	sums, err := s.txRepo.SumOutboundByItem(ctx, tenantID, warehouseID, start, today)
	if err != nil {
		return nil, err
	}

	window := decimal.NewFromInt(int64(windowDays))
	velocities := make(map[uuid.UUID]decimal.Decimal, len(sums))
	for itemID, qty := range sums {
		velocities[itemID] = decimal.NewFromInt(qty).Div(window)
	}
	return velocities, nil
}

// ProjectStockOut estimates, for each item with recent outbound movement, when
// its stock runs out at the current sales velocity. Items that sold nothing in
// the window are omitted: with zero velocity there is no projection to make.
func (s *StockHistoryService) ProjectStockOut(ctx context.Context, tenantID, warehouseID uuid.UUID, windowDays int) ([]StockOutProjection, error) {
	velocities, err := s.SalesVelocity(ctx, tenantID, warehouseID, windowDays)
	if err != nil {
		return nil, err
	}
	if len(velocities) == 0 {
		return []StockOutProjection{}, nil
	}

	itemIDs := make([]uuid.UUID, 0, len(velocities))
	for itemID := range velocities {
		itemIDs = append(itemIDs, itemID)
	}
	quantities, err := s.itemRepo.AggregateQuantities(ctx, tenantID, itemIDs)
	if err != nil {
		return nil, err
	}

	today := inventory.CivilDayStart(s.now(), s.loc)
	projections := make([]StockOutProjection, 0, len(velocities))
	for itemID, velocity := range velocities {
		if !velocity.IsPositive() {
			continue
		}
		current := quantities[itemID]
		days := decimal.NewFromInt(current).Div(velocity).Ceil().IntPart()
		projections = append(projections, StockOutProjection{
			ItemID:          itemID,
			CurrentQuantity: current,
			DailyVelocity:   velocity,
			DaysRemaining:   days,
			StockOutDate:    today.AddDate(0, 0, int(days)),
		})
	}
	sort.Slice(projections, func(i, j int) bool {
		return projections[i].DaysRemaining < projections[j].DaysRemaining
	})
	return projections, nil
}

// ClassifyABC ranks items by outbound volume over the civil days of start
// through end, both inclusive, and assigns contribution classes: A up to 80%
// cumulative share, B up to 95%, C beyond. Items with no outbound movement in
// the range are not listed.
func (s *StockHistoryService) ClassifyABC(ctx context.Context, tenantID, warehouseID uuid.UUID, start, end time.Time) ([]ABCEntry, error) {
	rangeStart := inventory.CivilDayStart(start, s.loc)
	rangeEnd := inventory.CivilDayStart(end, s.loc).AddDate(0, 0, 1)
	sums, err := s.txRepo.SumOutboundByItem(ctx, tenantID, warehouseID, rangeStart, rangeEnd)
	if err != nil {
		return nil, err
	}

	var total int64
	entries := make([]ABCEntry, 0, len(sums))
	for itemID, qty := range sums {
		if qty <= 0 {
			continue
		}
		total += qty
		entries = append(entries, ABCEntry{ItemID: itemID, OutboundQuantity: qty})
	}
	if total == 0 {
		return []ABCEntry{}, nil
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].OutboundQuantity != entries[j].OutboundQuantity {
			return entries[i].OutboundQuantity > entries[j].OutboundQuantity
		}
		return entries[i].ItemID.String() < entries[j].ItemID.String()
	})

	totalDec := decimal.NewFromInt(total)
	cumulative := decimal.Zero
	for i := range entries {
		entries[i].Share = decimal.NewFromInt(entries[i].OutboundQuantity).Div(totalDec)
		cumulative = cumulative.Add(entries[i].Share)
		entries[i].CumulativeShare = cumulative
		switch {
		case cumulative.LessThanOrEqual(abcCutA):
			entries[i].Class = ABCClassA
		case cumulative.LessThanOrEqual(abcCutB):
			entries[i].Class = ABCClassB
		default:
			entries[i].Class = ABCClassC
		}
	}
	return entries, nil
}

// aggregateByItem sums clamped batch quantities into per-item totals. Items
// without batches are reported at zero.
func aggregateByItem(itemIDs []uuid.UUID, batchQty map[uuid.UUID]int64, batchItem map[uuid.UUID]uuid.UUID) map[uuid.UUID]int64 {
	out := make(map[uuid.UUID]int64, len(itemIDs))
	for _, itemID := range itemIDs {
		out[itemID] = 0
	}
	for batchID, qty := range batchQty {
		if qty < 0 {
			qty = 0
		}
		out[batchItem[batchID]] += qty
	}
	return out
}

// aggregateItemBatches sums live batch quantities per item
func aggregateItemBatches(items []inventory.Item) map[uuid.UUID]int64 {
	out := make(map[uuid.UUID]int64, len(items))
	for i := range items {
		out[items[i].ID] = items[i].AggregateQuantity()
	}
	return out
}
