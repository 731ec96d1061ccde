package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	domaininv "github.com/stokku/backend/internal/domain/inventory"
	"github.com/stokku/backend/internal/domain/shared"
	"github.com/stokku/backend/internal/domain/warehouse"
)

// In-memory repositories backing the service tests. They honor the same
// contracts as the GORM implementations: tenant scoping, not-found sentinels
// and the conditional deduct.

type memWarehouseRepo struct {
	warehouses map[uuid.UUID]*warehouse.Warehouse
}

func newMemWarehouseRepo() *memWarehouseRepo {
	return &memWarehouseRepo{warehouses: make(map[uuid.UUID]*warehouse.Warehouse)}
}

func (r *memWarehouseRepo) put(w *warehouse.Warehouse) { r.warehouses[w.ID] = w }

func (r *memWarehouseRepo) FindByID(_ context.Context, id uuid.UUID) (*warehouse.Warehouse, error) {
	if w, ok := r.warehouses[id]; ok {
		return w, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memWarehouseRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*warehouse.Warehouse, error) {
	if w, ok := r.warehouses[id]; ok && w.TenantID == tenantID {
		return w, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memWarehouseRepo) FindAllForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]warehouse.Warehouse, error) {
	var out []warehouse.Warehouse
	for _, w := range r.warehouses {
		if w.TenantID == tenantID {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (r *memWarehouseRepo) FindActiveForTenant(_ context.Context, tenantID uuid.UUID) ([]warehouse.Warehouse, error) {
	var out []warehouse.Warehouse
	for _, w := range r.warehouses {
		if w.TenantID == tenantID && w.IsActive() {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (r *memWarehouseRepo) CountForTenant(_ context.Context, tenantID uuid.UUID) (int64, error) {
	var n int64
	for _, w := range r.warehouses {
		if w.TenantID == tenantID {
			n++
		}
	}
	return n, nil
}

func (r *memWarehouseRepo) Save(_ context.Context, w *warehouse.Warehouse) error {
	r.warehouses[w.ID] = w
	return nil
}

type memItemRepo struct {
	items   map[uuid.UUID]*domaininv.Item
	batches *memBatchRepo
}

func newMemItemRepo(batches *memBatchRepo) *memItemRepo {
	return &memItemRepo{items: make(map[uuid.UUID]*domaininv.Item), batches: batches}
}

func (r *memItemRepo) put(item *domaininv.Item) { r.items[item.ID] = item }

func (r *memItemRepo) withBatches(item *domaininv.Item) domaininv.Item {
	clone := *item
	clone.Batches = nil
	for _, b := range r.batches.batches {
		if b.ItemID == item.ID {
			clone.Batches = append(clone.Batches, *b)
		}
	}
	return clone
}

func (r *memItemRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*domaininv.Item, error) {
	if item, ok := r.items[id]; ok && item.TenantID == tenantID {
		clone := r.withBatches(item)
		return &clone, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memItemRepo) FindByIDs(_ context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]domaininv.Item, error) {
	var out []domaininv.Item
	for _, id := range ids {
		if item, ok := r.items[id]; ok && item.TenantID == tenantID {
			out = append(out, r.withBatches(item))
		}
	}
	return out, nil
}

func (r *memItemRepo) FindByWarehouse(_ context.Context, tenantID, warehouseID uuid.UUID, _ shared.Filter) ([]domaininv.Item, error) {
	var out []domaininv.Item
	for _, item := range r.items {
		if item.TenantID == tenantID && item.WarehouseID == warehouseID {
			out = append(out, r.withBatches(item))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memItemRepo) FindAllForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]domaininv.Item, error) {
	var out []domaininv.Item
	for _, item := range r.items {
		if item.TenantID == tenantID {
			out = append(out, r.withBatches(item))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *memItemRepo) AggregateQuantities(_ context.Context, tenantID uuid.UUID, itemIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	out := make(map[uuid.UUID]int64)
	for _, id := range itemIDs {
		if item, ok := r.items[id]; ok && item.TenantID == tenantID {
			out[id] = 0
			for _, b := range r.batches.batches {
				if b.ItemID == id {
					out[id] += b.Quantity
				}
			}
		}
	}
	return out, nil
}

func (r *memItemRepo) Save(_ context.Context, item *domaininv.Item) error {
	r.items[item.ID] = item
	return nil
}

func (r *memItemRepo) SoftDelete(_ context.Context, tenantID, id uuid.UUID) error {
	if item, ok := r.items[id]; ok && item.TenantID == tenantID {
		delete(r.items, id)
		return nil
	}
	return shared.ErrNotFound
}

func (r *memItemRepo) CountForTenant(_ context.Context, tenantID uuid.UUID) (int64, error) {
	var n int64
	for _, item := range r.items {
		if item.TenantID == tenantID {
			n++
		}
	}
	return n, nil
}

type memBatchRepo struct {
	batches map[uuid.UUID]*domaininv.ItemBatch
}

func newMemBatchRepo() *memBatchRepo {
	return &memBatchRepo{batches: make(map[uuid.UUID]*domaininv.ItemBatch)}
}

func (r *memBatchRepo) put(b *domaininv.ItemBatch) { r.batches[b.ID] = b }

func (r *memBatchRepo) FindByID(_ context.Context, id uuid.UUID) (*domaininv.ItemBatch, error) {
	if b, ok := r.batches[id]; ok {
		clone := *b
		return &clone, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memBatchRepo) FindByIDForTenant(_ context.Context, tenantID, id uuid.UUID) (*domaininv.ItemBatch, error) {
	if b, ok := r.batches[id]; ok && b.TenantID == tenantID {
		clone := *b
		return &clone, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memBatchRepo) FindByItem(_ context.Context, itemID uuid.UUID) ([]domaininv.ItemBatch, error) {
	var out []domaininv.ItemBatch
	for _, b := range r.batches {
		if b.ItemID == itemID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *memBatchRepo) FindWithExpiry(_ context.Context, tenantID uuid.UUID, _ *uuid.UUID) ([]domaininv.ItemBatch, error) {
	var out []domaininv.ItemBatch
	for _, b := range r.batches {
		if b.TenantID == tenantID && b.ExpiryDate != nil && b.Quantity > 0 {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *memBatchRepo) Create(_ context.Context, batch *domaininv.ItemBatch) error {
	clone := *batch
	r.batches[batch.ID] = &clone
	return nil
}

func (r *memBatchRepo) AddQuantity(_ context.Context, id uuid.UUID, delta int64) error {
	b, ok := r.batches[id]
	if !ok {
		return shared.ErrNotFound
	}
	b.Quantity += delta
	return nil
}

func (r *memBatchRepo) DeductQuantity(_ context.Context, id uuid.UUID, qty int64) error {
	b, ok := r.batches[id]
	if !ok {
		return shared.ErrNotFound
	}
	if b.Quantity < qty {
		return shared.ErrInsufficientStock
	}
	b.Quantity -= qty
	return nil
}

func (r *memBatchRepo) SetQuantity(_ context.Context, id uuid.UUID, qty int64) error {
	b, ok := r.batches[id]
	if !ok {
		return shared.ErrNotFound
	}
	b.Quantity = qty
	return nil
}

type memTxRepo struct {
	txs []domaininv.StockTransaction
}

func newMemTxRepo() *memTxRepo { return &memTxRepo{} }

func (r *memTxRepo) Create(_ context.Context, tx *domaininv.StockTransaction) error {
	r.txs = append(r.txs, *tx)
	return nil
}

func (r *memTxRepo) FindByBatch(_ context.Context, batchID uuid.UUID) ([]domaininv.StockTransaction, error) {
	var out []domaininv.StockTransaction
	for _, tx := range r.txs {
		if tx.BatchID == batchID {
			out = append(out, tx)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memTxRepo) FindByItemsInRange(_ context.Context, tenantID uuid.UUID, itemIDs []uuid.UUID, start, end time.Time) ([]domaininv.StockTransaction, error) {
	wanted := make(map[uuid.UUID]bool, len(itemIDs))
	for _, id := range itemIDs {
		wanted[id] = true
	}
	var out []domaininv.StockTransaction
	for _, tx := range r.txs {
		if tx.TenantID != tenantID || !wanted[tx.ItemID] {
			continue
		}
		if tx.CreatedAt.Before(start) || !tx.CreatedAt.Before(end) {
			continue
		}
		out = append(out, tx)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *memTxRepo) SumOutboundByItem(_ context.Context, tenantID, warehouseID uuid.UUID, start, end time.Time) (map[uuid.UUID]int64, error) {
	out := make(map[uuid.UUID]int64)
	for _, tx := range r.txs {
		if tx.TenantID != tenantID || tx.WarehouseID != warehouseID || tx.Type != domaininv.TransactionTypeKeluar {
			continue
		}
		if tx.CreatedAt.Before(start) || !tx.CreatedAt.Before(end) {
			continue
		}
		out[tx.ItemID] += tx.Quantity
	}
	return out, nil
}

func (r *memTxRepo) FindForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]domaininv.StockTransaction, error) {
	var out []domaininv.StockTransaction
	for _, tx := range r.txs {
		if tx.TenantID == tenantID {
			out = append(out, tx)
		}
	}
	return out, nil
}

type memOpnameRepo struct {
	opnames []domaininv.StockOpname
}

func newMemOpnameRepo() *memOpnameRepo { return &memOpnameRepo{} }

func (r *memOpnameRepo) Create(_ context.Context, opname *domaininv.StockOpname) error {
	r.opnames = append(r.opnames, *opname)
	return nil
}

func (r *memOpnameRepo) FindByBatch(_ context.Context, batchID uuid.UUID) ([]domaininv.StockOpname, error) {
	var out []domaininv.StockOpname
	for _, o := range r.opnames {
		if o.BatchID == batchID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *memOpnameRepo) FindForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]domaininv.StockOpname, error) {
	var out []domaininv.StockOpname
	for _, o := range r.opnames {
		if o.TenantID == tenantID {
			out = append(out, o)
		}
	}
	return out, nil
}

type memActivityRepo struct {
	entries []domaininv.ActivityLog
}

func newMemActivityRepo() *memActivityRepo { return &memActivityRepo{} }

func (r *memActivityRepo) Create(_ context.Context, entry *domaininv.ActivityLog) error {
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *memActivityRepo) FindForTenant(_ context.Context, tenantID uuid.UUID, _ shared.Filter) ([]domaininv.ActivityLog, error) {
	var out []domaininv.ActivityLog
	for _, e := range r.entries {
		if e.TenantID == tenantID {
			out = append(out, e)
		}
	}
	return out, nil
}

var (
	_ warehouse.Repository                 = (*memWarehouseRepo)(nil)
	_ domaininv.ItemRepository             = (*memItemRepo)(nil)
	_ domaininv.ItemBatchRepository        = (*memBatchRepo)(nil)
	_ domaininv.StockTransactionRepository = (*memTxRepo)(nil)
	_ domaininv.StockOpnameRepository      = (*memOpnameRepo)(nil)
	_ domaininv.ActivityLogRepository      = (*memActivityRepo)(nil)
)

// testEnv wires the fakes into a ready-to-use service environment
type testEnv struct {
	tenantID  uuid.UUID
	actorID   uuid.UUID
	warehouse *warehouse.Warehouse

	warehouseRepo *memWarehouseRepo
	itemRepo      *memItemRepo
	batchRepo     *memBatchRepo
	txRepo        *memTxRepo
	opnameRepo    *memOpnameRepo
	activityRepo  *memActivityRepo

	scope *NoOpTransactionScope
}

func newTestEnv() *testEnv {
	tenantID := uuid.New()
	wh, err := warehouse.NewWarehouse(tenantID, "GD-01", "Gudang Utama")
	if err != nil {
		panic(err)
	}

	batchRepo := newMemBatchRepo()
	env := &testEnv{
		tenantID:      tenantID,
		actorID:       uuid.New(),
		warehouse:     wh,
		warehouseRepo: newMemWarehouseRepo(),
		itemRepo:      newMemItemRepo(batchRepo),
		batchRepo:     batchRepo,
		txRepo:        newMemTxRepo(),
		opnameRepo:    newMemOpnameRepo(),
		activityRepo:  newMemActivityRepo(),
	}
	env.warehouseRepo.put(wh)
	env.scope = NewNoOpTransactionScope(env.itemRepo, env.batchRepo, env.txRepo, env.opnameRepo, env.warehouseRepo)
	return env
}

// addItem creates and stores an item in the test warehouse
func (e *testEnv) addItem(name string, minStock, maxStock int64) *domaininv.Item {
	item, err := domaininv.NewItem(e.tenantID, e.warehouse.ID, name, "pcs", minStock, maxStock)
	if err != nil {
		panic(err)
	}
	e.itemRepo.put(item)
	return item
}

// addBatch creates and stores a batch with the given quantity
func (e *testEnv) addBatch(itemID uuid.UUID, quantity int64, expiry *time.Time) *domaininv.ItemBatch {
	batch, err := domaininv.NewItemBatch(e.tenantID, itemID, expiry)
	if err != nil {
		panic(err)
	}
	batch.Quantity = quantity
	e.batchRepo.put(batch)
	return batch
}
