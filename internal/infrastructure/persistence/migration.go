package persistence

import (
	"github.com/stokku/backend/internal/domain/inventory"
	"github.com/stokku/backend/internal/domain/notification"
	"github.com/stokku/backend/internal/domain/tenant"
	"github.com/stokku/backend/internal/domain/warehouse"
	"gorm.io/gorm"
)

// AutoMigrate creates or updates the schema for every persisted aggregate.
// Production deployments run the versioned SQL migrations instead; this is
// used by the sqlite test databases and local development.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&tenant.Business{},
		&tenant.SubscriptionPlan{},
		&tenant.StaffUser{},
		&warehouse.Warehouse{},
		&inventory.Item{},
		&inventory.ItemBatch{},
		&inventory.StockTransaction{},
		&inventory.StockOpname{},
		&inventory.ActivityLog{},
		&notification.Notification{},
	)
}
