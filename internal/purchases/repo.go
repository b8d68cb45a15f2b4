package purchases

import (
	"context"

	"github.com/angelmondragon/crmgraphql-backend/pkg/db/models"
	"github.com/angelmondragon/crmgraphql-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes purchase persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a purchase along with its line items.
func (r *Repository) Create(ctx context.Context, purchase *models.Purchase) (*models.Purchase, error) {
	if purchase.ID == uuid.Nil {
		purchase.ID = uuid.New()
	}
	for i := range purchase.Items {
		if purchase.Items[i].ID == uuid.Nil {
			purchase.Items[i].ID = uuid.New()
		}
		purchase.Items[i].PurchaseID = purchase.ID
	}
	if err := r.db.WithContext(ctx).Create(purchase).Error; err != nil {
		return nil, err
	}
	return purchase, nil
}

// FindByID loads a purchase with its items.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Purchase, error) {
	var purchase models.Purchase
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&purchase, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &purchase, nil
}

// List returns every purchase regardless of seller.
func (r *Repository) List(ctx context.Context) ([]models.Purchase, error) {
	var purchases []models.Purchase
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Order("created_at").
		Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// ListBySeller returns the seller's purchases with client details populated.
func (r *Repository) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]models.Purchase, error) {
	var purchases []models.Purchase
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Client").
		Where("seller_id = ?", sellerID).
		Order("created_at").
		Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// ListBySellerAndStatus filters the seller's purchases by exact status.
func (r *Repository) ListBySellerAndStatus(ctx context.Context, sellerID uuid.UUID, status string) ([]models.Purchase, error) {
	var purchases []models.Purchase
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("seller_id = ? AND status = ?", sellerID, status).
		Order("created_at").
		Find(&purchases).Error; err != nil {
		return nil, err
	}
	return purchases, nil
}

// Update overwrites the purchase fields and, when items is non-nil, replaces
// the line items wholesale.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, fields map[string]any, items []models.PurchaseItem) (*models.Purchase, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Purchase{}).
			Where("id = ?", id).
			Updates(fields).Error; err != nil {
			return err
		}
		if items == nil {
			return nil
		}
		if err := tx.Where("purchase_id = ?", id).Delete(&models.PurchaseItem{}).Error; err != nil {
			return err
		}
		for i := range items {
			if items[i].ID == uuid.Nil {
				items[i].ID = uuid.New()
			}
			items[i].PurchaseID = id
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

// Delete removes the purchase and its items. Product stock is not restored.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("purchase_id = ?", id).Delete(&models.PurchaseItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Purchase{}, "id = ?", id).Error
	})
}

// AggregateRow is the scan target for the report queries.
type AggregateRow struct {
	GroupID uuid.UUID `gorm:"column:group_id"`
	Total   float64   `gorm:"column:total"`
}

// AggregateCompletedByClient groups completed purchases by client, summing
// totals. The group set is truncated to limit rows BEFORE the descending
// sort, so the result is the ordered truncation, not the global top.
func (r *Repository) AggregateCompletedByClient(ctx context.Context, limit int) ([]AggregateRow, error) {
	return r.aggregateCompleted(ctx, "client_id", limit)
}

// AggregateCompletedBySeller is the seller-keyed variant of the report query.
func (r *Repository) AggregateCompletedBySeller(ctx context.Context, limit int) ([]AggregateRow, error) {
	return r.aggregateCompleted(ctx, "seller_id", limit)
}

func (r *Repository) aggregateCompleted(ctx context.Context, key string, limit int) ([]AggregateRow, error) {
	var rows []AggregateRow
	query := `
		SELECT g.group_id, g.total FROM (
			SELECT ` + key + ` AS group_id, SUM(total) AS total
			FROM purchases
			WHERE status = ?
			GROUP BY ` + key + `
			LIMIT ?
		) g
		ORDER BY g.total DESC`
	if err := r.db.WithContext(ctx).
		Raw(query, enums.PurchaseStatusCompleted.String(), limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
