package products

import (
	"context"
	"strings"

	"github.com/angelmondragon/crmgraphql-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes product persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new product listing.
func (r *Repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// FindByID loads a single product.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// List returns every product.
func (r *Repository) List(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Order("created_at").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// SearchByName returns products whose name contains the text,
// case-insensitively. An empty result is not an error.
func (r *Repository) SearchByName(ctx context.Context, text string) ([]models.Product, error) {
	var products []models.Product
	pattern := "%" + strings.ToLower(text) + "%"
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ?", pattern).
		Order("created_at").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Update overwrites the mutable product fields and returns the fresh row.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Product, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

// DecrementStock atomically subtracts qty from the product's stock. It
// reports whether a row was updated; no row means the remaining stock was
// lower than qty (or the product vanished), and the caller decides what that
// means.
func (r *Repository) DecrementStock(ctx context.Context, id uuid.UUID, qty int) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND stock >= ?", id, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Delete removes the product.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
