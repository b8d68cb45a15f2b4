package clients

import (
	"context"

	"github.com/angelmondragon/crmgraphql-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository exposes client persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new client record.
func (r *Repository) Create(ctx context.Context, client *models.Client) (*models.Client, error) {
	if client.ID == uuid.Nil {
		client.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(client).Error; err != nil {
		return nil, err
	}
	return client, nil
}

// FindByID loads a single client.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// FindByIDs loads the clients matching the provided UUIDs, in no guaranteed order.
func (r *Repository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Client, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var clients []models.Client
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// FindByEmail retrieves the client matching the provided email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.Client, error) {
	var client models.Client
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

// List returns every client regardless of seller.
func (r *Repository) List(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	if err := r.db.WithContext(ctx).Order("created_at").Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// ListBySeller returns the clients owned by the given seller.
func (r *Repository) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]models.Client, error) {
	var clients []models.Client
	if err := r.db.WithContext(ctx).
		Where("seller_id = ?", sellerID).
		Order("created_at").
		Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

// Update overwrites the mutable client fields and returns the fresh row.
// SellerID is deliberately not updatable.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*models.Client, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	return r.FindByID(ctx, id)
}

// Delete removes the client.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Client{}, "id = ?", id).Error
}
