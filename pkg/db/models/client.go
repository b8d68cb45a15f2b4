package models

import (
	"time"

	"github.com/google/uuid"
)

// Client is a CRM contact owned by the seller who created it. SellerID is set
// once at creation and never updated.
type Client struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	LastName  string    `gorm:"column:last_name;not null"`
	Email     string    `gorm:"column:email;type:text;not null;uniqueIndex"`
	Phone     *string   `gorm:"column:phone"`
	Company   string    `gorm:"column:company;not null"`
	SellerID  uuid.UUID `gorm:"column:seller_id;type:uuid;not null;index"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
