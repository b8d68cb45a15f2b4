package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is an inventory listing. Stock is decremented by purchases and must
// never go negative; the decrement is a conditional UPDATE in the purchases
// repository.
type Product struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name      string    `gorm:"column:name;not null"`
	Stock     int       `gorm:"column:stock;not null;default:0"`
	Price     float64   `gorm:"column:price;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
