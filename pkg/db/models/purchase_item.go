package models

import (
	"github.com/google/uuid"
)

// PurchaseItem captures the snapshot of each line within a purchase. Name and
// price are copied from the product at order time so later product edits do
// not rewrite order history.
type PurchaseItem struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	PurchaseID uuid.UUID `gorm:"column:purchase_id;type:uuid;not null;index"`
	ProductID  uuid.UUID `gorm:"column:product_id;type:uuid;not null"`
	Name       string    `gorm:"column:name;not null"`
	Price      float64   `gorm:"column:price;not null"`
	Quantity   int       `gorm:"column:quantity;not null"`
}
