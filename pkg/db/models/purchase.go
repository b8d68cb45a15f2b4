package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/crmgraphql-backend/pkg/enums"
)

// Purchase is an order placed for a client by its owning seller.
type Purchase struct {
	ID        uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	Total     float64              `gorm:"column:total;not null"`
	ClientID  uuid.UUID            `gorm:"column:client_id;type:uuid;not null;index"`
	Client    *Client              `gorm:"foreignKey:ClientID"`
	SellerID  uuid.UUID            `gorm:"column:seller_id;type:uuid;not null;index"`
	Status    enums.PurchaseStatus `gorm:"column:status;type:text;not null;default:'Pending'"`
	Items     []PurchaseItem       `gorm:"foreignKey:PurchaseID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}
