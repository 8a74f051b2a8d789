package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/ecofinds/ecofinds-backend/pkg/enums"
)

// Product represents a second-hand listing. Unit prices are integer cents;
// the pricing calculator owns all rounding.
type Product struct {
	ID          uuid.UUID              `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SellerID    uuid.UUID              `gorm:"column:seller_id;type:uuid;not null"`
	Title       string                 `gorm:"column:title;not null"`
	Description *string                `gorm:"column:description"`
	Category    enums.ProductCategory  `gorm:"column:category;type:product_category;not null"`
	Condition   enums.ProductCondition `gorm:"column:condition;type:product_condition;not null;default:'good'"`
	PriceCents  int                    `gorm:"column:price_cents;not null"`
	Images      pq.StringArray         `gorm:"column:images;type:text[];not null;default:ARRAY[]::text[]"`
	IsActive    bool                   `gorm:"column:is_active;not null;default:true"`
	CreatedAt   time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}
