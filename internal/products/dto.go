package product

import (
	"time"

	"github.com/google/uuid"

	"github.com/ecofinds/ecofinds-backend/pkg/db/models"
)

// ProductDTO represents the listing payload returned to clients.
type ProductDTO struct {
	ID          uuid.UUID `json:"id"`
	SellerID    uuid.UUID `json:"seller_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Category    string    `json:"category"`
	Condition   string    `json:"condition"`
	PriceCents  int       `json:"price_cents"`
	Images      []string  `json:"images"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductListResult carries one page of listings plus the next cursor.
type ProductListResult struct {
	Products   []ProductDTO `json:"products"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

// NewProductDTO maps the model to its transport shape.
func NewProductDTO(p *models.Product) *ProductDTO {
	if p == nil {
		return nil
	}
	images := make([]string, 0, len(p.Images))
	images = append(images, p.Images...)

	return &ProductDTO{
		ID:          p.ID,
		SellerID:    p.SellerID,
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category.String(),
		Condition:   p.Condition.String(),
		PriceCents:  p.PriceCents,
		Images:      images,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
