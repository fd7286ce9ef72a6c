package products

import (
	"time"

	"github.com/angelmondragon/minicommerce-backend/pkg/db/models"
	"github.com/angelmondragon/minicommerce-backend/pkg/pagination"
	"github.com/angelmondragon/minicommerce-backend/pkg/types"
	"github.com/shopspring/decimal"
)

// ProductDTO is the transport shape for a product.
type ProductDTO struct {
	ID         int64       `json:"id"`
	Name       string      `json:"name"`
	SKU        string      `json:"sku"`
	Price      types.Money `json:"price"`
	Stock      int         `json:"stock"`
	CategoryID int64       `json:"categoryId"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// CreateProductInput holds the fields required to list a product.
type CreateProductInput struct {
	Name       string
	SKU        string
	Price      decimal.Decimal
	Stock      int
	CategoryID int64
}

// ListParams filters and pages product listings.
type ListParams struct {
	CategoryID *int64
	Page       pagination.Params
}

// ListResult is one page of products.
type ListResult struct {
	Items      []ProductDTO
	NextCursor string
}

// FromModel maps a persisted product to its transport shape.
func FromModel(p *models.Product) *ProductDTO {
	if p == nil {
		return nil
	}
	return &ProductDTO{
		ID:         p.ID,
		Name:       p.Name,
		SKU:        p.SKU,
		Price:      types.NewMoney(p.Price),
		Stock:      p.Stock,
		CategoryID: p.CategoryID,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func (in CreateProductInput) toModel() *models.Product {
	return &models.Product{
		Name:       in.Name,
		SKU:        in.SKU,
		Price:      in.Price,
		Stock:      in.Stock,
		CategoryID: in.CategoryID,
	}
}
