package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/minicommerce-backend/api/responses"
	"github.com/angelmondragon/minicommerce-backend/api/validators"
	"github.com/angelmondragon/minicommerce-backend/internal/products"
	"github.com/angelmondragon/minicommerce-backend/pkg/logger"
)

// Price accepts a JSON number or string ("19.90").
type createProductRequest struct {
	Name       string           `json:"name" validate:"required,max=200"`
	SKU        string           `json:"sku" validate:"required,max=64"`
	Price      *decimal.Decimal `json:"price" validate:"required"`
	Stock      *int             `json:"stock" validate:"required,min=0"`
	CategoryID int64            `json:"categoryId" validate:"required,gt=0"`
}

func (p *createProductRequest) Sanitize() {
	p.Name = validators.SanitizeString(p.Name, 0)
	p.SKU = validators.SanitizeString(p.SKU, 0)
}

func (p createProductRequest) toCreateInput() products.CreateProductInput {
	return products.CreateProductInput{
		Name:       p.Name,
		SKU:        p.SKU,
		Price:      *p.Price,
		Stock:      *p.Stock,
		CategoryID: p.CategoryID,
	}
}

func CreateProduct(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Create(r.Context(), payload.toCreateInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, product)
	}
}

func GetProduct(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCacheable(w, r, product)
	}
}

// ListProducts lists products, optionally narrowed by ?categoryId.
func ListProducts(svc products.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := validators.ParseOptionalID(r, "categoryId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		page, err := validators.ParsePage(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), products.ListParams{CategoryID: categoryID, Page: page})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteList(w, result.Items, result.NextCursor)
	}
}
