package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/angelmondragon/minicommerce-backend/pkg/db"
	"github.com/angelmondragon/minicommerce-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/minicommerce-backend/pkg/errors"
	"github.com/angelmondragon/minicommerce-backend/pkg/pagination"
	"gorm.io/gorm"
)

const priceScale = 2

type productsRepository interface {
	Create(ctx context.Context, product *models.Product) (*models.Product, error)
	FindByID(ctx context.Context, id int64) (*models.Product, error)
	SKUExists(ctx context.Context, sku string) (bool, error)
	CategoryExists(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, q listQuery) ([]models.Product, error)
}

// Service exposes the product catalog.
type Service interface {
	Create(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	Get(ctx context.Context, id int64) (*ProductDTO, error)
	List(ctx context.Context, params ListParams) (*ListResult, error)
}

type service struct {
	repo productsRepository
}

// NewService builds a product service backed by the provided repository.
func NewService(repo productsRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("products repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.SKU = strings.TrimSpace(input.SKU)
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	ok, err := s.repo.CategoryExists(ctx, input.CategoryID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup category")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}

	taken, err := s.repo.SKUExists(ctx, input.SKU)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup sku")
	}
	if taken {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "sku already exists")
	}

	created, err := s.repo.Create(ctx, input.toModel())
	if err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "sku already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return FromModel(created), nil
}

func validateCreate(input CreateProductInput) error {
	details := map[string]string{}
	if input.Name == "" {
		details["name"] = "is required"
	}
	if input.SKU == "" {
		details["sku"] = "is required"
	}
	if input.Price.IsNegative() {
		details["price"] = "must be at least 0"
	} else if !input.Price.Equal(input.Price.Round(priceScale)) {
		details["price"] = "must have at most two decimal places"
	}
	if input.Stock < 0 {
		details["stock"] = "must be at least 0"
	}
	if input.CategoryID <= 0 {
		details["categoryId"] = "is required"
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return nil
}

func (s *service) Get(ctx context.Context, id int64) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup product")
	}
	return FromModel(product), nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	window, err := params.Page.Window()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	rows, err := s.repo.List(ctx, listQuery{categoryID: params.CategoryID, window: window})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	rows, next := pagination.Page(rows, params.Page, func(p models.Product) int64 { return p.ID })
	items := make([]ProductDTO, 0, len(rows))
	for i := range rows {
		items = append(items, *FromModel(&rows[i]))
	}
	return &ListResult{Items: items, NextCursor: next}, nil
}
