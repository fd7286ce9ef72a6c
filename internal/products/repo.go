package products

import (
	"context"

	"github.com/angelmondragon/minicommerce-backend/internal/repo"
	"github.com/angelmondragon/minicommerce-backend/pkg/db/models"
	"github.com/angelmondragon/minicommerce-backend/pkg/pagination"
	"gorm.io/gorm"
)

type listQuery struct {
	categoryID *int64
	window     pagination.Window
}

// Repository exposes product persistence.
type Repository struct {
	repo.Base
}

// NewRepository constructs a products repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Create inserts a product.
func (r *Repository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.DB(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// FindByID loads a product by primary key.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.DB(ctx).First(&product, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// SKUExists reports whether a product already uses sku.
func (r *Repository) SKUExists(ctx context.Context, sku string) (bool, error) {
	var count int64
	if err := r.DB(ctx).Model(&models.Product{}).Where("sku = ?", sku).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CategoryExists reports whether the referenced category is present.
func (r *Repository) CategoryExists(ctx context.Context, id int64) (bool, error) {
	return r.Exists(ctx, &models.Category{}, id)
}

// List returns products ordered by id, optionally filtered by category.
func (r *Repository) List(ctx context.Context, q listQuery) ([]models.Product, error) {
	db := r.DB(ctx)
	if q.categoryID != nil {
		db = db.Where("category_id = ?", *q.categoryID)
	}

	var rows []models.Product
	if err := repo.Paginate(db, q.window).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
