package reviews

import (
	"context"

	"github.com/angelmondragon/minicommerce-backend/internal/repo"
	"github.com/angelmondragon/minicommerce-backend/pkg/db/models"
	"github.com/angelmondragon/minicommerce-backend/pkg/pagination"
	"gorm.io/gorm"
)

type listQuery struct {
	productID *int64
	window    pagination.Window
}

// Repository persists reviews and checks the rows they reference.
type Repository struct {
	repo.Base
}

// NewRepository constructs a reviews repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) UserExists(ctx context.Context, userID int64) (bool, error) {
	return r.Exists(ctx, &models.User{}, userID)
}

func (r *Repository) ProductExists(ctx context.Context, productID int64) (bool, error) {
	return r.Exists(ctx, &models.Product{}, productID)
}

func (r *Repository) Create(ctx context.Context, review *models.Review) (*models.Review, error) {
	if err := r.DB(ctx).Create(review).Error; err != nil {
		return nil, err
	}
	return review, nil
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Review, error) {
	var review models.Review
	if err := r.DB(ctx).First(&review, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *Repository) List(ctx context.Context, q listQuery) ([]models.Review, error) {
	db := r.DB(ctx)
	if q.productID != nil {
		db = db.Where("product_id = ?", *q.productID)
	}

	var rows []models.Review
	if err := repo.Paginate(db, q.window).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Update writes rating and comment, including a nil comment.
func (r *Repository) Update(ctx context.Context, review *models.Review) error {
	return r.DB(ctx).
		Model(review).
		Select("rating", "comment", "updated_at").
		Updates(review).Error
}

func (r *Repository) Delete(ctx context.Context, id int64) (int64, error) {
	res := r.DB(ctx).Delete(&models.Review{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
