package orders

import (
	"context"

	"github.com/angelmondragon/minicommerce-backend/internal/repo"
	"github.com/angelmondragon/minicommerce-backend/pkg/db/models"
	"github.com/angelmondragon/minicommerce-backend/pkg/enums"
	"github.com/angelmondragon/minicommerce-backend/pkg/pagination"
	"gorm.io/gorm"
)

type listQuery struct {
	userID *int64
	window pagination.Window
}

// Repository defines persistence operations for orders and the stock they reserve.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	UserExists(ctx context.Context, userID int64) (bool, error)
	FindProduct(ctx context.Context, productID int64) (*models.Product, error)
	DecrementStock(ctx context.Context, productID int64, quantity int) (bool, error)
	IncrementStock(ctx context.Context, productID int64, quantity int) error
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	FindByID(ctx context.Context, id int64) (*models.Order, error)
	List(ctx context.Context, q listQuery) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id int64, from, to enums.OrderStatus) (bool, error)
}

type repository struct {
	repo.Base
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{Base: repo.NewBase(tx)}
}

func (r *repository) UserExists(ctx context.Context, userID int64) (bool, error) {
	return r.Exists(ctx, &models.User{}, userID)
}

func (r *repository) FindProduct(ctx context.Context, productID int64) (*models.Product, error) {
	var product models.Product
	if err := r.DB(ctx).First(&product, "id = ?", productID).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// DecrementStock removes quantity units only while enough stock remains, so two
// orders racing for the last units cannot both succeed.
func (r *repository) DecrementStock(ctx context.Context, productID int64, quantity int) (bool, error) {
	res := r.DB(ctx).
		Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repository) IncrementStock(ctx context.Context, productID int64, quantity int) error {
	return r.DB(ctx).
		Model(&models.Product{}).
		Where("id = ?", productID).
		Update("stock", gorm.Expr("stock + ?", quantity)).Error
}

func (r *repository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.DB(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) FindByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	err := r.DB(ctx).
		Preload("Items", orderItemsByID).
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) List(ctx context.Context, q listQuery) ([]models.Order, error) {
	db := r.DB(ctx).Preload("Items", orderItemsByID)
	if q.userID != nil {
		db = db.Where("user_id = ?", *q.userID)
	}

	var rows []models.Order
	if err := repo.Paginate(db, q.window).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateStatus compares and sets: it reports false when the order no longer
// has status from.
func (r *repository) UpdateStatus(ctx context.Context, id int64, from, to enums.OrderStatus) (bool, error) {
	res := r.DB(ctx).
		Model(&models.Order{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func orderItemsByID(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}
