package repo

import (
	"context"

	"github.com/angelmondragon/minicommerce-backend/pkg/pagination"
	"gorm.io/gorm"
)

// Base provides a shared foundation for domain repositories.
type Base struct {
	db *gorm.DB
}

// NewBase constructs a Base repository backed by the provided GORM connection.
func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB returns the GORM connection bound to the supplied context (if any).
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}

// Exists reports whether a row of model matches the given primary key.
func (b Base) Exists(ctx context.Context, model any, id int64) (bool, error) {
	var count int64
	if err := b.DB(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Paginate orders by id and applies the keyset window.
func Paginate(q *gorm.DB, w pagination.Window) *gorm.DB {
	q = q.Order("id ASC")
	if w.AfterID > 0 {
		q = q.Where("id > ?", w.AfterID)
	}
	if w.Limit > 0 {
		q = q.Limit(w.Limit)
	}
	return q
}
