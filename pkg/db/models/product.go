package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sellable item with on-hand stock.
type Product struct {
	ID         int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Name       string          `gorm:"column:name;type:varchar(200);not null"`
	SKU        string          `gorm:"column:sku;type:varchar(64);not null;uniqueIndex:products_sku_key"`
	Price      decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	Stock      int             `gorm:"column:stock;not null;default:0"`
	CategoryID int64           `gorm:"column:category_id;not null;index:idx_products_category_id"`
	CreatedAt  time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
