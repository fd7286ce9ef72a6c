package models

import (
	"time"

	"github.com/angelmondragon/minicommerce-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// Order is a customer purchase. Items are written together with the order and never change.
type Order struct {
	ID        int64             `gorm:"column:id;primaryKey;autoIncrement"`
	UserID    int64             `gorm:"column:user_id;not null;index:idx_orders_user_id"`
	Status    enums.OrderStatus `gorm:"column:status;type:varchar(20);not null"`
	Total     decimal.Decimal   `gorm:"column:total;type:numeric(12,2);not null"`
	Items     []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// OrderItem is one product line of an order, with the unit price captured at placement.
type OrderItem struct {
	ID        int64           `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID   int64           `gorm:"column:order_id;not null;index:idx_order_items_order_id"`
	ProductID int64           `gorm:"column:product_id;not null"`
	Quantity  int             `gorm:"column:quantity;not null"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2);not null"`
}
