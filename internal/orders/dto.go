package orders

import (
	"time"

	"github.com/angelmondragon/minicommerce-backend/pkg/db/models"
	"github.com/angelmondragon/minicommerce-backend/pkg/enums"
	"github.com/angelmondragon/minicommerce-backend/pkg/pagination"
	"github.com/angelmondragon/minicommerce-backend/pkg/types"
	"github.com/shopspring/decimal"
)

// OrderDTO is the transport shape for an order and its lines.
type OrderDTO struct {
	ID        int64             `json:"id"`
	UserID    int64             `json:"userId"`
	Status    enums.OrderStatus `json:"status"`
	Total     types.Money       `json:"total"`
	Items     []OrderItemDTO    `json:"items"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// OrderItemDTO is one order line with the price captured at placement.
type OrderItemDTO struct {
	ID        int64       `json:"id"`
	ProductID int64       `json:"productId"`
	Quantity  int         `json:"quantity"`
	UnitPrice types.Money `json:"unitPrice"`
	LineTotal types.Money `json:"lineTotal"`
}

// PlaceOrderInput describes a new order.
type PlaceOrderInput struct {
	UserID int64
	Items  []LineInput
}

// LineInput requests quantity units of a product.
type LineInput struct {
	ProductID int64
	Quantity  int
}

// ListParams filters and pages order listings.
type ListParams struct {
	UserID *int64
	Page   pagination.Params
}

// ListResult is one page of orders.
type ListResult struct {
	Items      []OrderDTO
	NextCursor string
}

// FromModel maps a persisted order to its transport shape.
func FromModel(o *models.Order) *OrderDTO {
	if o == nil {
		return nil
	}
	items := make([]OrderItemDTO, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemDTO{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: types.NewMoney(item.UnitPrice),
			LineTotal: types.NewMoney(lineTotal(item.UnitPrice, item.Quantity)),
		})
	}
	return &OrderDTO{
		ID:        o.ID,
		UserID:    o.UserID,
		Status:    o.Status,
		Total:     types.NewMoney(o.Total),
		Items:     items,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func lineTotal(unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}
