package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/angelmondragon/minicommerce-backend/pkg/db/models"
	"github.com/angelmondragon/minicommerce-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/minicommerce-backend/pkg/errors"
	"github.com/angelmondragon/minicommerce-backend/pkg/metrics"
	"github.com/angelmondragon/minicommerce-backend/pkg/pagination"
	"github.com/angelmondragon/minicommerce-backend/pkg/timing"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes order placement and lifecycle transitions.
type Service interface {
	Place(ctx context.Context, input PlaceOrderInput) (*OrderDTO, error)
	Get(ctx context.Context, id int64) (*OrderDTO, error)
	List(ctx context.Context, params ListParams) (*ListResult, error)
	PatchStatus(ctx context.Context, id int64, status string) (*OrderDTO, error)
}

type service struct {
	repo    Repository
	tx      txRunner
	metrics *metrics.OrderMetrics
}

// NewService builds an order service. A nil metrics recorder disables order metrics.
func NewService(repo Repository, tx txRunner, m *metrics.OrderMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx, metrics: m}, nil
}

func (s *service) Place(ctx context.Context, input PlaceOrderInput) (*OrderDTO, error) {
	defer timing.Start(ctx, "order_place").Stop()

	order, err := s.place(ctx, input)
	if err != nil {
		s.metrics.IncRejected(string(pkgerrors.CodeOf(err)))
		return nil, err
	}
	s.metrics.IncPlaced()
	return FromModel(order), nil
}

func (s *service) place(ctx context.Context, input PlaceOrderInput) (*models.Order, error) {
	if err := validatePlace(input); err != nil {
		return nil, err
	}

	var created *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		ok, err := repo.UserExists(ctx, input.UserID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup user")
		}
		if !ok {
			return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}

		total := decimal.Zero
		lines := make([]models.OrderItem, 0, len(input.Items))
		for _, item := range input.Items {
			product, err := repo.FindProduct(ctx, item.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
						WithDetails(map[string]any{"productId": item.ProductID})
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup product")
			}

			if item.Quantity > product.Stock {
				return insufficientStock(item, product.Stock)
			}
			reserved, err := repo.DecrementStock(ctx, item.ProductID, item.Quantity)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrement stock")
			}
			if !reserved {
				available := 0
				if latest, err := repo.FindProduct(ctx, item.ProductID); err == nil {
					available = latest.Stock
				}
				return insufficientStock(item, available)
			}

			lines = append(lines, models.OrderItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: product.Price,
			})
			total = total.Add(lineTotal(product.Price, item.Quantity))
		}

		order, err := repo.Create(ctx, &models.Order{
			UserID: input.UserID,
			Status: enums.OrderStatusCreated,
			Total:  total,
			Items:  lines,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}
		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func validatePlace(input PlaceOrderInput) error {
	if input.UserID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"userId": "is required"})
	}
	if len(input.Items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").
			WithDetails(map[string]string{"items": "must contain at least one item"})
	}
	details := map[string]string{}
	for i, item := range input.Items {
		if item.ProductID <= 0 {
			details[fmt.Sprintf("items[%d].productId", i)] = "is required"
		}
		if item.Quantity < 1 {
			details[fmt.Sprintf("items[%d].quantity", i)] = "must be at least 1"
		}
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	return nil
}

func insufficientStock(item LineInput, available int) error {
	return pkgerrors.New(pkgerrors.CodeStateConflict, "insufficient stock").WithDetails(map[string]any{
		"productId": item.ProductID,
		"requested": item.Quantity,
		"available": available,
	})
}

func (s *service) Get(ctx context.Context, id int64) (*OrderDTO, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, orderNotFoundOr(err)
	}
	return FromModel(order), nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	window, err := params.Page.Window()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	rows, err := s.repo.List(ctx, listQuery{userID: params.UserID, window: window})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	rows, next := pagination.Page(rows, params.Page, func(o models.Order) int64 { return o.ID })
	items := make([]OrderDTO, 0, len(rows))
	for i := range rows {
		items = append(items, *FromModel(&rows[i]))
	}
	return &ListResult{Items: items, NextCursor: next}, nil
}

// PatchStatus moves an order to status. Repeating the current status is a no-op
// and leaving PAID or CANCELLED is a conflict. The write only applies while the
// order still has the status that was read, so a concurrent patch that lands
// first turns this one into a conflict and its restock is rolled back.
func (s *service) PatchStatus(ctx context.Context, id int64, status string) (*OrderDTO, error) {
	target, err := enums.ParseOrderStatus(status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order status").
			WithDetails(map[string]string{"status": "must be one of CREATED, PAID, CANCELLED"})
	}

	var (
		order *models.Order
		from  enums.OrderStatus
	)
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		current, err := repo.FindByID(ctx, id)
		if err != nil {
			return orderNotFoundOr(err)
		}
		order, from = current, current.Status

		if current.Status == target {
			return nil
		}
		if current.Status.IsTerminal() {
			return pkgerrors.New(pkgerrors.CodeConflict, fmt.Sprintf("order is already %s", current.Status)).
				WithDetails(map[string]any{"from": current.Status, "to": target})
		}

		updated, err := repo.UpdateStatus(ctx, id, current.Status, target)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
		}
		if !updated {
			return pkgerrors.New(pkgerrors.CodeConflict, "order status changed concurrently").
				WithDetails(map[string]any{"from": current.Status, "to": target})
		}

		if target == enums.OrderStatusCancelled {
			for _, item := range current.Items {
				if err := repo.IncrementStock(ctx, item.ProductID, item.Quantity); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "restore stock")
				}
			}
		}
		if order, err = repo.FindByID(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload order")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if from != target {
		s.metrics.IncTransition(from.String(), target.String())
	}
	return FromModel(order), nil
}

func orderNotFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup order")
}
