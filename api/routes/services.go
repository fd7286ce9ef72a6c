package routes

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/angelmondragon/minicommerce-backend/internal/categories"
	"github.com/angelmondragon/minicommerce-backend/internal/orders"
	"github.com/angelmondragon/minicommerce-backend/internal/products"
	"github.com/angelmondragon/minicommerce-backend/internal/reviews"
	"github.com/angelmondragon/minicommerce-backend/internal/users"
	"github.com/angelmondragon/minicommerce-backend/pkg/db"
	"github.com/angelmondragon/minicommerce-backend/pkg/metrics"
)

// Services bundles the domain services the router exposes.
type Services struct {
	Users      users.Service
	Categories categories.Service
	Products   products.Service
	Orders     orders.Service
	Reviews    reviews.Service
}

// NewServices wires every domain service to the database client. Order metrics
// are registered on reg when it is non-nil.
func NewServices(client *db.Client, reg prometheus.Registerer) (Services, error) {
	var (
		svc Services
		err error
	)
	gdb := client.DB()

	if svc.Users, err = users.NewService(users.NewRepository(gdb)); err != nil {
		return Services{}, fmt.Errorf("users service: %w", err)
	}
	if svc.Categories, err = categories.NewService(categories.NewRepository(gdb), client); err != nil {
		return Services{}, fmt.Errorf("categories service: %w", err)
	}
	if svc.Products, err = products.NewService(products.NewRepository(gdb)); err != nil {
		return Services{}, fmt.Errorf("products service: %w", err)
	}
	if svc.Orders, err = orders.NewService(orders.NewRepository(gdb), client, metrics.NewOrderMetrics(reg)); err != nil {
		return Services{}, fmt.Errorf("orders service: %w", err)
	}
	if svc.Reviews, err = reviews.NewService(reviews.NewRepository(gdb)); err != nil {
		return Services{}, fmt.Errorf("reviews service: %w", err)
	}
	return svc, nil
}
