package controllers

import (
	"net/http"

	"github.com/angelmondragon/minicommerce-backend/api/responses"
	"github.com/angelmondragon/minicommerce-backend/api/validators"
	"github.com/angelmondragon/minicommerce-backend/internal/orders"
	"github.com/angelmondragon/minicommerce-backend/pkg/logger"
)

type placeOrderRequest struct {
	UserID int64              `json:"userId" validate:"required,gt=0"`
	Items  []orderItemRequest `json:"items" validate:"required,min=1,dive"`
}

type orderItemRequest struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"min=1"`
}

func (p placeOrderRequest) toPlaceInput() orders.PlaceOrderInput {
	items := make([]orders.LineInput, 0, len(p.Items))
	for _, item := range p.Items {
		items = append(items, orders.LineInput{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return orders.PlaceOrderInput{UserID: p.UserID, Items: items}
}

type patchOrderRequest struct {
	Status string `json:"status" validate:"required"`
}

// PlaceOrder reserves stock and records a CREATED order.
func PlaceOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload placeOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := entityContext(r.Context(), logg, "user", payload.UserID)
		order, err := svc.Place(ctx, payload.toPlaceInput())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteCreated(w, order)
	}
}

func GetOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCacheable(w, r, order)
	}
}

// ListOrders lists orders, optionally narrowed by ?userId.
func ListOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := validators.ParseOptionalID(r, "userId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		page, err := validators.ParsePage(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), orders.ListParams{UserID: userID, Page: page})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteList(w, result.Items, result.NextCursor)
	}
}

// PatchOrderStatus moves an order to the requested status.
func PatchOrderStatus(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload patchOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := entityContext(r.Context(), logg, "order", id)
		order, err := svc.PatchStatus(ctx, id, payload.Status)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}
