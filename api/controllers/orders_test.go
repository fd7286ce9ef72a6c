package controllers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/minicommerce-backend/internal/orders"
	pkgerrors "github.com/angelmondragon/minicommerce-backend/pkg/errors"
	"github.com/angelmondragon/minicommerce-backend/pkg/logger"
)

type stubOrdersService struct {
	placed     *orders.PlaceOrderInput
	listParams *orders.ListParams
	patchedID  int64
	status     string
	err        error
}

func (s *stubOrdersService) Place(ctx context.Context, input orders.PlaceOrderInput) (*orders.OrderDTO, error) {
	s.placed = &input
	if s.err != nil {
		return nil, s.err
	}
	return &orders.OrderDTO{ID: 1, UserID: input.UserID, Status: "CREATED"}, nil
}

func (s *stubOrdersService) Get(ctx context.Context, id int64) (*orders.OrderDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &orders.OrderDTO{ID: id, Status: "CREATED"}, nil
}

func (s *stubOrdersService) List(ctx context.Context, params orders.ListParams) (*orders.ListResult, error) {
	s.listParams = &params
	return &orders.ListResult{Items: []orders.OrderDTO{}, NextCursor: "next"}, nil
}

func (s *stubOrdersService) PatchStatus(ctx context.Context, id int64, status string) (*orders.OrderDTO, error) {
	s.patchedID = id
	s.status = status
	if s.err != nil {
		return nil, s.err
	}
	return &orders.OrderDTO{ID: id}, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func withRouteParam(req *http.Request, key, value string) *http.Request {
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestPlaceOrder(t *testing.T) {
	logg := testLogger()

	t.Run("success", func(t *testing.T) {
		stub := &stubOrdersService{}
		body := `{"userId":3,"items":[{"productId":7,"quantity":2}]}`
		req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(body))
		rec := httptest.NewRecorder()
		PlaceOrder(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.placed == nil || stub.placed.UserID != 3 || len(stub.placed.Items) != 1 || stub.placed.Items[0].Quantity != 2 {
			t.Fatalf("unexpected input forwarded: %+v", stub.placed)
		}
	})

	t.Run("empty items", func(t *testing.T) {
		stub := &stubOrdersService{}
		req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{"userId":3,"items":[]}`))
		rec := httptest.NewRecorder()
		PlaceOrder(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if stub.placed != nil {
			t.Fatalf("service should not be called on invalid payload")
		}
	})

	t.Run("zero quantity", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{"userId":3,"items":[{"productId":7,"quantity":0}]}`))
		rec := httptest.NewRecorder()
		PlaceOrder(&stubOrdersService{}, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "items[0].quantity") {
			t.Fatalf("expected field path in details, got %s", rec.Body.String())
		}
	})

	t.Run("insufficient stock", func(t *testing.T) {
		stub := &stubOrdersService{err: pkgerrors.New(pkgerrors.CodeStateConflict, "insufficient stock")}
		req := httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{"userId":3,"items":[{"productId":7,"quantity":20}]}`))
		rec := httptest.NewRecorder()
		PlaceOrder(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})
}

func TestPatchOrderStatus(t *testing.T) {
	logg := testLogger()

	t.Run("invalid id", func(t *testing.T) {
		stub := &stubOrdersService{}
		req := withRouteParam(httptest.NewRequest(http.MethodPatch, "/api/orders/x", strings.NewReader(`{"status":"PAID"}`)), "orderId", "x")
		rec := httptest.NewRecorder()
		PatchOrderStatus(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if stub.patchedID != 0 {
			t.Fatalf("service should not be called")
		}
	})

	t.Run("forwards status", func(t *testing.T) {
		stub := &stubOrdersService{}
		req := withRouteParam(httptest.NewRequest(http.MethodPatch, "/api/orders/12", strings.NewReader(`{"status":"PAID"}`)), "orderId", "12")
		rec := httptest.NewRecorder()
		PatchOrderStatus(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if stub.patchedID != 12 || stub.status != "PAID" {
			t.Fatalf("unexpected forwarded values id=%d status=%q", stub.patchedID, stub.status)
		}
	})

	t.Run("terminal order", func(t *testing.T) {
		stub := &stubOrdersService{err: pkgerrors.New(pkgerrors.CodeConflict, "order is already CANCELLED")}
		req := withRouteParam(httptest.NewRequest(http.MethodPatch, "/api/orders/12", strings.NewReader(`{"status":"PAID"}`)), "orderId", "12")
		rec := httptest.NewRecorder()
		PatchOrderStatus(stub, logg).ServeHTTP(rec, req)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
	})
}

func TestListOrdersParsesFilters(t *testing.T) {
	stub := &stubOrdersService{}
	req := httptest.NewRequest(http.MethodGet, "/api/orders?userId=4&limit=5", nil)
	rec := httptest.NewRecorder()
	ListOrders(stub, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if stub.listParams == nil || stub.listParams.UserID == nil || *stub.listParams.UserID != 4 || stub.listParams.Page.Limit != 5 {
		t.Fatalf("unexpected list params %+v", stub.listParams)
	}
	if rec.Header().Get("X-Next-Cursor") != "next" {
		t.Fatalf("expected next cursor header")
	}

	rec = httptest.NewRecorder()
	ListOrders(stub, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/orders?userId=abc", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad userId, got %d", rec.Code)
	}
}
