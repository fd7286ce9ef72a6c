package products

import (
	"context"
	"testing"

	"github.com/angelmondragon/minicommerce-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/minicommerce-backend/pkg/errors"
	"github.com/angelmondragon/minicommerce-backend/pkg/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type stubProductsRepo struct {
	categories map[int64]bool
	skus       map[string]bool
	products   map[int64]*models.Product
	created    *models.Product
	lastQuery  listQuery
}

func newStubProductsRepo() *stubProductsRepo {
	return &stubProductsRepo{
		categories: map[int64]bool{1: true},
		skus:       map[string]bool{},
		products:   map[int64]*models.Product{},
	}
}

func (s *stubProductsRepo) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	product.ID = int64(len(s.products) + 1)
	s.products[product.ID] = product
	s.skus[product.SKU] = true
	s.created = product
	return product, nil
}

func (s *stubProductsRepo) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	if p, ok := s.products[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubProductsRepo) SKUExists(ctx context.Context, sku string) (bool, error) {
	return s.skus[sku], nil
}

func (s *stubProductsRepo) CategoryExists(ctx context.Context, id int64) (bool, error) {
	return s.categories[id], nil
}

func (s *stubProductsRepo) List(ctx context.Context, q listQuery) ([]models.Product, error) {
	s.lastQuery = q
	rows := []models.Product{}
	for id := int64(1); id <= int64(len(s.products)); id++ {
		p := s.products[id]
		if q.categoryID != nil && p.CategoryID != *q.categoryID {
			continue
		}
		rows = append(rows, *p)
	}
	return rows, nil
}

func validInput() CreateProductInput {
	return CreateProductInput{
		Name:       " Winter Jacket ",
		SKU:        " WJ-001 ",
		Price:      decimal.RequireFromString("199.90"),
		Stock:      10,
		CategoryID: 1,
	}
}

func newTestService(t *testing.T, repo *stubProductsRepo) Service {
	t.Helper()
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestCreateProduct(t *testing.T) {
	repo := newStubProductsRepo()
	svc := newTestService(t, repo)

	product, err := svc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if product.Name != "Winter Jacket" || product.SKU != "WJ-001" {
		t.Fatalf("expected trimmed fields, got %+v", product)
	}
	if !product.Price.Equal(decimal.RequireFromString("199.9")) {
		t.Fatalf("unexpected price %s", product.Price)
	}
}

func TestCreateProductMissingCategory(t *testing.T) {
	svc := newTestService(t, newStubProductsRepo())
	input := validInput()
	input.CategoryID = 99

	_, err := svc.Create(context.Background(), input)
	if !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreateProductDuplicateSKU(t *testing.T) {
	repo := newStubProductsRepo()
	repo.skus["WJ-001"] = true
	svc := newTestService(t, repo)

	_, err := svc.Create(context.Background(), validInput())
	if !pkgerrors.IsCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestCreateProductValidation(t *testing.T) {
	svc := newTestService(t, newStubProductsRepo())

	mutations := map[string]func(*CreateProductInput){
		"blank name":     func(in *CreateProductInput) { in.Name = "  " },
		"blank sku":      func(in *CreateProductInput) { in.SKU = "" },
		"negative price": func(in *CreateProductInput) { in.Price = decimal.NewFromInt(-1) },
		"sub-cent price": func(in *CreateProductInput) { in.Price = decimal.RequireFromString("1.999") },
		"negative stock": func(in *CreateProductInput) { in.Stock = -1 },
		"no category":    func(in *CreateProductInput) { in.CategoryID = 0 },
	}
	for name, mutate := range mutations {
		input := validInput()
		mutate(&input)
		if _, err := svc.Create(context.Background(), input); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
			t.Fatalf("%s: expected validation error, got %v", name, err)
		}
	}
}

func TestGetAndListProducts(t *testing.T) {
	repo := newStubProductsRepo()
	repo.categories[2] = true
	svc := newTestService(t, repo)
	ctx := context.Background()

	first, err := svc.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	other := validInput()
	other.SKU = "HAT-1"
	other.CategoryID = 2
	if _, err := svc.Create(ctx, other); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.Get(ctx, first.ID)
	if err != nil || got.SKU != "WJ-001" {
		t.Fatalf("unexpected get %+v err=%v", got, err)
	}
	if _, err := svc.Get(ctx, 404); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	categoryID := int64(2)
	list, err := svc.List(ctx, ListParams{CategoryID: &categoryID})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Items) != 1 || list.Items[0].SKU != "HAT-1" {
		t.Fatalf("unexpected filtered list %+v", list.Items)
	}
	if repo.lastQuery.categoryID == nil || *repo.lastQuery.categoryID != 2 {
		t.Fatalf("expected category filter to reach the repository")
	}

	list, err = svc.List(ctx, ListParams{Page: pagination.Params{Limit: 1}})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Items) != 1 || list.NextCursor == "" {
		t.Fatalf("expected paged list with cursor, got %+v", list)
	}
}
