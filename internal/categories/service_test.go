package categories

import (
	"context"
	"errors"
	"testing"

	"github.com/angelmondragon/minicommerce-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/minicommerce-backend/pkg/errors"
	"github.com/angelmondragon/minicommerce-backend/pkg/pagination"
	"gorm.io/gorm"
)

type stubTx struct {
	calls int
}

func (s *stubTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	s.calls++
	return fn(nil)
}

type stubCategoriesRepo struct {
	bySlug      map[string]*models.Category
	byID        map[int64]*models.Category
	hasProducts bool
	deleted     []int64
	createErr   error
	deleteErr   error
}

func newStubCategoriesRepo(categories ...*models.Category) *stubCategoriesRepo {
	s := &stubCategoriesRepo{bySlug: map[string]*models.Category{}, byID: map[int64]*models.Category{}}
	for _, c := range categories {
		s.bySlug[c.Slug] = c
		s.byID[c.ID] = c
	}
	return s
}

func (s *stubCategoriesRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubCategoriesRepo) Create(ctx context.Context, category *models.Category) (*models.Category, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	category.ID = int64(len(s.byID) + 1)
	s.byID[category.ID] = category
	s.bySlug[category.Slug] = category
	return category, nil
}

func (s *stubCategoriesRepo) FindByID(ctx context.Context, id int64) (*models.Category, error) {
	if c, ok := s.byID[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCategoriesRepo) FindBySlug(ctx context.Context, slug string) (*models.Category, error) {
	if c, ok := s.bySlug[slug]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubCategoriesRepo) List(ctx context.Context, w pagination.Window) ([]models.Category, error) {
	rows := []models.Category{}
	for id := int64(1); id <= int64(len(s.byID)); id++ {
		if c, ok := s.byID[id]; ok {
			rows = append(rows, *c)
		}
	}
	return rows, nil
}

func (s *stubCategoriesRepo) HasProducts(ctx context.Context, id int64) (bool, error) {
	return s.hasProducts, nil
}

func (s *stubCategoriesRepo) Delete(ctx context.Context, id int64) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func newTestService(t *testing.T, repo *stubCategoriesRepo, tx *stubTx) Service {
	t.Helper()
	svc, err := NewService(repo, tx)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestNewServiceValidatesDeps(t *testing.T) {
	if _, err := NewService(nil, &stubTx{}); err == nil {
		t.Fatal("expected error for nil repo")
	}
	if _, err := NewService(newStubCategoriesRepo(), nil); err == nil {
		t.Fatal("expected error for nil tx runner")
	}
}

func TestCreateDerivesSlug(t *testing.T) {
	svc := newTestService(t, newStubCategoriesRepo(), &stubTx{})

	category, err := svc.Create(context.Background(), "  Winter Jacket ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if category.Name != "Winter Jacket" || category.Slug != "winter-jacket" {
		t.Fatalf("unexpected category %+v", category)
	}
}

func TestCreateRejectsDuplicatesAndBlankNames(t *testing.T) {
	repo := newStubCategoriesRepo(&models.Category{ID: 1, Name: "Winter Jacket", Slug: "winter-jacket"})
	svc := newTestService(t, repo, &stubTx{})
	ctx := context.Background()

	if _, err := svc.Create(ctx, "winter  JACKET"); !pkgerrors.IsCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected conflict for duplicate slug, got %v", err)
	}
	if _, err := svc.Create(ctx, "   "); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation for blank name, got %v", err)
	}
	if _, err := svc.Create(ctx, "!!!"); !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation for slug-less name, got %v", err)
	}
}

func TestDeleteWithProductsConflicts(t *testing.T) {
	repo := newStubCategoriesRepo(&models.Category{ID: 1, Name: "Shoes", Slug: "shoes"})
	repo.hasProducts = true
	tx := &stubTx{}
	svc := newTestService(t, repo, tx)

	err := svc.Delete(context.Background(), 1)
	if !pkgerrors.IsCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if len(repo.deleted) != 0 {
		t.Fatalf("category should not be deleted")
	}
	if tx.calls != 1 {
		t.Fatalf("expected delete to run in a transaction")
	}
}

func TestDeleteWithoutProductsSucceeds(t *testing.T) {
	repo := newStubCategoriesRepo(&models.Category{ID: 1, Name: "Shoes", Slug: "shoes"})
	svc := newTestService(t, repo, &stubTx{})

	if err := svc.Delete(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != 1 {
		t.Fatalf("expected category 1 to be deleted, got %v", repo.deleted)
	}
}

func TestDeleteMissingAndForeignKeyRace(t *testing.T) {
	repo := newStubCategoriesRepo(&models.Category{ID: 1, Name: "Shoes", Slug: "shoes"})
	svc := newTestService(t, repo, &stubTx{})
	ctx := context.Background()

	if err := svc.Delete(ctx, 42); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	repo.deleteErr = errors.New("FOREIGN KEY constraint failed")
	if err := svc.Delete(ctx, 1); !pkgerrors.IsCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected foreign key violation to map to conflict, got %v", err)
	}
}

func TestGetAndList(t *testing.T) {
	repo := newStubCategoriesRepo(
		&models.Category{ID: 1, Name: "Shoes", Slug: "shoes"},
		&models.Category{ID: 2, Name: "Hats", Slug: "hats"},
	)
	svc := newTestService(t, repo, &stubTx{})
	ctx := context.Background()

	got, err := svc.Get(ctx, 2)
	if err != nil || got.Slug != "hats" {
		t.Fatalf("unexpected get result %+v err=%v", got, err)
	}
	if _, err := svc.Get(ctx, 3); !pkgerrors.IsCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	list, err := svc.List(ctx, pagination.Params{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list.Items) != 2 || list.NextCursor != "" {
		t.Fatalf("unexpected list %+v", list)
	}
}
