package categories

import (
	"context"
	"testing"

	"github.com/angelmondragon/minicommerce-backend/pkg/db/dbtest"
	"github.com/angelmondragon/minicommerce-backend/pkg/db/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestRepositoryHasProducts(t *testing.T) {
	client := dbtest.New(t)
	repo := NewRepository(client.DB())
	ctx := context.Background()

	empty, err := repo.Create(ctx, &models.Category{Name: "Empty", Slug: "empty"})
	require.NoError(t, err)
	used, err := repo.Create(ctx, &models.Category{Name: "Used", Slug: "used"})
	require.NoError(t, err)

	require.NoError(t, client.DB().Create(&models.Product{
		Name:       "Boot",
		SKU:        "BOOT-1",
		Price:      decimal.RequireFromString("10.00"),
		Stock:      1,
		CategoryID: used.ID,
	}).Error)

	has, err := repo.HasProducts(ctx, used.ID)
	require.NoError(t, err)
	require.True(t, has)

	has, err = repo.HasProducts(ctx, empty.ID)
	require.NoError(t, err)
	require.False(t, has)
}

func TestServiceDeleteAgainstSQLite(t *testing.T) {
	client := dbtest.New(t)
	repo := NewRepository(client.DB())
	svc, err := NewService(repo, client)
	require.NoError(t, err)
	ctx := context.Background()

	category, err := svc.Create(ctx, "Winter Jacket")
	require.NoError(t, err)

	found, err := repo.FindBySlug(ctx, "winter-jacket")
	require.NoError(t, err)
	require.Equal(t, category.ID, found.ID)

	require.NoError(t, svc.Delete(ctx, category.ID))

	_, err = svc.Get(ctx, category.ID)
	require.Error(t, err)
}
