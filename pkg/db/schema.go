package db

import (
	"context"
	"fmt"

	"github.com/angelmondragon/minicommerce-backend/pkg/db/models"
)

// AutoMigrate creates or updates the tables from the GORM models. Postgres
// deployments use the goose migrations instead; this serves sqlite and local dev.
func (c *Client) AutoMigrate(ctx context.Context) error {
	if err := c.conn.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrating models: %w", err)
	}
	return nil
}
