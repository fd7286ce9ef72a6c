package categories

import (
	"time"

	"github.com/angelmondragon/minicommerce-backend/pkg/db/models"
)

// CategoryDTO is the transport shape for a category.
type CategoryDTO struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListResult is one page of categories.
type ListResult struct {
	Items      []CategoryDTO
	NextCursor string
}

// FromModel maps a persisted category to its transport shape.
func FromModel(c *models.Category) *CategoryDTO {
	if c == nil {
		return nil
	}
	return &CategoryDTO{
		ID:        c.ID,
		Name:      c.Name,
		Slug:      c.Slug,
		CreatedAt: c.CreatedAt,
	}
}
