package reviews

import (
	"time"

	"github.com/angelmondragon/minicommerce-backend/pkg/db/models"
	"github.com/angelmondragon/minicommerce-backend/pkg/pagination"
)

// ReviewDTO is the transport shape for a review.
type ReviewDTO struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	ProductID int64     `json:"productId"`
	Rating    int       `json:"rating"`
	Comment   *string   `json:"comment,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateReviewInput carries a new review.
type CreateReviewInput struct {
	UserID    int64
	ProductID int64
	Rating    int
	Comment   *string
}

// PatchReviewInput holds the fields to change. Nil fields are left untouched.
type PatchReviewInput struct {
	Rating  *int
	Comment *string
}

// ListParams filters and pages review listings.
type ListParams struct {
	ProductID *int64
	Page      pagination.Params
}

// ListResult is one page of reviews.
type ListResult struct {
	Items      []ReviewDTO
	NextCursor string
}

// FromModel maps a persisted review to its transport shape.
func FromModel(r *models.Review) *ReviewDTO {
	if r == nil {
		return nil
	}
	return &ReviewDTO{
		ID:        r.ID,
		UserID:    r.UserID,
		ProductID: r.ProductID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (in CreateReviewInput) toModel() *models.Review {
	return &models.Review{
		UserID:    in.UserID,
		ProductID: in.ProductID,
		Rating:    in.Rating,
		Comment:   in.Comment,
	}
}
