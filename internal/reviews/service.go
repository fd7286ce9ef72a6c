package reviews

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/angelmondragon/minicommerce-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/minicommerce-backend/pkg/errors"
	"github.com/angelmondragon/minicommerce-backend/pkg/pagination"
	"gorm.io/gorm"
)

const (
	MinRating        = 1
	MaxRating        = 5
	MaxCommentLength = 600
)

type reviewsRepository interface {
	UserExists(ctx context.Context, userID int64) (bool, error)
	ProductExists(ctx context.Context, productID int64) (bool, error)
	Create(ctx context.Context, review *models.Review) (*models.Review, error)
	FindByID(ctx context.Context, id int64) (*models.Review, error)
	List(ctx context.Context, q listQuery) ([]models.Review, error)
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id int64) (int64, error)
}

// Service exposes product reviews.
type Service interface {
	Create(ctx context.Context, input CreateReviewInput) (*ReviewDTO, error)
	Get(ctx context.Context, id int64) (*ReviewDTO, error)
	List(ctx context.Context, params ListParams) (*ListResult, error)
	Patch(ctx context.Context, id int64, input PatchReviewInput) (*ReviewDTO, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo reviewsRepository
}

// NewService builds a review service backed by the provided repository.
func NewService(repo reviewsRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("reviews repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateReviewInput) (*ReviewDTO, error) {
	details := map[string]string{}
	if input.UserID <= 0 {
		details["userId"] = "is required"
	}
	if input.ProductID <= 0 {
		details["productId"] = "is required"
	}
	checkRating(details, input.Rating)
	checkComment(details, input.Comment)
	if len(details) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}

	if err := s.mustExist(ctx, s.repo.UserExists, input.UserID, "user"); err != nil {
		return nil, err
	}
	if err := s.mustExist(ctx, s.repo.ProductExists, input.ProductID, "product"); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, input.toModel())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create review")
	}
	return FromModel(created), nil
}

func (s *service) mustExist(ctx context.Context, exists func(context.Context, int64) (bool, error), id int64, entity string) error {
	ok, err := exists(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup "+entity)
	}
	if !ok {
		return pkgerrors.New(pkgerrors.CodeNotFound, entity+" not found")
	}
	return nil
}

func (s *service) Get(ctx context.Context, id int64) (*ReviewDTO, error) {
	review, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(review), nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	window, err := params.Page.Window()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	rows, err := s.repo.List(ctx, listQuery{productID: params.ProductID, window: window})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list reviews")
	}

	rows, next := pagination.Page(rows, params.Page, func(r models.Review) int64 { return r.ID })
	items := make([]ReviewDTO, 0, len(rows))
	for i := range rows {
		items = append(items, *FromModel(&rows[i]))
	}
	return &ListResult{Items: items, NextCursor: next}, nil
}

// Patch applies only the provided fields and re-validates them.
func (s *service) Patch(ctx context.Context, id int64, input PatchReviewInput) (*ReviewDTO, error) {
	details := map[string]string{}
	if input.Rating != nil {
		checkRating(details, *input.Rating)
	}
	checkComment(details, input.Comment)
	if len(details) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}

	review, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Rating != nil {
		review.Rating = *input.Rating
	}
	if input.Comment != nil {
		comment := *input.Comment
		review.Comment = &comment
	}

	if err := s.repo.Update(ctx, review); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update review")
	}
	return FromModel(review), nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete review")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "review not found")
	}
	return nil
}

func (s *service) find(ctx context.Context, id int64) (*models.Review, error) {
	review, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "review not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup review")
	}
	return review, nil
}

func checkRating(details map[string]string, rating int) {
	if rating < MinRating || rating > MaxRating {
		details["rating"] = fmt.Sprintf("must be between %d and %d", MinRating, MaxRating)
	}
}

// Comment length counts characters, not bytes.
func checkComment(details map[string]string, comment *string) {
	if comment != nil && utf8.RuneCountInString(*comment) > MaxCommentLength {
		details["comment"] = fmt.Sprintf("must be at most %d characters", MaxCommentLength)
	}
}
