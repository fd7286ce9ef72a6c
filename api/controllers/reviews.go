package controllers

import (
	"net/http"

	"github.com/angelmondragon/minicommerce-backend/api/responses"
	"github.com/angelmondragon/minicommerce-backend/api/validators"
	"github.com/angelmondragon/minicommerce-backend/internal/reviews"
	"github.com/angelmondragon/minicommerce-backend/pkg/logger"
)

type createReviewRequest struct {
	UserID    int64   `json:"userId" validate:"required,gt=0"`
	ProductID int64   `json:"productId" validate:"required,gt=0"`
	Rating    int     `json:"rating" validate:"min=1,max=5"`
	Comment   *string `json:"comment,omitempty" validate:"omitempty,max=600"`
}

func (p createReviewRequest) toCreateInput() reviews.CreateReviewInput {
	return reviews.CreateReviewInput{
		UserID:    p.UserID,
		ProductID: p.ProductID,
		Rating:    p.Rating,
		Comment:   p.Comment,
	}
}

type patchReviewRequest struct {
	Rating  *int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Comment *string `json:"comment,omitempty" validate:"omitempty,max=600"`
}

func CreateReview(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createReviewRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		review, err := svc.Create(r.Context(), payload.toCreateInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCreated(w, review)
	}
}

func GetReview(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "reviewId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		review, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteCacheable(w, r, review)
	}
}

// ListReviews lists reviews, optionally narrowed by ?productId.
func ListReviews(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.ParseOptionalID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		page, err := validators.ParsePage(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), reviews.ListParams{ProductID: productID, Page: page})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteList(w, result.Items, result.NextCursor)
	}
}

// PatchReview updates rating and/or comment; omitted fields stay as they are.
func PatchReview(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "reviewId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload patchReviewRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := entityContext(r.Context(), logg, "review", id)
		review, err := svc.Patch(ctx, id, reviews.PatchReviewInput{Rating: payload.Rating, Comment: payload.Comment})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, review)
	}
}

func DeleteReview(svc reviews.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "reviewId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}
