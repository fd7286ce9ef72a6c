package users

import (
	"time"

	"github.com/angelmondragon/minicommerce-backend/pkg/db/models"
)

// UserDTO is the transport shape for a user.
type UserDTO struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UserInput carries the writable user fields for create and update.
type UserInput struct {
	Name  string
	Email string
}

// ListResult is one page of users.
type ListResult struct {
	Items      []UserDTO
	NextCursor string
}

// FromModel maps a persisted user to its transport shape.
func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (in UserInput) toModel() *models.User {
	return &models.User{
		Name:  in.Name,
		Email: in.Email,
	}
}
