package users

import (
	"collection-app/internal/domain/users"
	"collection-app/internal/infra/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	Username   string    `json:"username"`
	PictureURL *string   `json:"picture_url"`
}

// ToUserResponse is the public shape of a user, shared by every resource
// that embeds its creator/owner.
func ToUserResponse(c *gin.Context, u *users.User) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		PictureURL: storage.SignedURL(c.Request.Context(), u.PictureObjectName),
	}
}

type MeResponse struct {
	UserResponse
	Email        string `json:"email"`
	AuthProvider string `json:"auth_provider"`
}
