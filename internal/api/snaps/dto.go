package snaps

import (
	"time"

	usersapi "collection-app/internal/api/users"
	"collection-app/internal/domain/collections"
	"collection-app/internal/infra/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SnapInput struct {
	Comment        string         `json:"comment" binding:"required,max=255"`
	ObjectName     string         `json:"object_name" binding:"required,max=255"`
	DominantColors datatypes.JSON `json:"dominant_colors"`
}

func (in SnapInput) Apply(m *collections.Snap) {
	m.Comment = in.Comment
	m.ObjectName = in.ObjectName
	if in.DominantColors != nil {
		m.DominantColors = in.DominantColors
	}
}

type SnapResponse struct {
	ID             uuid.UUID              `json:"id"`
	Comment        string                 `json:"comment"`
	ObjectName     string                 `json:"object_name"`
	PresignedURL   *string                `json:"presigned_url"`
	DominantColors datatypes.JSON         `json:"dominant_colors"`
	CreatedAt      time.Time              `json:"created_at"`
	User           *usersapi.UserResponse `json:"user"`
	NbLikes        int64                  `json:"nb_likes"`
	NbDislikes     int64                  `json:"nb_dislikes"`
}

func ToSnapResponse(c *gin.Context, m *collections.Snap) *SnapResponse {
	objectName := m.ObjectName
	return &SnapResponse{
		ID:             m.ID,
		Comment:        m.Comment,
		ObjectName:     m.ObjectName,
		PresignedURL:   storage.SignedURL(c.Request.Context(), &objectName),
		DominantColors: m.DominantColors,
		CreatedAt:      m.CreatedAt,
		User:           usersapi.ToUserResponse(c, m.User),
		NbLikes:        m.NbLikes,
		NbDislikes:     m.NbDislikes,
	}
}

// LikeInput binds liked as a pointer so an explicit false still satisfies
// the required check.
type LikeInput struct {
	Liked *bool `json:"liked" binding:"required"`
}

type LikeResponse struct {
	ID    uint                   `json:"id"`
	Liked bool                   `json:"liked"`
	User  *usersapi.UserResponse `json:"user"`
}

func ToLikeResponse(c *gin.Context, m *collections.Like) *LikeResponse {
	return &LikeResponse{
		ID:    m.ID,
		Liked: m.Liked,
		User:  usersapi.ToUserResponse(c, m.User),
	}
}
