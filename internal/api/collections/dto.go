package collections

import (
	"time"

	usersapi "collection-app/internal/api/users"
	"collection-app/internal/domain/collections"
	"collection-app/internal/infra/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type CollectionInput struct {
	Name           string         `json:"name" binding:"required,max=255"`
	Description    string         `json:"description" binding:"required,max=255"`
	ObjectName     *string        `json:"object_name" binding:"omitempty,max=255"`
	DominantColors datatypes.JSON `json:"dominant_colors"`
}

func (in CollectionInput) Apply(m *collections.Collection) {
	m.Name = in.Name
	m.Description = in.Description
	if in.ObjectName != nil {
		m.ObjectName = in.ObjectName
	}
	if in.DominantColors != nil {
		m.DominantColors = in.DominantColors
	}
}

type CollectionResponse struct {
	ID             uuid.UUID              `json:"id"`
	Name           string                 `json:"name"`
	Description    string                 `json:"description"`
	ObjectName     *string                `json:"object_name"`
	PresignedURL   *string                `json:"presigned_url"`
	DominantColors datatypes.JSON         `json:"dominant_colors"`
	CreatedAt      time.Time              `json:"created_at"`
	Creator        *usersapi.UserResponse `json:"creator"`
	NbItems        int64                  `json:"nb_items"`
}

func ToCollectionResponse(c *gin.Context, m *collections.Collection) *CollectionResponse {
	return &CollectionResponse{
		ID:             m.ID,
		Name:           m.Name,
		Description:    m.Description,
		ObjectName:     m.ObjectName,
		PresignedURL:   storage.SignedURL(c.Request.Context(), m.ObjectName),
		DominantColors: m.DominantColors,
		CreatedAt:      m.CreatedAt,
		Creator:        usersapi.ToUserResponse(c, m.Creator),
		NbItems:        m.NbItems,
	}
}
