package pendingitems

import (
	"time"

	"collection-app/internal/api/users"
	"collection-app/internal/domain/collections"
	"collection-app/internal/infra/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PendingItemInput carries the same fields as an item payload; a proposal
// is an item waiting for the collection creator's decision.
type PendingItemInput struct {
	Name           string         `json:"name" binding:"required,max=255"`
	Description    string         `json:"description" binding:"required,max=255"`
	ObjectName     string         `json:"object_name" binding:"required,max=255"`
	DominantColors datatypes.JSON `json:"dominant_colors"`
}

func (in PendingItemInput) Apply(m *collections.PendingItem) {
	m.Name = in.Name
	m.Description = in.Description
	objectName := in.ObjectName
	m.ObjectName = &objectName
	if in.DominantColors != nil {
		m.DominantColors = in.DominantColors
	}
}

type PendingItemResponse struct {
	ID             uuid.UUID                 `json:"id"`
	Name           string                    `json:"name"`
	Description    string                    `json:"description"`
	ObjectName     *string                   `json:"object_name"`
	PresignedURL   *string                   `json:"presigned_url"`
	DominantColors datatypes.JSON            `json:"dominant_colors"`
	Status         collections.PendingStatus `json:"status"`
	CreatedAt      time.Time                 `json:"created_at"`
	Creator        *users.UserResponse       `json:"creator"`
}

func ToPendingItemResponse(c *gin.Context, m *collections.PendingItem) *PendingItemResponse {
	return &PendingItemResponse{
		ID:             m.ID,
		Name:           m.Name,
		Description:    m.Description,
		ObjectName:     m.ObjectName,
		PresignedURL:   storage.SignedURL(c.Request.Context(), m.ObjectName),
		DominantColors: m.DominantColors,
		Status:         m.Status,
		CreatedAt:      m.CreatedAt,
		Creator:        users.ToUserResponse(c, m.Creator),
	}
}
