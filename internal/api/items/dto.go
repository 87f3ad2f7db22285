package items

import (
	"time"

	"collection-app/internal/domain/collections"
	"collection-app/internal/infra/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ItemInput is the payload for creating or replacing an item; pending
// items propose the same shape.
type ItemInput struct {
	Name           string         `json:"name" binding:"required,max=255"`
	Description    string         `json:"description" binding:"required,max=255"`
	ObjectName     string         `json:"object_name" binding:"required,max=255"`
	DominantColors datatypes.JSON `json:"dominant_colors"`
}

func (in ItemInput) Apply(m *collections.Item) {
	m.Name = in.Name
	m.Description = in.Description
	objectName := in.ObjectName
	m.ObjectName = &objectName
	if in.DominantColors != nil {
		m.DominantColors = in.DominantColors
	}
}

type ItemResponse struct {
	ID             uuid.UUID      `json:"id"`
	Name           string         `json:"name"`
	Description    string         `json:"description"`
	ObjectName     *string        `json:"object_name"`
	PresignedURL   *string        `json:"presigned_url"`
	DominantColors datatypes.JSON `json:"dominant_colors"`
	CreatedAt      time.Time      `json:"created_at"`
	NbSnaps        int64          `json:"nb_snaps"`
}

func ToItemResponse(c *gin.Context, m *collections.Item) *ItemResponse {
	return &ItemResponse{
		ID:             m.ID,
		Name:           m.Name,
		Description:    m.Description,
		ObjectName:     m.ObjectName,
		PresignedURL:   storage.SignedURL(c.Request.Context(), m.ObjectName),
		DominantColors: m.DominantColors,
		CreatedAt:      m.CreatedAt,
		NbSnaps:        m.NbSnaps,
	}
}
