package pendingitems

import (
	"net/http"

	"collection-app/database"
	"collection-app/internal/api/items"
	"collection-app/internal/apierror"
	"collection-app/internal/app/http/middleware"
	"collection-app/internal/domain/collections"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func pendingID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apierror.Malformed("id must be a valid UUID")
	}
	return id, nil
}

// PUT /pending-items/:id/accept
func Accept(c *gin.Context) {
	id, err := pendingID(c)
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	var item *collections.Item
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var txErr error
		item, txErr = acceptPending(c.Request.Context(), &gormStore{tx: tx}, id, middleware.UserID(c))
		return txErr
	})
	if err != nil {
		apierror.Abort(c, err)
		return
	}
	c.JSON(http.StatusCreated, items.ToItemResponse(c, item))
}

// PUT /pending-items/:id/refuse
func Refuse(c *gin.Context) {
	id, err := pendingID(c)
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		return refusePending(c.Request.Context(), &gormStore{tx: tx}, id, middleware.UserID(c))
	})
	if err != nil {
		apierror.Abort(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
