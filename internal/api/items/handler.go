package items

import (
	"net/http"

	"collection-app/internal/api/snaps"
	"collection-app/internal/apierror"
	"collection-app/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GET /items/:id/snap
//
// Returns the caller's own snap of the item, 404 when they have not
// posted one.
func GetMySnap(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierror.Abort(c, apierror.Malformed("id must be a valid UUID"))
		return
	}

	snap, err := snapRepo().First(c.Request.Context(),
		"snaps.item_id = ? AND snaps.user_id = ?", id, middleware.UserID(c))
	if err != nil {
		apierror.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, snaps.ToSnapResponse(c, snap))
}
