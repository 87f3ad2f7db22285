package snaps

import (
	"errors"
	"net/http"

	"collection-app/database"
	"collection-app/internal/apierror"
	"collection-app/internal/app/http/middleware"
	"collection-app/internal/domain/collections"
	"collection-app/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func snapID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apierror.Malformed("id must be a valid UUID")
	}
	return id, nil
}

// POST /snaps/:id/likes
//
// Records the caller's opinion of a snap. Liking twice updates the
// existing row, so flipping like to dislike is a plain re-post.
func LikeSnap(c *gin.Context) {
	id, err := snapID(c)
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	var in LikeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		apierror.Abort(c, apierror.Bad(err))
		return
	}

	var snap collections.Snap
	if err := database.DB.Select("id").First(&snap, "id = ?", id).Error; err != nil {
		apierror.Abort(c, err)
		return
	}

	uid := middleware.UserID(c)
	var like collections.Like
	err = database.DB.Where("snap_id = ? AND user_id = ?", id, uid).First(&like).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		like = collections.Like{SnapID: id, UserID: uid}
	case err != nil:
		apierror.Abort(c, err)
		return
	}

	like.Liked = *in.Liked
	if err := database.DB.Omit("Snap", "User").Save(&like).Error; err != nil {
		apierror.Abort(c, err)
		return
	}

	var user users.User
	if err := database.DB.First(&user, "id = ?", uid).Error; err != nil {
		apierror.Abort(c, err)
		return
	}
	like.User = &user

	c.JSON(http.StatusOK, ToLikeResponse(c, &like))
}

// GET /snaps/:id/like
func GetMyLike(c *gin.Context) {
	id, err := snapID(c)
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	like, err := likeRepo().First(c.Request.Context(),
		"likes.snap_id = ? AND likes.user_id = ?", id, middleware.UserID(c))
	if err != nil {
		apierror.Abort(c, err)
		return
	}
	c.JSON(http.StatusOK, ToLikeResponse(c, like))
}

// DELETE /snaps/:id/like
func DeleteMyLike(c *gin.Context) {
	id, err := snapID(c)
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	res := database.DB.Where("snap_id = ? AND user_id = ?", id, middleware.UserID(c)).
		Delete(&collections.Like{})
	if res.Error != nil {
		apierror.Abort(c, res.Error)
		return
	}
	if res.RowsAffected == 0 {
		apierror.Abort(c, apierror.NotFound())
		return
	}
	c.Status(http.StatusNoContent)
}
