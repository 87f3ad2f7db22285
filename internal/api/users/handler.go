package users

import (
	"net/http"

	"collection-app/database"
	"collection-app/internal/apierror"
	"collection-app/internal/app/http/middleware"
	"collection-app/internal/domain/users"

	"github.com/gin-gonic/gin"
)

func GetCurrentUser(c *gin.Context) {
	var user users.User
	if err := database.DB.First(&user, "id = ?", middleware.UserID(c)).Error; err != nil {
		apierror.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, MeResponse{
		UserResponse: *ToUserResponse(c, &user),
		Email:        user.Email,
		AuthProvider: user.AuthProvider,
	})
}

func UpdateCurrentUser(c *gin.Context) {
	var input struct {
		Username          string  `json:"username" binding:"required,max=255"`
		PictureObjectName *string `json:"picture_object_name" binding:"omitempty,max=255"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		apierror.Abort(c, apierror.Bad(err))
		return
	}

	var user users.User
	if err := database.DB.First(&user, "id = ?", middleware.UserID(c)).Error; err != nil {
		apierror.Abort(c, err)
		return
	}

	user.Username = input.Username
	if input.PictureObjectName != nil {
		user.PictureObjectName = input.PictureObjectName
	}
	if err := database.DB.Save(&user).Error; err != nil {
		apierror.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, MeResponse{
		UserResponse: *ToUserResponse(c, &user),
		Email:        user.Email,
		AuthProvider: user.AuthProvider,
	})
}
