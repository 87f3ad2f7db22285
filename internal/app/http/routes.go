package http

import (
	"collection-app/internal/api/auth"
	"collection-app/internal/api/collections"
	"collection-app/internal/api/home"
	"collection-app/internal/api/items"
	"collection-app/internal/api/pendingitems"
	"collection-app/internal/api/snaps"
	"collection-app/internal/api/users"
	"collection-app/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the whole API surface. The resource CRUD comes
// from the view set definitions; singleton lookups and the moderation
// transitions are mounted next to them on the same paths.
func RegisterRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ------------------------------
	// Public routes
	// ------------------------------
	public := r.Group("/", middleware.SanitizeAndCleanInputMiddleware())
	{
		public.POST("/auth/register", auth.Register)
		public.POST("/auth/login", auth.Login)
		public.GET("/auth/google", auth.GoogleStart)
		public.GET("/auth/google/callback", auth.GoogleCallback)
	}

	// ------------------------------
	// Authenticated routes
	// ------------------------------
	authed := r.Group("/", middleware.AuthMiddleware(), middleware.SanitizeAndCleanInputMiddleware())
	{
		collections.ViewSet().Register(authed)
		items.ViewSet().Register(authed)
		snaps.ViewSet().Register(authed)
		pendingitems.ViewSet().Register(authed)

		authed.GET("/items/:id/snap", items.GetMySnap)

		authed.POST("/snaps/:id/likes", snaps.LikeSnap)
		authed.GET("/snaps/:id/like", snaps.GetMyLike)
		authed.DELETE("/snaps/:id/like", snaps.DeleteMyLike)

		authed.PUT("/pending-items/:id/accept", pendingitems.Accept)
		authed.PUT("/pending-items/:id/refuse", pendingitems.Refuse)

		authed.GET("/feed", home.Feed)
		authed.POST("/presigned-url", home.GeneratePresignedURL)

		authed.GET("/users/me", users.GetCurrentUser)
		authed.PUT("/users/me", users.UpdateCurrentUser)
	}
}
