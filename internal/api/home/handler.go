package home

import (
	"net/http"
	"time"

	"collection-app/database"
	"collection-app/internal/api/snaps"
	"collection-app/internal/apierror"
	"collection-app/internal/domain/collections"
	"collection-app/internal/infra/storage"
	"collection-app/internal/repository"
	"collection-app/internal/viewset"

	"github.com/gin-gonic/gin"
)

// GET /feed
//
// Latest snaps across every collection, optionally restricted to those
// posted after ?since=<RFC 3339 timestamp>.
func Feed(c *gin.Context) {
	var pg viewset.Pagination
	if err := c.ShouldBindQuery(&pg); err != nil {
		apierror.Abort(c, apierror.Bad(err))
		return
	}

	repo := repository.New[collections.Snap](database.DB,
		repository.Preload("User"),
		repository.WithCounts("snaps",
			repository.Count{As: "nb_likes", Table: "likes", FK: "snap_id", Where: "likes.liked = true"},
			repository.Count{As: "nb_dislikes", Table: "likes", FK: "snap_id", Where: "likes.liked = false"},
		),
	)
	if since := c.Query("since"); since != "" {
		t, err := time.Parse(time.RFC3339, since)
		if err != nil {
			apierror.Abort(c, apierror.Malformed(map[string][]string{"since": {"must be an RFC 3339 timestamp"}}))
			return
		}
		repo = repo.Scoped(repository.Where("snaps.created_at > ?", t))
	}

	orderBy := pg.OrderBy
	if len(orderBy) == 0 {
		orderBy = []string{"-created_at"}
	}

	entities, count, err := repo.List(c.Request.Context(), viewset.Query{
		Limit:   pg.Limit,
		Offset:  pg.Offset,
		OrderBy: orderBy,
	})
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	items := make([]any, 0, len(entities))
	for i := range entities {
		items = append(items, snaps.ToSnapResponse(c, &entities[i]))
	}
	c.JSON(http.StatusOK, viewset.Page{Items: items, Count: count})
}

// POST /presigned-url
//
// Hands the client a one-hour POST policy for uploading straight to object
// storage; the returned object_name is what the client then stores on the
// resource it uploads for.
func GeneratePresignedURL(c *gin.Context) {
	var in struct {
		ID          string `json:"id" binding:"required,uuid"`
		Filename    string `json:"filename" binding:"required,max=255"`
		ContentType string `json:"content_type" binding:"required,max=255"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		apierror.Abort(c, apierror.Bad(err))
		return
	}

	objectName := storage.Default.ObjectName(in.ID, in.Filename)
	upload, err := storage.Default.PresignedUpload(c.Request.Context(), objectName, in.ContentType)
	if err != nil {
		apierror.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"object_name":   objectName,
		"presigned_url": upload,
	})
}
