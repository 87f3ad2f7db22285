package snaps

import (
	"collection-app/database"
	"collection-app/internal/apierror"
	"collection-app/internal/app/http/middleware"
	"collection-app/internal/domain/collections"
	"collection-app/internal/repository"
	"collection-app/internal/viewset"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ownerOrCollectionCreator lets the snap's author and the creator of the
// collection it lives in mutate it.
func ownerOrCollectionCreator(c *gin.Context, id uuid.UUID) error {
	var snap collections.Snap
	if err := database.DB.Preload("Item.Collection").First(&snap, "id = ?", id).Error; err != nil {
		return err
	}

	uid := middleware.UserID(c)
	if snap.UserID == uid {
		return nil
	}
	if snap.Item != nil && snap.Item.Collection != nil &&
		snap.Item.Collection.CreatorID != nil && *snap.Item.Collection.CreatorID == uid {
		return nil
	}
	return apierror.Forbidden()
}

func snapRepo() *repository.Gorm[collections.Snap] {
	return repository.New[collections.Snap](database.DB,
		repository.Preload("User"),
		repository.WithCounts("snaps",
			repository.Count{As: "nb_likes", Table: "likes", FK: "snap_id", Where: "likes.liked = true"},
			repository.Count{As: "nb_dislikes", Table: "likes", FK: "snap_id", Where: "likes.liked = false"},
		),
	)
}

func likeRepo() *repository.Gorm[collections.Like] {
	return repository.New[collections.Like](database.DB, repository.Preload("User"))
}

// likeFilter narrows a like listing to likes or dislikes.
type likeFilter struct {
	Liked *bool `form:"liked"`
}

func (f *likeFilter) Predicates() map[string]any {
	p := map[string]any{}
	if f.Liked != nil {
		p["liked"] = *f.Liked
	}
	return p
}

func ViewSet() *viewset.ViewSet {
	vs := viewset.New("Snap")
	repo := snapRepo()

	encode := func(c *gin.Context, m *collections.Snap) any { return ToSnapResponse(c, m) }
	encodeLike := func(c *gin.Context, m *collections.Like) any { return ToLikeResponse(c, m) }

	viewset.Retrieve(vs, viewset.RetrieveOptions[collections.Snap]{
		Repo:   repo,
		Encode: encode,
	})
	viewset.Update[collections.Snap, SnapInput](vs, viewset.UpdateOptions[collections.Snap]{
		Repo:   repo,
		Guards: []viewset.Guard{ownerOrCollectionCreator},
		Encode: encode,
	})
	viewset.Delete[collections.Snap](vs, viewset.DeleteOptions[collections.Snap]{
		Repo:   repo,
		Guards: []viewset.Guard{ownerOrCollectionCreator},
	})

	// GET /snaps/:id/likes, filterable by ?liked=true|false.
	viewset.ListDetail(vs, "Like", viewset.ListOptions[collections.Like]{
		Filter: func() viewset.Filter { return &likeFilter{} },
		Queryset: func(c *gin.Context, parentID uuid.UUID) viewset.Repository[collections.Like] {
			return likeRepo().Scoped(repository.Where("likes.snap_id = ?", parentID))
		},
		Encode: encodeLike,
	})

	return vs
}
