package items

import (
	"collection-app/database"
	"collection-app/internal/api/snaps"
	"collection-app/internal/apierror"
	"collection-app/internal/app/http/middleware"
	"collection-app/internal/domain/collections"
	"collection-app/internal/domain/users"
	"collection-app/internal/repository"
	"collection-app/internal/viewset"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// collectionCreatorOnly restricts item mutations to the creator of the
// collection the item belongs to.
func collectionCreatorOnly(c *gin.Context, id uuid.UUID) error {
	var item collections.Item
	if err := database.DB.Preload("Collection").First(&item, "id = ?", id).Error; err != nil {
		return err
	}
	if item.Collection == nil || item.Collection.CreatorID == nil ||
		*item.Collection.CreatorID != middleware.UserID(c) {
		return apierror.Forbidden()
	}
	return nil
}

func exists(c *gin.Context, id uuid.UUID) error {
	var item collections.Item
	return database.DB.Select("id").First(&item, "id = ?", id).Error
}

func itemRepo() *repository.Gorm[collections.Item] {
	return repository.New[collections.Item](database.DB,
		repository.WithCounts("items", repository.Count{As: "nb_snaps", Table: "snaps", FK: "item_id"}),
	)
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

func ViewSet() *viewset.ViewSet {
	vs := viewset.New("Item")
	repo := itemRepo()

	encode := func(c *gin.Context, m *collections.Item) any { return ToItemResponse(c, m) }
	encodeSnap := func(c *gin.Context, m *collections.Snap) any { return snaps.ToSnapResponse(c, m) }

	viewset.Retrieve(vs, viewset.RetrieveOptions[collections.Item]{
		Repo:   repo,
		Encode: encode,
	})
	viewset.Update[collections.Item, ItemInput](vs, viewset.UpdateOptions[collections.Item]{
		Repo:   repo,
		Guards: []viewset.Guard{collectionCreatorOnly},
		Encode: encode,
	})
	viewset.Delete[collections.Item](vs, viewset.DeleteOptions[collections.Item]{
		Repo:   repo,
		Guards: []viewset.Guard{collectionCreatorOnly},
	})

	// POST /items/:id/snaps; one snap per user and item, enforced by the
	// unique index and reported as a conflict.
	viewset.CreateDetail[collections.Snap, snaps.SnapInput](vs, "Snap", viewset.CreateOptions[collections.Snap]{
		Repo:   snapRepo(),
		Guards: []viewset.Guard{exists},
		PreSave: func(c *gin.Context, parentID uuid.UUID, m *collections.Snap) error {
			m.ItemID = parentID
			var user users.User
			if err := database.DB.First(&user, "id = ?", middleware.UserID(c)).Error; err != nil {
				return err
			}
			m.UserID = user.ID
			m.User = &user
			return nil
		},
		Encode: encodeSnap,
	})
	// GET /items/:id/snaps
	viewset.ListDetail(vs, "Snap", viewset.ListOptions[collections.Snap]{
		Guards: []viewset.Guard{exists},
		Queryset: func(c *gin.Context, parentID uuid.UUID) viewset.Repository[collections.Snap] {
			return snapRepo().Scoped(repository.Where("snaps.item_id = ?", parentID))
		},
		Encode: encodeSnap,
	})

	return vs
}
