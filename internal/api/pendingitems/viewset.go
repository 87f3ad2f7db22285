package pendingitems

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

// creatorOrCollectionCreator allows the proposer to amend or withdraw the
// proposal, and the collection creator to clean up.
func creatorOrCollectionCreator(c *gin.Context, id uuid.UUID) error {
	var p collections.PendingItem
	if err := database.DB.Preload("Collection").First(&p, "id = ?", id).Error; err != nil {
		return err
	}

	uid := middleware.UserID(c)
	if p.CreatorID != nil && *p.CreatorID == uid {
		return nil
	}
	if p.Collection != nil && p.Collection.CreatorID != nil && *p.Collection.CreatorID == uid {
		return nil
	}
	return apierror.Forbidden()
}

func pendingRepo() *repository.Gorm[collections.PendingItem] {
	return repository.New[collections.PendingItem](database.DB, repository.Preload("Creator"))
}

func ViewSet() *viewset.ViewSet {
	vs := viewset.New("PendingItem")
	repo := pendingRepo()

	encode := func(c *gin.Context, m *collections.PendingItem) any { return ToPendingItemResponse(c, m) }

	viewset.Update[collections.PendingItem, PendingItemInput](vs, viewset.UpdateOptions[collections.PendingItem]{
		Repo:   repo,
		Guards: []viewset.Guard{creatorOrCollectionCreator},
		Encode: encode,
	})
	viewset.Delete[collections.PendingItem](vs, viewset.DeleteOptions[collections.PendingItem]{
		Repo:   repo,
		Guards: []viewset.Guard{creatorOrCollectionCreator},
	})

	return vs
}
