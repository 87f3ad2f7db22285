package collections

import (
	"collection-app/database"
	"collection-app/internal/api/items"
	"collection-app/internal/api/pendingitems"
	"collection-app/internal/apierror"
	"collection-app/internal/app/http/middleware"
	"collection-app/internal/domain/collections"
	"collection-app/internal/domain/users"
	"collection-app/internal/repository"
	"collection-app/internal/viewset"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// creatorOnly loads the collection behind id and rejects callers other
// than its creator. Missing collections surface as 404 before the 403.
func creatorOnly(c *gin.Context, id uuid.UUID) error {
	var col collections.Collection
	if err := database.DB.First(&col, "id = ?", id).Error; err != nil {
		return err
	}
	if col.CreatorID == nil || *col.CreatorID != middleware.UserID(c) {
		return apierror.Forbidden()
	}
	return nil
}

func exists(c *gin.Context, id uuid.UUID) error {
	var col collections.Collection
	return database.DB.Select("id").First(&col, "id = ?", id).Error
}

// setCreator stamps the caller as creator and keeps the loaded user on the
// entity so the response can embed it.
func setCreator(c *gin.Context, _ uuid.UUID, m *collections.Collection) error {
	var creator users.User
	if err := database.DB.First(&creator, "id = ?", middleware.UserID(c)).Error; err != nil {
		return err
	}
	m.CreatorID = &creator.ID
	m.Creator = &creator
	return nil
}

func collectionRepo() *repository.Gorm[collections.Collection] {
	return repository.New[collections.Collection](database.DB,
		repository.Preload("Creator"),
		repository.WithCounts("collections", repository.Count{As: "nb_items", Table: "items", FK: "collection_id"}),
	)
}

func itemRepo() *repository.Gorm[collections.Item] {
	return repository.New[collections.Item](database.DB,
		repository.WithCounts("items", repository.Count{As: "nb_snaps", Table: "snaps", FK: "item_id"}),
	)
}

func pendingRepo() *repository.Gorm[collections.PendingItem] {
	return repository.New[collections.PendingItem](database.DB, repository.Preload("Creator"))
}

type collectionFilter struct {
	Name *string `form:"name"`
}

func (f *collectionFilter) Predicates() map[string]any {
	p := map[string]any{}
	if f.Name != nil {
		p["name"] = *f.Name
	}
	return p
}

func ViewSet() *viewset.ViewSet {
	vs := viewset.New("Collection")
	repo := collectionRepo()

	encode := func(c *gin.Context, m *collections.Collection) any { return ToCollectionResponse(c, m) }
	encodeItem := func(c *gin.Context, m *collections.Item) any { return items.ToItemResponse(c, m) }
	encodePending := func(c *gin.Context, m *collections.PendingItem) any { return pendingitems.ToPendingItemResponse(c, m) }

	viewset.List(vs, viewset.ListOptions[collections.Collection]{
		Repo:   repo,
		Filter: func() viewset.Filter { return &collectionFilter{} },
		Encode: encode,
	})
	viewset.Create[collections.Collection, CollectionInput](vs, viewset.CreateOptions[collections.Collection]{
		Repo:    repo,
		PreSave: setCreator,
		Encode:  encode,
	})
	viewset.Retrieve(vs, viewset.RetrieveOptions[collections.Collection]{
		Repo:   repo,
		Encode: encode,
	})
	viewset.Update[collections.Collection, CollectionInput](vs, viewset.UpdateOptions[collections.Collection]{
		Repo:   repo,
		Guards: []viewset.Guard{creatorOnly},
		Encode: encode,
	})
	viewset.Delete[collections.Collection](vs, viewset.DeleteOptions[collections.Collection]{
		Repo:   repo,
		Guards: []viewset.Guard{creatorOnly},
	})

	// POST /collections/:id/items, creator only.
	viewset.CreateDetail[collections.Item, items.ItemInput](vs, "Item", viewset.CreateOptions[collections.Item]{
		Repo:   itemRepo(),
		Guards: []viewset.Guard{creatorOnly},
		PreSave: func(c *gin.Context, parentID uuid.UUID, m *collections.Item) error {
			m.CollectionID = parentID
			return nil
		},
		Encode: encodeItem,
	})
	// GET /collections/:id/items
	viewset.ListDetail(vs, "Item", viewset.ListOptions[collections.Item]{
		Guards: []viewset.Guard{exists},
		Queryset: func(c *gin.Context, parentID uuid.UUID) viewset.Repository[collections.Item] {
			return itemRepo().Scoped(repository.Where("items.collection_id = ?", parentID))
		},
		Encode: encodeItem,
	})

	// POST /collections/:id/pending-items, open to any authenticated user.
	viewset.CreateDetail[collections.PendingItem, pendingitems.PendingItemInput](vs, "PendingItem", viewset.CreateOptions[collections.PendingItem]{
		Repo:   pendingRepo(),
		Guards: []viewset.Guard{exists},
		PreSave: func(c *gin.Context, parentID uuid.UUID, m *collections.PendingItem) error {
			m.CollectionID = parentID
			var creator users.User
			if err := database.DB.First(&creator, "id = ?", middleware.UserID(c)).Error; err != nil {
				return err
			}
			m.CreatorID = &creator.ID
			m.Creator = &creator
			return nil
		},
		Encode: encodePending,
	})
	// GET /collections/:id/pending-items; the creator reviews everything,
	// other users only see their own proposals.
	viewset.ListDetail(vs, "PendingItem", viewset.ListOptions[collections.PendingItem]{
		Guards: []viewset.Guard{exists},
		Queryset: func(c *gin.Context, parentID uuid.UUID) viewset.Repository[collections.PendingItem] {
			scoped := pendingRepo().Scoped(repository.Where("pending_items.collection_id = ?", parentID))
			if creatorOnly(c, parentID) != nil {
				scoped = scoped.Scoped(repository.Where("pending_items.creator_id = ?", middleware.UserID(c)))
			}
			return scoped
		},
		Encode: encodePending,
	})

	return vs
}
