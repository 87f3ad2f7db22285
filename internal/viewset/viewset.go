// Package viewset generates CRUD endpoints from declarative view
// descriptors. A ViewSet owns one entity type; each List/Retrieve/Create/
// Update/Delete call attaches an immutable view to it, and Register derives
// the route table (paths, route names, operation ids) from the entity and
// child names alone, so two processes given the same definitions produce
// identical tables.
package viewset

import (
	"net/http"

	"collection-app/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Kind string

const (
	KindList     Kind = "list"
	KindRetrieve Kind = "retrieve"
	KindCreate   Kind = "create"
	KindUpdate   Kind = "update"
	KindDelete   Kind = "delete"
)

// Input decodes a request payload onto an entity. Apply must only copy
// fields the client actually sent; omitted optional fields stay at the
// entity's defaults.
type Input[M any] interface {
	Apply(m *M)
}

// Filter binds list query parameters and yields exact-match predicates.
// Unset fields are excluded from the returned map.
type Filter interface {
	Predicates() map[string]any
}

type view struct {
	kind    Kind
	method  string
	detail  bool
	child   string
	handler gin.HandlerFunc
}

// ViewSet is a resource definition: an entity name plus the views attached
// to it. Build one at startup and treat it as immutable afterwards.
type ViewSet struct {
	name  string
	views []view
}

// New starts a resource definition for the Go-style entity name
// (e.g. "PendingItem").
func New(name string) *ViewSet {
	return &ViewSet{name: name}
}

func (vs *ViewSet) Name() string {
	return vs.name
}

func (vs *ViewSet) add(v view) {
	vs.views = append(vs.views, v)
}

func pathID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, apierror.Malformed("id must be a valid UUID")
	}
	return id, nil
}

// ------------------------------
// List
// ------------------------------

type ListOptions[M any] struct {
	Repo Repository[M]
	// Queryset substitutes the repository per request; it receives the
	// parent id on nested routes and uuid.Nil otherwise.
	Queryset func(c *gin.Context, parentID uuid.UUID) Repository[M]
	// Filter builds a fresh filter schema to bind query parameters into.
	Filter func() Filter
	Encode func(c *gin.Context, m *M) any
	Guards []Guard
}

func List[M any](vs *ViewSet, o ListOptions[M]) {
	vs.add(view{kind: KindList, method: http.MethodGet, handler: listHandler(false, o)})
}

// ListDetail lists the children of one parent, e.g. GET /collections/:id/items.
func ListDetail[M any](vs *ViewSet, child string, o ListOptions[M]) {
	vs.add(view{kind: KindList, method: http.MethodGet, detail: true, child: child, handler: listHandler(true, o)})
}

func listHandler[M any](detail bool, o ListOptions[M]) gin.HandlerFunc {
	return func(c *gin.Context) {
		parentID := uuid.Nil
		if detail {
			var err error
			if parentID, err = pathID(c); err != nil {
				apierror.Abort(c, err)
				return
			}
		}

		if err := runGuards(c, parentID, o.Guards); err != nil {
			apierror.Abort(c, err)
			return
		}

		var pg Pagination
		if err := c.ShouldBindQuery(&pg); err != nil {
			apierror.Abort(c, apierror.Bad(err))
			return
		}

		query := Query{Limit: pg.Limit, Offset: pg.Offset, OrderBy: pg.OrderBy}
		if o.Filter != nil {
			filter := o.Filter()
			if err := c.ShouldBindQuery(filter); err != nil {
				apierror.Abort(c, apierror.Bad(err))
				return
			}
			query.Filters = filter.Predicates()
		}

		repo := o.Repo
		if o.Queryset != nil {
			repo = o.Queryset(c, parentID)
		}

		entities, count, err := repo.List(c.Request.Context(), query)
		if err != nil {
			apierror.Abort(c, err)
			return
		}

		items := make([]any, 0, len(entities))
		for i := range entities {
			items = append(items, o.Encode(c, &entities[i]))
		}
		c.JSON(http.StatusOK, Page{Items: items, Count: count})
	}
}

// ------------------------------
// Retrieve
// ------------------------------

type RetrieveOptions[M any] struct {
	Repo     Repository[M]
	Queryset func(c *gin.Context, id uuid.UUID) Repository[M]
	Encode   func(c *gin.Context, m *M) any
	Guards   []Guard
}

func Retrieve[M any](vs *ViewSet, o RetrieveOptions[M]) {
	vs.add(view{kind: KindRetrieve, method: http.MethodGet, handler: func(c *gin.Context) {
		id, err := pathID(c)
		if err != nil {
			apierror.Abort(c, err)
			return
		}
		if err := runGuards(c, id, o.Guards); err != nil {
			apierror.Abort(c, err)
			return
		}

		repo := o.Repo
		if o.Queryset != nil {
			repo = o.Queryset(c, id)
		}
		entity, err := repo.Get(c.Request.Context(), id)
		if err != nil {
			apierror.Abort(c, err)
			return
		}
		c.JSON(http.StatusOK, o.Encode(c, entity))
	}})
}

// ------------------------------
// Create
// ------------------------------

type CreateOptions[M any] struct {
	Repo Repository[M]
	// PreSave sets derived fields the client must not send (creator,
	// parent foreign key). It may reject with a not-found error when the
	// parent id does not resolve.
	PreSave  func(c *gin.Context, parentID uuid.UUID, m *M) error
	PostSave func(c *gin.Context, parentID uuid.UUID, m *M) error
	Encode   func(c *gin.Context, m *M) any
	Guards   []Guard
}

func Create[M any, I Input[M]](vs *ViewSet, o CreateOptions[M]) {
	vs.add(view{kind: KindCreate, method: http.MethodPost, handler: createHandler[M, I](false, o)})
}

// CreateDetail creates a child under one parent, e.g. POST /collections/:id/items.
func CreateDetail[M any, I Input[M]](vs *ViewSet, child string, o CreateOptions[M]) {
	vs.add(view{kind: KindCreate, method: http.MethodPost, detail: true, child: child, handler: createHandler[M, I](true, o)})
}

func createHandler[M any, I Input[M]](detail bool, o CreateOptions[M]) gin.HandlerFunc {
	return func(c *gin.Context) {
		parentID := uuid.Nil
		if detail {
			var err error
			if parentID, err = pathID(c); err != nil {
				apierror.Abort(c, err)
				return
			}
		}

		if err := runGuards(c, parentID, o.Guards); err != nil {
			apierror.Abort(c, err)
			return
		}

		var in I
		if err := c.ShouldBindJSON(&in); err != nil {
			apierror.Abort(c, apierror.Bad(err))
			return
		}

		var entity M
		in.Apply(&entity)
		if o.PreSave != nil {
			if err := o.PreSave(c, parentID, &entity); err != nil {
				apierror.Abort(c, err)
				return
			}
		}
		if err := o.Repo.Create(c.Request.Context(), &entity); err != nil {
			apierror.Abort(c, err)
			return
		}
		if o.PostSave != nil {
			if err := o.PostSave(c, parentID, &entity); err != nil {
				apierror.Abort(c, err)
				return
			}
		}
		c.JSON(http.StatusCreated, o.Encode(c, &entity))
	}
}

// ------------------------------
// Update
// ------------------------------

type UpdateOptions[M any] struct {
	Repo   Repository[M]
	Encode func(c *gin.Context, m *M) any
	Guards []Guard
}

// Update replaces the declared fields wholesale; inputs bind all fields as
// required, this is a PUT, not a PATCH.
func Update[M any, I Input[M]](vs *ViewSet, o UpdateOptions[M]) {
	vs.add(view{kind: KindUpdate, method: http.MethodPut, handler: func(c *gin.Context) {
		id, err := pathID(c)
		if err != nil {
			apierror.Abort(c, err)
			return
		}

		var in I
		if err := c.ShouldBindJSON(&in); err != nil {
			apierror.Abort(c, apierror.Bad(err))
			return
		}

		entity, err := o.Repo.Get(c.Request.Context(), id)
		if err != nil {
			apierror.Abort(c, err)
			return
		}

		// Ownership checks run against the existing row, before mutation.
		if err := runGuards(c, id, o.Guards); err != nil {
			apierror.Abort(c, err)
			return
		}

		in.Apply(entity)
		if err := o.Repo.Save(c.Request.Context(), entity); err != nil {
			apierror.Abort(c, err)
			return
		}
		c.JSON(http.StatusOK, o.Encode(c, entity))
	}})
}

// ------------------------------
// Delete
// ------------------------------

type DeleteOptions[M any] struct {
	Repo   Repository[M]
	Guards []Guard
}

func Delete[M any](vs *ViewSet, o DeleteOptions[M]) {
	vs.add(view{kind: KindDelete, method: http.MethodDelete, handler: func(c *gin.Context) {
		id, err := pathID(c)
		if err != nil {
			apierror.Abort(c, err)
			return
		}

		if _, err := o.Repo.Get(c.Request.Context(), id); err != nil {
			apierror.Abort(c, err)
			return
		}
		if err := runGuards(c, id, o.Guards); err != nil {
			apierror.Abort(c, err)
			return
		}
		if err := o.Repo.Delete(c.Request.Context(), id); err != nil {
			apierror.Abort(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}})
}
