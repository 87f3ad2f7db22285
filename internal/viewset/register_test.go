package viewset

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectionFixture() *ViewSet {
	repo := newMemRepo()
	vs := New("Collection")
	List(vs, ListOptions[widget]{Repo: repo, Encode: encodeWidget})
	Create[widget, widgetInput](vs, CreateOptions[widget]{Repo: repo, Encode: encodeWidget})
	Retrieve(vs, RetrieveOptions[widget]{Repo: repo, Encode: encodeWidget})
	Update[widget, widgetInput](vs, UpdateOptions[widget]{Repo: repo, Encode: encodeWidget})
	Delete[widget](vs, DeleteOptions[widget]{Repo: repo})
	CreateDetail[widget, widgetInput](vs, "PendingItem", CreateOptions[widget]{Repo: repo, Encode: encodeWidget})
	ListDetail(vs, "PendingItem", ListOptions[widget]{Repo: repo, Encode: encodeWidget})
	return vs
}

func TestRouteDerivation(t *testing.T) {
	routes := collectionFixture().Routes()
	require.Len(t, routes, 7)

	assert.Equal(t, Route{
		Method: http.MethodGet, Path: "/collections",
		Name: "collections", OperationID: "list_collections", Summary: "List Collections",
	}, routes[0])
	assert.Equal(t, Route{
		Method: http.MethodPost, Path: "/collections",
		Name: "collections", OperationID: "create_collection", Summary: "Create Collection",
	}, routes[1])
	assert.Equal(t, Route{
		Method: http.MethodGet, Path: "/collections/:id",
		Name: "collection", OperationID: "retrieve_collection", Summary: "Retrieve Collection",
	}, routes[2])
	assert.Equal(t, Route{
		Method: http.MethodPut, Path: "/collections/:id",
		Name: "collection", OperationID: "update_collection", Summary: "Update Collection",
	}, routes[3])
	assert.Equal(t, Route{
		Method: http.MethodDelete, Path: "/collections/:id",
		Name: "collection", OperationID: "delete_collection", Summary: "Delete Collection",
	}, routes[4])
	assert.Equal(t, Route{
		Method: http.MethodPost, Path: "/collections/:id/pending-items",
		Name: "collection_pending_items", OperationID: "create_collection_pending_items",
		Summary: "Create PendingItem of a Collection",
	}, routes[5])
	assert.Equal(t, Route{
		Method: http.MethodGet, Path: "/collections/:id/pending-items",
		Name: "collection_pending_items", OperationID: "list_collection_pending_items",
		Summary: "List PendingItem of a Collection",
	}, routes[6])
}

func TestRoutesAreDeterministic(t *testing.T) {
	assert.Equal(t, collectionFixture().Routes(), collectionFixture().Routes())
}

func TestDuplicateRoutePanics(t *testing.T) {
	repo := newMemRepo()
	vs := New("Collection")
	List(vs, ListOptions[widget]{Repo: repo, Encode: encodeWidget})
	List(vs, ListOptions[widget]{Repo: repo, Encode: encodeWidget})

	assert.Panics(t, func() { vs.Routes() })
}

func TestRegisterMountsEveryRoute(t *testing.T) {
	vs := collectionFixture()
	r := serve(vs)

	mounted := map[string]bool{}
	for _, info := range r.Routes() {
		mounted[info.Method+" "+info.Path] = true
	}
	for _, route := range vs.Routes() {
		assert.True(t, mounted[route.Method+" "+route.Path], route.OperationID)
	}
}
