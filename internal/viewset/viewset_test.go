package viewset

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"collection-app/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func errForbidden() error { return apierror.Forbidden() }

type widget struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Owner uuid.UUID `json:"owner"`
}

type widgetInput struct {
	Name string `json:"name" binding:"required"`
}

func (in widgetInput) Apply(m *widget) {
	m.Name = in.Name
}

type widgetFilter struct {
	Name *string `form:"name"`
}

func (f *widgetFilter) Predicates() map[string]any {
	p := map[string]any{}
	if f.Name != nil {
		p["name"] = *f.Name
	}
	return p
}

// memRepo is an in-memory Repository used to exercise the handlers
// without a database.
type memRepo struct {
	mu        sync.Mutex
	widgets   map[uuid.UUID]widget
	order     []uuid.UUID
	lastQuery Query
}

func newMemRepo(widgets ...widget) *memRepo {
	r := &memRepo{widgets: map[uuid.UUID]widget{}}
	for _, w := range widgets {
		r.widgets[w.ID] = w
		r.order = append(r.order, w.ID)
	}
	return r
}

func (r *memRepo) Get(_ context.Context, id uuid.UUID) (*widget, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.widgets[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &w, nil
}

func (r *memRepo) List(_ context.Context, q Query) ([]widget, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastQuery = q

	var out []widget
	for _, id := range r.order {
		w := r.widgets[id]
		if name, ok := q.Filters["name"]; ok && w.Name != name {
			continue
		}
		out = append(out, w)
	}
	return out, int64(len(out)), nil
}

func (r *memRepo) Create(_ context.Context, w *widget) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	r.widgets[w.ID] = *w
	r.order = append(r.order, w.ID)
	return nil
}

func (r *memRepo) Save(_ context.Context, w *widget) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.widgets[w.ID] = *w
	return nil
}

func (r *memRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.widgets[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.widgets, id)
	return nil
}

func encodeWidget(_ *gin.Context, w *widget) any { return w }

func serve(vs *ViewSet) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	vs.Register(r)
	return r
}

func doJSON(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestListDefaultsPagination(t *testing.T) {
	repo := newMemRepo(widget{ID: uuid.New(), Name: "a"}, widget{ID: uuid.New(), Name: "b"})
	vs := New("Widget")
	List(vs, ListOptions[widget]{Repo: repo, Encode: encodeWidget})

	w := doJSON(serve(vs), http.MethodGet, "/widgets", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, MaxPageSize, repo.lastQuery.Limit)
	assert.Equal(t, 0, repo.lastQuery.Offset)

	var page struct {
		Items []json.RawMessage `json:"items"`
		Count int64             `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Len(t, page.Items, 2)
	assert.EqualValues(t, 2, page.Count)
}

func TestListRejectsOversizedLimit(t *testing.T) {
	repo := newMemRepo()
	vs := New("Widget")
	List(vs, ListOptions[widget]{Repo: repo, Encode: encodeWidget})

	w := doJSON(serve(vs), http.MethodGet, "/widgets?limit=10001", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListBindsFilter(t *testing.T) {
	repo := newMemRepo(widget{ID: uuid.New(), Name: "a"}, widget{ID: uuid.New(), Name: "b"})
	vs := New("Widget")
	List(vs, ListOptions[widget]{
		Repo:   repo,
		Filter: func() Filter { return &widgetFilter{} },
		Encode: encodeWidget,
	})

	w := doJSON(serve(vs), http.MethodGet, "/widgets?name=a", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"name": "a"}, repo.lastQuery.Filters)

	var page struct {
		Count int64 `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.EqualValues(t, 1, page.Count)
}

func TestListUnsetFilterFieldIsNotAPredicate(t *testing.T) {
	repo := newMemRepo(widget{ID: uuid.New(), Name: "a"})
	vs := New("Widget")
	List(vs, ListOptions[widget]{
		Repo:   repo,
		Filter: func() Filter { return &widgetFilter{} },
		Encode: encodeWidget,
	})

	w := doJSON(serve(vs), http.MethodGet, "/widgets", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, repo.lastQuery.Filters)
}

func TestCreateAppliesInputThenPreSave(t *testing.T) {
	repo := newMemRepo()
	owner := uuid.New()
	vs := New("Widget")
	Create[widget, widgetInput](vs, CreateOptions[widget]{
		Repo: repo,
		PreSave: func(c *gin.Context, _ uuid.UUID, m *widget) error {
			m.Owner = owner
			return nil
		},
		Encode: encodeWidget,
	})

	w := doJSON(serve(vs), http.MethodPost, "/widgets", map[string]string{"name": "fresh"})

	require.Equal(t, http.StatusCreated, w.Code)
	var got widget
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "fresh", got.Name)
	assert.Equal(t, owner, got.Owner)
	assert.Len(t, repo.widgets, 1)
}

func TestCreateRejectsMissingField(t *testing.T) {
	repo := newMemRepo()
	vs := New("Widget")
	Create[widget, widgetInput](vs, CreateOptions[widget]{Repo: repo, Encode: encodeWidget})

	w := doJSON(serve(vs), http.MethodPost, "/widgets", map[string]string{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, repo.widgets)
}

func TestRetrieveUnknownIDIs404(t *testing.T) {
	vs := New("Widget")
	Retrieve(vs, RetrieveOptions[widget]{Repo: newMemRepo(), Encode: encodeWidget})

	w := doJSON(serve(vs), http.MethodGet, "/widgets/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRetrieveMalformedIDIs400(t *testing.T) {
	vs := New("Widget")
	Retrieve(vs, RetrieveOptions[widget]{Repo: newMemRepo(), Encode: encodeWidget})

	w := doJSON(serve(vs), http.MethodGet, "/widgets/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateMissingRowBeatsGuard(t *testing.T) {
	deny := func(c *gin.Context, id uuid.UUID) error { return errForbidden() }
	existing := widget{ID: uuid.New(), Name: "old"}
	repo := newMemRepo(existing)
	vs := New("Widget")
	Update[widget, widgetInput](vs, UpdateOptions[widget]{
		Repo:   repo,
		Guards: []Guard{deny},
		Encode: encodeWidget,
	})
	r := serve(vs)

	// Unknown id resolves before authorization runs.
	w := doJSON(r, http.MethodPut, "/widgets/"+uuid.NewString(), map[string]string{"name": "new"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodPut, "/widgets/"+existing.ID.String(), map[string]string{"name": "new"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "old", repo.widgets[existing.ID].Name)
}

func TestUpdateReplacesDeclaredFields(t *testing.T) {
	existing := widget{ID: uuid.New(), Name: "old", Owner: uuid.New()}
	repo := newMemRepo(existing)
	vs := New("Widget")
	Update[widget, widgetInput](vs, UpdateOptions[widget]{Repo: repo, Encode: encodeWidget})

	w := doJSON(serve(vs), http.MethodPut, "/widgets/"+existing.ID.String(), map[string]string{"name": "new"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "new", repo.widgets[existing.ID].Name)
	// Fields outside the input are untouched.
	assert.Equal(t, existing.Owner, repo.widgets[existing.ID].Owner)
}

func TestDeleteGuardBlocksRemoval(t *testing.T) {
	existing := widget{ID: uuid.New(), Name: "keep"}
	repo := newMemRepo(existing)
	vs := New("Widget")
	Delete[widget](vs, DeleteOptions[widget]{
		Repo:   repo,
		Guards: []Guard{func(c *gin.Context, id uuid.UUID) error { return errForbidden() }},
	})
	r := serve(vs)

	w := doJSON(r, http.MethodDelete, "/widgets/"+existing.ID.String(), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, repo.widgets, existing.ID)

	w = doJSON(r, http.MethodDelete, "/widgets/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteRemovesRow(t *testing.T) {
	existing := widget{ID: uuid.New()}
	repo := newMemRepo(existing)
	vs := New("Widget")
	Delete[widget](vs, DeleteOptions[widget]{Repo: repo})

	w := doJSON(serve(vs), http.MethodDelete, "/widgets/"+existing.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, repo.widgets)
}

func TestGuardsRunInOrderAndShortCircuit(t *testing.T) {
	var calls []string
	first := func(c *gin.Context, id uuid.UUID) error {
		calls = append(calls, "first")
		return errForbidden()
	}
	second := func(c *gin.Context, id uuid.UUID) error {
		calls = append(calls, "second")
		return nil
	}

	vs := New("Widget")
	List(vs, ListOptions[widget]{
		Repo:   newMemRepo(),
		Guards: []Guard{first, second},
		Encode: encodeWidget,
	})

	w := doJSON(serve(vs), http.MethodGet, "/widgets", nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, []string{"first"}, calls)
}

func TestListDetailScopesToParent(t *testing.T) {
	parent := uuid.New()
	var seenParent uuid.UUID
	repo := newMemRepo(widget{ID: uuid.New(), Name: "child"})
	vs := New("Widget")
	ListDetail(vs, "Part", ListOptions[widget]{
		Queryset: func(c *gin.Context, parentID uuid.UUID) Repository[widget] {
			seenParent = parentID
			return repo
		},
		Encode: encodeWidget,
	})

	w := doJSON(serve(vs), http.MethodGet, "/widgets/"+parent.String()+"/parts", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, parent, seenParent)
}
