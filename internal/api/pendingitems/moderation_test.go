package pendingitems

import (
	"context"
	"sync"
	"testing"

	"collection-app/internal/apierror"
	"collection-app/internal/domain/collections"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeStore keeps pending items in a map; GetForUpdate hands out copies so
// a transition only becomes visible through SavePending, like a row read
// inside a transaction.
type fakeStore struct {
	mu      sync.Mutex
	pending map[uuid.UUID]collections.PendingItem
	items   []collections.Item
}

func newFakeStore(pending ...collections.PendingItem) *fakeStore {
	s := &fakeStore{pending: map[uuid.UUID]collections.PendingItem{}}
	for _, p := range pending {
		s.pending[p.ID] = p
	}
	return s
}

func (s *fakeStore) GetForUpdate(_ context.Context, id uuid.UUID) (*collections.PendingItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.pending[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (s *fakeStore) CreateItem(_ context.Context, item *collections.Item) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, *item)
	return nil
}

func (s *fakeStore) SavePending(_ context.Context, p *collections.PendingItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[p.ID] = *p
	return nil
}

func pendingFixture(creatorID uuid.UUID) collections.PendingItem {
	objectName := "items/xyz-card.png"
	return collections.PendingItem{
		ID:           uuid.New(),
		Name:         "Shiny Eevee",
		Description:  "Proposed by a visitor",
		ObjectName:   &objectName,
		CollectionID: uuid.New(),
		Collection: &collections.Collection{
			ID:        uuid.New(),
			CreatorID: &creatorID,
		},
		Status: collections.StatusPending,
	}
}

func TestAcceptMaterializesItem(t *testing.T) {
	creator := uuid.New()
	p := pendingFixture(creator)
	s := newFakeStore(p)

	item, err := acceptPending(context.Background(), s, p.ID, creator)
	require.NoError(t, err)

	assert.Equal(t, p.CollectionID, item.CollectionID)
	assert.Equal(t, p.Name, item.Name)
	require.Len(t, s.items, 1)
	assert.Equal(t, collections.StatusAccepted, s.pending[p.ID].Status)
}

func TestAcceptByAnotherUserIsForbidden(t *testing.T) {
	p := pendingFixture(uuid.New())
	s := newFakeStore(p)

	_, err := acceptPending(context.Background(), s, p.ID, uuid.New())

	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 403, apiErr.Status)
	assert.Empty(t, s.items)
	assert.Equal(t, collections.StatusPending, s.pending[p.ID].Status)
}

func TestAcceptUnknownIDIsNotFound(t *testing.T) {
	s := newFakeStore()
	_, err := acceptPending(context.Background(), s, uuid.New(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSecondDecisionIsRejected(t *testing.T) {
	creator := uuid.New()
	p := pendingFixture(creator)
	s := newFakeStore(p)

	_, err := acceptPending(context.Background(), s, p.ID, creator)
	require.NoError(t, err)

	err = refusePending(context.Background(), s, p.ID, creator)
	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.Status)
	assert.Equal(t, []string{"This item has already been validated or refused"}, apiErr.Detail)

	assert.Equal(t, collections.StatusAccepted, s.pending[p.ID].Status)
	assert.Len(t, s.items, 1)
}

func TestRefuseCreatesNothing(t *testing.T) {
	creator := uuid.New()
	p := pendingFixture(creator)
	s := newFakeStore(p)

	require.NoError(t, refusePending(context.Background(), s, p.ID, creator))
	assert.Empty(t, s.items)
	assert.Equal(t, collections.StatusRefused, s.pending[p.ID].Status)
}

// Decisions racing on one pending item serialize on the row lock; whoever
// commits first wins and everyone else sees the moderated status.
func TestConcurrentDecisionsResolveExactlyOnce(t *testing.T) {
	creator := uuid.New()
	p := pendingFixture(creator)
	s := newFakeStore(p)

	var rowLock sync.Mutex
	errs := make([]error, 8)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rowLock.Lock()
			defer rowLock.Unlock()
			if i%2 == 0 {
				_, errs[i] = acceptPending(context.Background(), s, p.ID, creator)
			} else {
				errs[i] = refusePending(context.Background(), s, p.ID, creator)
			}
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			var apiErr *apierror.Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, 400, apiErr.Status)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.LessOrEqual(t, len(s.items), 1)
}
