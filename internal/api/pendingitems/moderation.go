package pendingitems

import (
	"context"
	"errors"

	"collection-app/internal/apierror"
	"collection-app/internal/domain/collections"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// store is the slice of persistence a moderation decision needs. The gorm
// implementation runs inside one transaction and holds a row lock on the
// pending item from the read to the commit, so two concurrent decisions on
// the same item serialize and the loser sees the updated status.
type store interface {
	GetForUpdate(ctx context.Context, id uuid.UUID) (*collections.PendingItem, error)
	CreateItem(ctx context.Context, item *collections.Item) error
	SavePending(ctx context.Context, p *collections.PendingItem) error
}

func moderationError(err error) error {
	if errors.Is(err, collections.ErrAlreadyModerated) {
		return apierror.Incoherent([]string{"This item has already been validated or refused"})
	}
	return err
}

// acceptPending materializes the proposal into a real item. Only the
// creator of the target collection may decide.
func acceptPending(ctx context.Context, s store, id, viewer uuid.UUID) (*collections.Item, error) {
	p, err := s.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Collection == nil || p.Collection.CreatorID == nil || *p.Collection.CreatorID != viewer {
		return nil, apierror.Forbidden()
	}

	item, err := p.Accept()
	if err != nil {
		return nil, moderationError(err)
	}
	if err := s.CreateItem(ctx, item); err != nil {
		return nil, err
	}
	if err := s.SavePending(ctx, p); err != nil {
		return nil, err
	}
	return item, nil
}

func refusePending(ctx context.Context, s store, id, viewer uuid.UUID) error {
	p, err := s.GetForUpdate(ctx, id)
	if err != nil {
		return err
	}
	if p.Collection == nil || p.Collection.CreatorID == nil || *p.Collection.CreatorID != viewer {
		return apierror.Forbidden()
	}

	if err := p.Refuse(); err != nil {
		return moderationError(err)
	}
	return s.SavePending(ctx, p)
}

type gormStore struct {
	tx *gorm.DB
}

func (s *gormStore) GetForUpdate(ctx context.Context, id uuid.UUID) (*collections.PendingItem, error) {
	var p collections.PendingItem
	err := s.tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "pending_items"}}).
		Preload("Collection").
		First(&p, "pending_items.id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *gormStore) CreateItem(ctx context.Context, item *collections.Item) error {
	return s.tx.WithContext(ctx).Omit(clause.Associations).Create(item).Error
}

func (s *gormStore) SavePending(ctx context.Context, p *collections.PendingItem) error {
	return s.tx.WithContext(ctx).Omit(clause.Associations).Save(p).Error
}
