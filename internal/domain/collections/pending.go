package collections

import (
	"errors"
	"time"

	"collection-app/internal/domain/users"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PendingStatus string

const (
	StatusPending  PendingStatus = "pending"
	StatusAccepted PendingStatus = "accepted"
	StatusRefused  PendingStatus = "refused"
)

// ErrAlreadyModerated is returned when a transition is attempted on a
// pending item that has already been accepted or refused.
var ErrAlreadyModerated = errors.New("pending item already validated or refused")

// PendingItem is an item proposed for a collection, awaiting a decision by
// the collection's creator. It starts pending and transitions exactly once
// to accepted or refused.
type PendingItem struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name           string         `gorm:"size:255;not null"`
	Description    string         `gorm:"size:255;not null"`
	ObjectName     *string        `gorm:"size:255"`
	DominantColors datatypes.JSON `gorm:"type:jsonb"`

	CollectionID uuid.UUID   `gorm:"type:uuid;not null"`
	Collection   *Collection `gorm:"constraint:OnDelete:CASCADE"`

	CreatorID *uuid.UUID  `gorm:"type:uuid"`
	Creator   *users.User `gorm:"foreignKey:CreatorID;constraint:OnDelete:SET NULL"`

	Status PendingStatus `gorm:"type:text;not null;default:'pending'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p *PendingItem) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Status == "" {
		p.Status = StatusPending
	}
	return nil
}

// Accept transitions the item to accepted and returns the materialized
// Item carrying the proposed fields. The caller persists both (and must do
// so atomically, under the row lock that guarded the status read).
func (p *PendingItem) Accept() (*Item, error) {
	if p.Status != StatusPending {
		return nil, ErrAlreadyModerated
	}
	item := &Item{
		CollectionID:   p.CollectionID,
		Name:           p.Name,
		Description:    p.Description,
		ObjectName:     p.ObjectName,
		DominantColors: p.DominantColors,
	}
	p.Status = StatusAccepted
	return item, nil
}

// Refuse transitions the item to refused; no Item is created.
func (p *PendingItem) Refuse() error {
	if p.Status != StatusPending {
		return ErrAlreadyModerated
	}
	p.Status = StatusRefused
	return nil
}
