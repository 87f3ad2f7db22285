package collections

import (
	"time"

	"collection-app/internal/domain/users"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Collection struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name           string         `gorm:"size:255;not null;uniqueIndex:unique_collection_name"`
	Description    string         `gorm:"size:255;not null"`
	ObjectName     *string        `gorm:"size:255"`
	DominantColors datatypes.JSON `gorm:"type:jsonb"`

	CreatorID *uuid.UUID  `gorm:"type:uuid"`
	Creator   *users.User `gorm:"foreignKey:CreatorID;constraint:OnDelete:SET NULL"`

	CreatedAt time.Time
	UpdatedAt time.Time

	// Annotation filled by a count scope, never stored.
	NbItems int64 `gorm:"->;-:migration"`
}

func (c *Collection) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type Item struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Name           string         `gorm:"size:255;not null;uniqueIndex:unique_item_collection_name"`
	Description    string         `gorm:"size:255;not null"`
	ObjectName     *string        `gorm:"size:255"`
	DominantColors datatypes.JSON `gorm:"type:jsonb"`

	CollectionID uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:unique_item_collection_name"`
	Collection   *Collection `gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time

	NbSnaps int64 `gorm:"->;-:migration"`
}

func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

type Snap struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Comment        string         `gorm:"size:255;not null"`
	ObjectName     string         `gorm:"size:255;not null"`
	DominantColors datatypes.JSON `gorm:"type:jsonb"`

	ItemID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:unique_item_user"`
	Item   *Item     `gorm:"constraint:OnDelete:CASCADE"`

	UserID uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:unique_item_user"`
	User   *users.User `gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time

	NbLikes    int64 `gorm:"->;-:migration"`
	NbDislikes int64 `gorm:"->;-:migration"`
}

func (s *Snap) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

type Like struct {
	ID    uint `gorm:"primaryKey"`
	Liked bool `gorm:"not null;default:true"`

	SnapID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:unique_like_user_snap"`
	Snap   *Snap     `gorm:"constraint:OnDelete:CASCADE"`

	UserID uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:unique_like_user_snap"`
	User   *users.User `gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
