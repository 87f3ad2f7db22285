package viewset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSnakeCase(t *testing.T) {
	assert.Equal(t, "collection", snakeCase("Collection"))
	assert.Equal(t, "pending_item", snakeCase("PendingItem"))
	assert.Equal(t, "snap", snakeCase("Snap"))
}

func TestKebabCase(t *testing.T) {
	assert.Equal(t, "collection", kebabCase("Collection"))
	assert.Equal(t, "pending-item", kebabCase("PendingItem"))
}

func TestPlurals(t *testing.T) {
	assert.Equal(t, "pending_items", snakePlural("PendingItem"))
	assert.Equal(t, "pending-items", kebabPlural("PendingItem"))
	assert.Equal(t, "collections", kebabPlural("Collection"))
}
