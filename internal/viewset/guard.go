package viewset

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Guard authorizes a request before the view body runs. id is the path id
// of the target (or parent, on nested routes) and uuid.Nil on
// collection-scoped routes. Guards are stateless and reusable across views;
// they run in declared order and the first failure aborts the request
// before any mutation happens.
type Guard func(c *gin.Context, id uuid.UUID) error

func runGuards(c *gin.Context, id uuid.UUID, guards []Guard) error {
	for _, guard := range guards {
		if err := guard(c, id); err != nil {
			return err
		}
	}
	return nil
}
