package viewset

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

// Route is one derived endpoint of a resource definition.
type Route struct {
	Method      string
	Path        string
	Name        string
	OperationID string
	Summary     string
}

func (vs *ViewSet) routeFor(v view) Route {
	entity := vs.name
	base := "/" + kebabPlural(entity)

	if v.detail {
		// Nested under the parent id, e.g. /collections/:id/pending-items.
		return Route{
			Method:      v.method,
			Path:        base + "/:id/" + kebabPlural(v.child),
			Name:        snakeCase(entity) + "_" + snakePlural(v.child),
			OperationID: string(v.kind) + "_" + snakeCase(entity) + "_" + snakePlural(v.child),
			Summary:     fmt.Sprintf("%s %s of a %s", title(v.kind), v.child, entity),
		}
	}

	switch v.kind {
	case KindList, KindCreate:
		op := string(v.kind) + "_" + snakeCase(entity)
		summary := fmt.Sprintf("%s %s", title(v.kind), entity)
		if v.kind == KindList {
			op = "list_" + snakePlural(entity)
			summary = fmt.Sprintf("List %ss", entity)
		}
		return Route{
			Method:      v.method,
			Path:        base,
			Name:        snakePlural(entity),
			OperationID: op,
			Summary:     summary,
		}
	default:
		return Route{
			Method:      v.method,
			Path:        base + "/:id",
			Name:        snakeCase(entity),
			OperationID: string(v.kind) + "_" + snakeCase(entity),
			Summary:     fmt.Sprintf("%s %s", title(v.kind), entity),
		}
	}
}

func title(k Kind) string {
	switch k {
	case KindList:
		return "List"
	case KindRetrieve:
		return "Retrieve"
	case KindCreate:
		return "Create"
	case KindUpdate:
		return "Update"
	case KindDelete:
		return "Delete"
	}
	return string(k)
}

// Routes derives the route table without mounting anything. The table is a
// pure function of the attached views: same definition, same table.
func (vs *ViewSet) Routes() []Route {
	routes := make([]Route, 0, len(vs.views))
	seen := make(map[string]string, len(vs.views))
	for _, v := range vs.views {
		route := vs.routeFor(v)
		key := route.Method + " " + route.Path
		if prev, ok := seen[key]; ok {
			panic(fmt.Sprintf("viewset %s: %s claimed by both %s and %s", vs.name, key, prev, route.OperationID))
		}
		seen[key] = route.OperationID
		routes = append(routes, route)
	}
	return routes
}

// Register mounts every view on the router and returns the route table.
// Call once at startup; duplicate (method, path) pairs panic.
func (vs *ViewSet) Register(r gin.IRouter) []Route {
	routes := vs.Routes()
	for i, v := range vs.views {
		r.Handle(v.method, routes[i].Path, v.handler)
	}
	return routes
}
