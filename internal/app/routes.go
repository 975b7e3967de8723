package app

import "net/http"

var diagnosticsTags = []string{"diagnostics"}

func (a *App) routeTable() []Route {
	return []Route{
		{
			Method:  http.MethodGet,
			Pattern: "/",
			Summary: "Welcome message",
			Tags:    diagnosticsTags,
			Handler: a.root,
		},
		{
			Method:  http.MethodGet,
			Pattern: "/health",
			Summary: "Liveness probe",
			Tags:    diagnosticsTags,
			Handler: a.health,
		},
		{
			Method:  http.MethodGet,
			Pattern: "/api/test",
			Summary: "Connectivity check without authentication",
			Tags:    diagnosticsTags,
			Handler: a.test,
		},
		{
			Method:  http.MethodGet,
			Pattern: "/openapi.json",
			Hidden:  true,
			Handler: a.serveOpenAPI,
		},
	}
}

// allowedMethods lists the table methods registered for an exact path. GET
// routes also answer HEAD through middleware.GetHead.
func (a *App) allowedMethods(path string) []string {
	var methods []string
	for _, route := range a.routes {
		if route.Pattern != path {
			continue
		}
		methods = append(methods, route.Method)
		if route.Method == http.MethodGet {
			methods = append(methods, http.MethodHead)
		}
	}
	return methods
}
