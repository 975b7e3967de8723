package app

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"
)

const openAPIVersion = "3.1.0"

// delegatedMethods are documented for every mount. The mounted router decides
// which of them it actually serves.
var delegatedMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
}

type openAPIDocument struct {
	OpenAPI string                          `json:"openapi"`
	Info    openAPIInfo                     `json:"info"`
	Tags    []openAPITag                    `json:"tags,omitempty"`
	Paths   map[string]map[string]operation `json:"paths"`
}

type openAPIInfo struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version"`
}

type openAPITag struct {
	Name string `json:"name"`
}

type operation struct {
	Summary     string              `json:"summary,omitempty"`
	OperationID string              `json:"operationId"`
	Tags        []string            `json:"tags,omitempty"`
	Parameters  []parameter         `json:"parameters,omitempty"`
	Responses   map[string]response `json:"responses"`
}

type parameter struct {
	Name     string         `json:"name"`
	In       string         `json:"in"`
	Required bool           `json:"required"`
	Schema   map[string]any `json:"schema"`
}

type response struct {
	Description string `json:"description"`
}

func (a *App) buildOpenAPI() ([]byte, error) {
	doc := openAPIDocument{
		OpenAPI: openAPIVersion,
		Info: openAPIInfo{
			Title:       a.cfg.App.Title,
			Description: a.cfg.App.Description,
			Version:     a.cfg.App.Version,
		},
		Paths: make(map[string]map[string]operation),
	}

	tags := make(map[string]struct{})
	addOperation := func(path, method string, op operation) {
		if doc.Paths[path] == nil {
			doc.Paths[path] = make(map[string]operation)
		}
		doc.Paths[path][strings.ToLower(method)] = op
		for _, tag := range op.Tags {
			tags[tag] = struct{}{}
		}
	}

	for _, route := range a.routes {
		if route.Hidden {
			continue
		}
		addOperation(route.Pattern, route.Method, operation{
			Summary:     route.Summary,
			OperationID: operationID(route.Method, route.Pattern),
			Tags:        route.Tags,
			Responses: map[string]response{
				"200": {Description: "Successful Response"},
			},
		})
	}

	for _, m := range a.mounts {
		path := strings.TrimSuffix(m.Prefix, "/") + "/{path}"
		for _, method := range delegatedMethods {
			addOperation(path, method, operation{
				Summary:     m.Summary,
				OperationID: operationID(method, path),
				Tags:        m.Tags,
				Parameters: []parameter{
					{Name: "path", In: "path", Required: true, Schema: map[string]any{"type": "string"}},
				},
				Responses: map[string]response{
					"default": {Description: "Delegated response"},
				},
			})
		}
	}

	for tag := range tags {
		doc.Tags = append(doc.Tags, openAPITag{Name: tag})
	}
	sort.Slice(doc.Tags, func(i, j int) bool { return doc.Tags[i].Name < doc.Tags[j].Name })

	return json.Marshal(doc)
}

// operationID turns "GET /api/test" into "get_api_test"; "/" becomes "get_root".
func operationID(method, path string) string {
	name := strings.Trim(path, "/")
	if name == "" {
		name = "root"
	}
	name = strings.NewReplacer("/", "_", "{", "", "}", "").Replace(name)
	return strings.ToLower(method) + "_" + name
}

func (a *App) serveOpenAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(a.openAPI)
}
