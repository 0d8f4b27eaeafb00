package handlers

import (
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/starwars-blog/api/internal/api/types"
)

// Sitemap lists every registered route except docs and probes.
// @Summary  List endpoints
// @Tags     meta
// @Produce  json
// @Success  200  {object}  types.SitemapResponse
// @Router   / [get]
func Sitemap(routes chi.Routes) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		endpoints := make([]types.Endpoint, 0)
		_ = chi.Walk(routes, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
			if route == "/" || strings.HasPrefix(route, "/docs") || route == "/metrics" ||
				route == "/healthz" || route == "/readyz" {
				return nil
			}
			if len(route) > 1 {
				route = strings.TrimSuffix(route, "/")
			}
			endpoints = append(endpoints, types.Endpoint{Method: method, Path: route})
			return nil
		})
		sort.Slice(endpoints, func(i, j int) bool {
			if endpoints[i].Path != endpoints[j].Path {
				return endpoints[i].Path < endpoints[j].Path
			}
			return endpoints[i].Method < endpoints[j].Method
		})
		writeJSON(w, http.StatusOK, types.SitemapResponse{Endpoints: endpoints})
	}
}

// NotFound and MethodNotAllowed keep unmatched requests on the JSON contract.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeMsg(w, http.StatusNotFound, "Not found")
}

func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeMsg(w, http.StatusMethodNotAllowed, "Method not allowed")
}
