//go:build e2e && unix

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
)

type fakePackage struct {
	PackageID   string         `json:"package_id"`
	Name        string         `json:"name"`
	Normalized  string         `json:"normalized_name"`
	Description string         `json:"description"`
	Version     string         `json:"version"`
	Stars       int            `json:"stars"`
	Readme      string         `json:"readme,omitempty"`
	Repository  fakeRepository `json:"repository"`
}

type fakeRepository struct {
	Name             string `json:"name"`
	URL              string `json:"url"`
	Kind             int    `json:"kind"`
	OrganizationName string `json:"organization_name"`
}

// newFakeHub serves count helm charts named chart-00, chart-01 ... plus
// one package called "redis". Free text filters by substring.
func newFakeHub(t *testing.T, count int) *httptest.Server {
	t.Helper()

	packages := []fakePackage{{
		PackageID:   "redis",
		Name:        "redis",
		Normalized:  "redis",
		Description: "In-memory data store",
		Version:     "17.0.1",
		Stars:       99,
		Repository:  fakeRepository{Name: "bitnami", URL: "https://charts.bitnami.com/bitnami", OrganizationName: "bitnami"},
	}}
	for i := 0; i < count; i++ {
		name := fmt.Sprintf("chart-%02d", i)
		packages = append(packages, fakePackage{
			PackageID:   name,
			Name:        name,
			Normalized:  name,
			Description: "Test chart " + strconv.Itoa(i),
			Version:     "1.0." + strconv.Itoa(i),
			Repository:  fakeRepository{Name: "charts", URL: "https://example.com/charts", OrganizationName: "acme"},
		})
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/packages/search", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		text := q.Get("ts_query_web")
		offset, _ := strconv.Atoi(q.Get("offset"))
		limit, _ := strconv.Atoi(q.Get("limit"))

		var matched []fakePackage
		for _, p := range packages {
			if text == "" || strings.Contains(p.Name, text) {
				matched = append(matched, p)
			}
		}
		page := []fakePackage{}
		if offset < len(matched) {
			end := offset + limit
			if end > len(matched) {
				end = len(matched)
			}
			page = matched[offset:end]
		}

		w.Header().Set("Pagination-Total-Count", strconv.Itoa(len(matched)))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"packages": page,
			"facets":   []map[string]any{{
				"title":      "Kind",
				"filter_key": "kind",
				"options":    []map[string]any{{"id": 0, "name": "Helm charts", "total": len(packages)}},
			}},
		})
	})
	mux.HandleFunc("/api/v1/packages/helm/", func(w http.ResponseWriter, r *http.Request) {
		parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/api/v1/packages/helm/"), "/")
		if len(parts) != 2 {
			http.NotFound(w, r)
			return
		}
		for _, p := range packages {
			if p.Repository.Name == parts[0] && p.Name == parts[1] {
				p.Readme = "# " + p.Name + "\n\nReadme for " + p.Name
				w.Header().Set("Content-Type", "application/json")
				_ = json.NewEncoder(w).Encode(p)
				return
			}
		}
		http.NotFound(w, r)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}
