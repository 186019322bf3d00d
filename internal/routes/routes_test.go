package routes_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/syllaber/syllaber/internal/routes"
	pkgroutes "github.com/syllaber/syllaber/pkg/routes"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func named(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(name))
	}
}

func TestBuild_Routes(t *testing.T) {
	r := routes.New(discardLogger())
	r.RegisterRoute(pkgroutes.Route{Method: "GET", Pattern: "/healthz", Handler: named("health")})

	handler := r.Build()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Body.String() != "health" {
		t.Errorf("body = %q, want health", rec.Body.String())
	}
}

func TestBuild_NestedGroups(t *testing.T) {
	r := routes.New(discardLogger())
	r.RegisterGroup(pkgroutes.Group{
		Prefix: "/api",
		Children: []pkgroutes.Group{
			{
				Prefix: "/courses",
				Routes: []pkgroutes.Route{
					{Method: "GET", Pattern: "", Handler: named("list")},
					{Method: "GET", Pattern: "/{course}", Handler: named("content")},
				},
			},
		},
	})

	handler := r.Build()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/courses", nil))
	if rec.Body.String() != "list" {
		t.Errorf("GET /api/courses body = %q, want list", rec.Body.String())
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/courses/Physics101", nil))
	if rec.Body.String() != "content" {
		t.Errorf("GET /api/courses/Physics101 body = %q, want content", rec.Body.String())
	}
}

func TestBuild_MethodMismatch(t *testing.T) {
	r := routes.New(discardLogger())
	r.RegisterRoute(pkgroutes.Route{Method: "POST", Pattern: "/courses", Handler: named("create")})

	handler := r.Build()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/courses", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}
