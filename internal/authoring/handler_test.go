package authoring_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/syllaber/syllaber/internal/authoring"
	"github.com/syllaber/syllaber/internal/courses"
	"github.com/syllaber/syllaber/internal/generate"
	"github.com/syllaber/syllaber/internal/routes"
)

type stubAuthoring struct {
	instructions string
	err          error
}

func (s *stubAuthoring) Generate(ctx context.Context, course, instructions string) (*courses.Version, error) {
	s.instructions = instructions
	if s.err != nil {
		return nil, s.err
	}
	return &courses.Version{Number: 1, Name: "v1"}, nil
}

func newAuthoringServer(t *testing.T, sys authoring.System) *httptest.Server {
	t.Helper()

	handler := authoring.NewHandler(sys, discardLogger())
	r := routes.New(discardLogger())
	r.RegisterGroup(handler.Routes())

	srv := httptest.NewServer(r.Build())
	t.Cleanup(srv.Close)
	return srv
}

func TestHandler_Generate(t *testing.T) {
	stub := &stubAuthoring{}
	srv := newAuthoringServer(t, stub)

	resp, err := http.Post(srv.URL+"/courses/Physics101/generate", "application/json",
		strings.NewReader(`{"instructions":"Focus on labs"}`))
	if err != nil {
		t.Fatalf("POST generate failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}
	if stub.instructions != "Focus on labs" {
		t.Errorf("instructions = %q", stub.instructions)
	}

	var v courses.Version
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if v.Name != "v1" {
		t.Errorf("version name = %q, want v1", v.Name)
	}
}

func TestHandler_Generate_EmptyBody(t *testing.T) {
	stub := &stubAuthoring{}
	srv := newAuthoringServer(t, stub)

	// Instructions are optional; an empty body is accepted.
	resp, err := http.Post(srv.URL+"/courses/Physics101/generate", "application/json", nil)
	if err != nil {
		t.Fatalf("POST generate failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusCreated)
	}
}

func TestHandler_Generate_ErrorMapping(t *testing.T) {
	cases := map[error]int{
		courses.ErrCourseNotFound:       http.StatusNotFound,
		generate.ErrNoCredential:        http.StatusServiceUnavailable,
		generate.ErrEmptyResponse:       http.StatusBadGateway,
		fmt.Errorf("unexpected failure"): http.StatusInternalServerError,
	}

	for stubErr, want := range cases {
		srv := newAuthoringServer(t, &stubAuthoring{err: stubErr})

		resp, err := http.Post(srv.URL+"/courses/Physics101/generate", "application/json", nil)
		if err != nil {
			t.Fatalf("POST generate failed: %v", err)
		}
		resp.Body.Close()

		if resp.StatusCode != want {
			t.Errorf("error %v: status = %d, want %d", stubErr, resp.StatusCode, want)
		}
	}
}
