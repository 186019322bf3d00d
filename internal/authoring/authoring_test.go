package authoring_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/syllaber/syllaber/internal/authoring"
	"github.com/syllaber/syllaber/internal/config"
	"github.com/syllaber/syllaber/internal/courses"
	"github.com/syllaber/syllaber/internal/generate"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newStore(t *testing.T) courses.System {
	t.Helper()

	sys, err := courses.New(&config.StorageConfig{BasePath: t.TempDir()}, nil, discardLogger())
	if err != nil {
		t.Fatalf("courses.New() failed: %v", err)
	}
	return sys
}

type stubGenerator struct {
	mu       sync.Mutex
	requests []generate.SyllabusRequest
	failLang generate.Language
}

func (g *stubGenerator) Syllabus(ctx context.Context, req generate.SyllabusRequest) (string, error) {
	g.mu.Lock()
	g.requests = append(g.requests, req)
	g.mu.Unlock()

	if req.Language == g.failLang {
		return "", errors.New("generation failed")
	}
	return fmt.Sprintf("# Syllabus (%s)", req.Language), nil
}

func (g *stubGenerator) TopicMapping(ctx context.Context, sourceText string) (string, error) {
	return "# Topic Mapping", nil
}

func (g *stubGenerator) Ready() bool { return true }

type stubDocs struct {
	texts map[string]string
	err   error
}

func (d stubDocs) Text(path string) (string, error) {
	if d.err != nil {
		return "", d.err
	}
	for name, text := range d.texts {
		if strings.HasSuffix(path, name) {
			return text, nil
		}
	}
	return "extracted text", nil
}

type stubWeb struct {
	text string
	err  error
}

func (w stubWeb) Fetch(ctx context.Context, url string) (string, error) {
	if w.err != nil {
		return "", w.err
	}
	return w.text, nil
}

func TestGenerate(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	if err := store.Create(ctx, "Physics101"); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if err := store.AddDocument(ctx, "Physics101", "mechanics.pdf", []byte("%PDF-")); err != nil {
		t.Fatalf("AddDocument() failed: %v", err)
	}
	if err := store.AddLink(ctx, "Physics101", "https://example.com", "Example"); err != nil {
		t.Fatalf("AddLink() failed: %v", err)
	}

	gen := &stubGenerator{}
	sys := authoring.New(store, gen,
		stubDocs{texts: map[string]string{"mechanics.pdf": "Newton's laws"}},
		stubWeb{text: "scraped page text"},
		discardLogger())

	v, err := sys.Generate(ctx, "Physics101", "Focus on labs")
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	if v.Number != 1 {
		t.Errorf("version number = %d, want 1", v.Number)
	}

	content, err := store.VersionContent(ctx, "Physics101", 1)
	if err != nil {
		t.Fatalf("VersionContent() failed: %v", err)
	}
	if content.SyllabusEN != "# Syllabus (en)" {
		t.Errorf("SyllabusEN = %q", content.SyllabusEN)
	}
	if content.SyllabusIT != "# Syllabus (it)" {
		t.Errorf("SyllabusIT = %q", content.SyllabusIT)
	}
	if content.TopicMapping != "# Topic Mapping" {
		t.Errorf("TopicMapping = %q", content.TopicMapping)
	}

	if len(gen.requests) != 2 {
		t.Fatalf("syllabus requests = %d, want 2", len(gen.requests))
	}
	for _, req := range gen.requests {
		if !strings.Contains(req.SourceText, "--- Source: mechanics.pdf ---") {
			t.Errorf("source text missing document separator: %q", req.SourceText)
		}
		if !strings.Contains(req.SourceText, "Newton's laws") {
			t.Errorf("source text missing extracted content: %q", req.SourceText)
		}
		if !strings.Contains(req.WebResources, "- Example: https://example.com") {
			t.Errorf("web resources missing link entry: %q", req.WebResources)
		}
		if !strings.Contains(req.WebResources, "scraped page text") {
			t.Errorf("web resources missing scraped text: %q", req.WebResources)
		}
		if req.Instructions != "Focus on labs" {
			t.Errorf("instructions = %q", req.Instructions)
		}
	}
}

func TestGenerate_FailureAbortsSave(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	if err := store.Create(ctx, "Physics101"); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	gen := &stubGenerator{failLang: generate.LanguageItalian}
	sys := authoring.New(store, gen, stubDocs{}, stubWeb{}, discardLogger())

	if _, err := sys.Generate(ctx, "Physics101", ""); err == nil {
		t.Fatal("Generate() should fail when one pass fails")
	}

	// Nothing may be saved on failure.
	ledger, err := store.Versions(ctx, "Physics101")
	if err != nil {
		t.Fatalf("Versions() failed: %v", err)
	}
	if len(ledger) != 0 {
		t.Errorf("ledger = %v, want empty after failed generation", ledger)
	}
}

func TestGenerate_SkipsBrokenSources(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()

	if err := store.Create(ctx, "Physics101"); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if err := store.AddDocument(ctx, "Physics101", "broken.pdf", []byte("x")); err != nil {
		t.Fatalf("AddDocument() failed: %v", err)
	}
	if err := store.AddLink(ctx, "Physics101", "https://unreachable.example", "Dead link"); err != nil {
		t.Fatalf("AddLink() failed: %v", err)
	}

	gen := &stubGenerator{}
	sys := authoring.New(store, gen,
		stubDocs{err: errors.New("extraction failed")},
		stubWeb{err: errors.New("unreachable")},
		discardLogger())

	// Broken sources are skipped, not fatal.
	if _, err := sys.Generate(ctx, "Physics101", ""); err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	req := gen.requests[0]
	if strings.Contains(req.SourceText, "broken.pdf") {
		t.Errorf("source text should not reference failed document: %q", req.SourceText)
	}
	// The link still appears in the resource list even though scraping failed.
	if !strings.Contains(req.WebResources, "- Dead link: https://unreachable.example") {
		t.Errorf("web resources missing link entry: %q", req.WebResources)
	}
}

func TestGenerate_CourseNotFound(t *testing.T) {
	store := newStore(t)

	sys := authoring.New(store, &stubGenerator{}, stubDocs{}, stubWeb{}, discardLogger())

	_, err := sys.Generate(context.Background(), "NoSuchCourse", "")
	if !errors.Is(err, courses.ErrCourseNotFound) {
		t.Errorf("Generate() error = %v, want ErrCourseNotFound", err)
	}
}
