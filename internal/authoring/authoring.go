// Package authoring orchestrates syllabus generation: it aggregates a
// course's source material, runs the three generation passes, and saves
// the result as a new version.
package authoring

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/syllaber/syllaber/internal/courses"
	"github.com/syllaber/syllaber/internal/generate"
)

// DocumentExtractor extracts plain text from a PDF file on disk.
type DocumentExtractor interface {
	Text(path string) (string, error)
}

// WebExtractor fetches a URL and returns its cleaned visible text.
type WebExtractor interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// System defines the authoring contract.
type System interface {
	// Generate aggregates the course's documents and links, produces the
	// English syllabus, Italian syllabus, and topic mapping, and saves
	// them as a new version. If any generation pass fails, nothing is
	// saved and the course is left unchanged.
	Generate(ctx context.Context, course, instructions string) (*courses.Version, error)
}

type service struct {
	store     courses.System
	generator generate.System
	docs      DocumentExtractor
	web       WebExtractor
	logger    *slog.Logger
}

// New creates the authoring system.
func New(store courses.System, generator generate.System, docs DocumentExtractor, web WebExtractor, logger *slog.Logger) System {
	return &service{
		store:     store,
		generator: generator,
		docs:      docs,
		web:       web,
		logger:    logger.With("system", "authoring"),
	}
}

func (s *service) Generate(ctx context.Context, course, instructions string) (*courses.Version, error) {
	content, err := s.store.Content(ctx, course)
	if err != nil {
		return nil, err
	}

	sourceText := s.aggregateDocuments(ctx, course, content.PDFFiles)
	webResources := s.aggregateLinks(ctx, content.Links)

	s.logger.Info("aggregated course material",
		"course", course,
		"documents", len(content.PDFFiles),
		"links", len(content.Links),
		"source_chars", len(sourceText))

	var english, italian, mapping string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		english, err = s.generator.Syllabus(gctx, generate.SyllabusRequest{
			SourceText:   sourceText,
			WebResources: webResources,
			Instructions: instructions,
			Language:     generate.LanguageEnglish,
		})
		return err
	})
	g.Go(func() error {
		var err error
		italian, err = s.generator.Syllabus(gctx, generate.SyllabusRequest{
			SourceText:   sourceText,
			WebResources: webResources,
			Instructions: instructions,
			Language:     generate.LanguageItalian,
		})
		return err
	})
	g.Go(func() error {
		var err error
		mapping, err = s.generator.TopicMapping(gctx, sourceText)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("generate course content: %w", err)
	}

	return s.store.SaveVersion(ctx, course, english, italian, mapping)
}

// aggregateDocuments extracts text from every stored document, marking
// each with a source separator. Documents that fail extraction are
// skipped so one corrupt upload cannot block generation.
func (s *service) aggregateDocuments(ctx context.Context, course string, files []string) string {
	var sb strings.Builder
	for _, file := range files {
		path, err := s.store.DocumentPath(ctx, course, file)
		if err != nil {
			s.logger.Warn("skipping document", "course", course, "file", file, "error", err)
			continue
		}

		text, err := s.docs.Text(path)
		if err != nil {
			s.logger.Warn("skipping document", "course", course, "file", file, "error", err)
			continue
		}

		fmt.Fprintf(&sb, "\n--- Source: %s ---\n%s\n", file, text)
	}
	return sb.String()
}

// aggregateLinks formats the course's reference links and appends any
// text scraped from them. Scraping is best effort; an unreachable link
// still appears in the list by description and URL.
func (s *service) aggregateLinks(ctx context.Context, links []courses.Link) string {
	var sb strings.Builder
	for _, link := range links {
		fmt.Fprintf(&sb, "- %s: %s\n", link.Description, link.URL)
	}

	for _, link := range links {
		text, err := s.web.Fetch(ctx, link.URL)
		if err != nil {
			s.logger.Warn("skipping link", "url", link.URL, "error", err)
			continue
		}
		fmt.Fprintf(&sb, "\n--- Source: %s ---\n%s\n", link.URL, text)
	}
	return sb.String()
}
