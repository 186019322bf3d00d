package courses

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/syllaber/syllaber/internal/config"
	"github.com/syllaber/syllaber/internal/lifecycle"
)

const (
	pdfsDir       = "pdfs"
	outputDir     = "output"
	resourcesFile = "resources.json"
	versionsFile  = "versions.json"
)

// Course names double as directory names, so they are restricted to a
// filesystem-safe alphabet.
var namePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 ._-]*$`)

type store struct {
	root     string
	renderer Renderer
	logger   *slog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates a filesystem-backed course store. The root directory is
// resolved to an absolute path during construction; creation is deferred
// to Start for lifecycle integration. The renderer may be nil, in which
// case no PDF byproducts are produced.
func New(cfg *config.StorageConfig, renderer Renderer, logger *slog.Logger) (System, error) {
	if cfg.BasePath == "" {
		return nil, fmt.Errorf("base_path required")
	}

	absPath, err := filepath.Abs(cfg.BasePath)
	if err != nil {
		return nil, fmt.Errorf("resolve base_path: %w", err)
	}

	return &store{
		root:     absPath,
		renderer: renderer,
		logger:   logger.With("system", "courses"),
		locks:    map[string]*sync.Mutex{},
	}, nil
}

func (s *store) Start(lc *lifecycle.Coordinator) error {
	s.logger.Info("starting course store", "root", s.root)

	lc.OnStartup(func() {
		if err := os.MkdirAll(s.root, 0755); err != nil {
			s.logger.Error("course store initialization failed", "error", err)
			return
		}
		s.checkIntegrity()
	})

	return nil
}

// checkIntegrity compares each course's ledger against its output
// directories. The ledger is canonical; divergence is reported, never
// silently repaired.
func (s *store) checkIntegrity() {
	names, err := s.list()
	if err != nil {
		s.logger.Error("integrity check failed", "error", err)
		return
	}

	for _, name := range names {
		ledger, err := s.readLedger(name)
		if err != nil {
			s.logger.Error("integrity check: unreadable ledger", "course", name, "error", err)
			continue
		}

		known := make(map[string]bool, len(ledger))
		for _, v := range ledger {
			dir := s.versionDir(name, v.Number)
			known[filepath.Base(dir)] = true
			if _, err := os.Stat(dir); err != nil {
				s.logger.Error("integrity error: ledger entry without version directory",
					"course", name, "version", v.Number)
			}
		}

		entries, err := os.ReadDir(filepath.Join(s.root, name, outputDir))
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() && !known[e.Name()] {
				s.logger.Error("integrity error: version directory without ledger entry",
					"course", name, "dir", e.Name())
			}
		}
	}
}

func (s *store) Create(ctx context.Context, name string) error {
	if err := validateName(name); err != nil {
		return err
	}

	if err := os.MkdirAll(s.root, 0755); err != nil {
		return fmt.Errorf("create course: %w", err)
	}

	// Mkdir is the existence check: concurrent creates race on Stat,
	// but only one of them can create the directory.
	path := filepath.Join(s.root, name)
	if err := os.Mkdir(path, 0755); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", ErrCourseExists, name)
		}
		return fmt.Errorf("create course: %w", err)
	}

	if err := os.MkdirAll(filepath.Join(path, pdfsDir), 0755); err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	if err := os.MkdirAll(filepath.Join(path, outputDir), 0755); err != nil {
		return fmt.Errorf("create course: %w", err)
	}

	if err := writeJSON(filepath.Join(path, resourcesFile), resources{Links: []Link{}}); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(path, versionsFile), []Version{}); err != nil {
		return err
	}

	s.logger.Info("course created", "course", name)
	return nil
}

func (s *store) List(ctx context.Context) ([]string, error) {
	return s.list()
}

func (s *store) list() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("list courses: %w", err)
	}

	names := []string{}
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

func (s *store) Delete(ctx context.Context, name string) error {
	path, err := s.coursePath(name)
	if err != nil {
		return err
	}

	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("delete course: %w", err)
	}

	s.logger.Info("course deleted", "course", name)
	return nil
}

func (s *store) AddDocument(ctx context.Context, course, filename string, data []byte) error {
	path, err := s.coursePath(course)
	if err != nil {
		return err
	}

	safe, err := safeFilename(filename)
	if err != nil {
		return err
	}

	// Last write wins: an existing document with the same filename is
	// silently replaced.
	if err := writeFileAtomic(filepath.Join(path, pdfsDir, safe), data); err != nil {
		return fmt.Errorf("store document: %w", err)
	}

	s.logger.Info("document stored", "course", course, "filename", safe, "size_bytes", len(data))
	return nil
}

func (s *store) DocumentPath(ctx context.Context, course, filename string) (string, error) {
	path, err := s.coursePath(course)
	if err != nil {
		return "", err
	}

	safe, err := safeFilename(filename)
	if err != nil {
		return "", err
	}

	full := filepath.Join(path, pdfsDir, safe)
	if _, err := os.Stat(full); err != nil {
		return "", fmt.Errorf("%w: %s", ErrDocumentNotFound, filename)
	}
	return full, nil
}

func (s *store) AddLink(ctx context.Context, course, url, description string) error {
	path, err := s.coursePath(course)
	if err != nil {
		return err
	}

	unlock := s.lock(course)
	defer unlock()

	file := filepath.Join(path, resourcesFile)

	var res resources
	if err := readJSON(file, &res); err != nil {
		return err
	}

	res.Links = append(res.Links, Link{URL: url, Description: description})

	if err := writeJSON(file, res); err != nil {
		return err
	}

	s.logger.Info("link added", "course", course, "url", url)
	return nil
}

func (s *store) Content(ctx context.Context, course string) (*CourseContent, error) {
	path, err := s.coursePath(course)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(filepath.Join(path, pdfsDir))
	if err != nil {
		return nil, fmt.Errorf("read documents: %w", err)
	}

	pdfFiles := []string{}
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(strings.ToLower(e.Name()), ".pdf") {
			pdfFiles = append(pdfFiles, e.Name())
		}
	}

	var res resources
	if err := readJSON(filepath.Join(path, resourcesFile), &res); err != nil {
		return nil, err
	}

	return &CourseContent{PDFFiles: pdfFiles, Links: res.Links}, nil
}

func (s *store) SaveVersion(ctx context.Context, course, syllabusEN, syllabusIT, topicMapping string) (*Version, error) {
	path, err := s.coursePath(course)
	if err != nil {
		return nil, err
	}

	unlock := s.lock(course)
	defer unlock()

	ledger, err := s.readLedger(course)
	if err != nil {
		return nil, err
	}

	number := len(ledger) + 1
	dir := s.versionDir(course, number)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create version directory: %w", err)
	}

	entry := Version{
		Number:    number,
		Name:      fmt.Sprintf("v%d", number),
		Timestamp: time.Now().Format(time.RFC3339),
	}

	texts := map[Artifact]string{
		ArtifactSyllabusEN:   syllabusEN,
		ArtifactSyllabusIT:   syllabusIT,
		ArtifactTopicMapping: topicMapping,
	}

	for _, artifact := range Artifacts {
		if err := writeFileAtomic(filepath.Join(dir, artifact.MarkdownFilename()), []byte(texts[artifact])); err != nil {
			return nil, fmt.Errorf("write %s: %w", artifact, err)
		}
		s.renderArtifact(course, &entry, artifact, texts[artifact], dir)
	}

	ledger = append(ledger, entry)
	if err := writeJSON(filepath.Join(path, versionsFile), ledger); err != nil {
		return nil, err
	}

	s.logger.Info("version saved", "course", course, "version", number,
		"pdf_en", entry.PDFEnglish != nil, "pdf_it", entry.PDFItalian != nil, "pdf_tm", entry.PDFTopicMap != nil)
	return &entry, nil
}

// renderArtifact renders one artifact's PDF byproduct. Rendering is best
// effort: a failure is logged and the ledger field is left untouched.
func (s *store) renderArtifact(course string, entry *Version, artifact Artifact, text, dir string) {
	if s.renderer == nil {
		return
	}

	data, err := s.renderer.Render(text)
	if err != nil {
		s.logger.Warn("pdf rendering failed", "course", course, "version", entry.Number,
			"artifact", artifact, "error", err)
		return
	}

	filename := artifact.PDFFilename(course, entry.Number)
	if err := writeFileAtomic(filepath.Join(dir, filename), data); err != nil {
		s.logger.Warn("pdf write failed", "course", course, "version", entry.Number,
			"artifact", artifact, "error", err)
		return
	}

	*artifact.pdf(entry) = &filename
}

func (s *store) Versions(ctx context.Context, course string) ([]Version, error) {
	if _, err := s.coursePath(course); err != nil {
		return nil, err
	}
	return s.readLedger(course)
}

func (s *store) VersionContent(ctx context.Context, course string, version int) (*VersionContent, error) {
	if _, err := s.coursePath(course); err != nil {
		return nil, err
	}

	entry, err := s.findVersion(course, version)
	if err != nil {
		return nil, err
	}

	dir := s.versionDir(course, version)
	content := &VersionContent{Version: *entry}

	texts := map[Artifact]*string{
		ArtifactSyllabusEN:   &content.SyllabusEN,
		ArtifactSyllabusIT:   &content.SyllabusIT,
		ArtifactTopicMapping: &content.TopicMapping,
	}

	for _, artifact := range Artifacts {
		data, err := os.ReadFile(filepath.Join(dir, artifact.MarkdownFilename()))
		if err != nil {
			// The ledger says this version exists but the Markdown is
			// gone: the directory was removed out of band.
			return nil, fmt.Errorf("%w: v%d (%s missing)", ErrVersionNotFound, version, artifact.MarkdownFilename())
		}
		*texts[artifact] = string(data)
	}

	content.PDFEnglish = s.loadPDF(dir, entry.PDFEnglish)
	content.PDFItalian = s.loadPDF(dir, entry.PDFItalian)
	content.PDFTopicMap = s.loadPDF(dir, entry.PDFTopicMap)

	return content, nil
}

func (s *store) loadPDF(dir string, filename *string) *PDFFile {
	if filename == nil {
		return nil
	}

	data, err := os.ReadFile(filepath.Join(dir, *filename))
	if err != nil {
		s.logger.Warn("recorded pdf missing from version directory", "filename", *filename, "error", err)
		return nil
	}
	return &PDFFile{Filename: *filename, Data: data}
}

func (s *store) UpdateVersionContent(ctx context.Context, course string, version int, artifact Artifact, text string) (*Version, error) {
	if _, err := ParseArtifact(string(artifact)); err != nil {
		return nil, err
	}

	path, err := s.coursePath(course)
	if err != nil {
		return nil, err
	}

	unlock := s.lock(course)
	defer unlock()

	ledger, err := s.readLedger(course)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range ledger {
		if ledger[i].Number == version {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: v%d", ErrVersionNotFound, version)
	}

	dir := s.versionDir(course, version)
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("%w: v%d (directory missing)", ErrVersionNotFound, version)
	}

	if err := writeFileAtomic(filepath.Join(dir, artifact.MarkdownFilename()), []byte(text)); err != nil {
		return nil, fmt.Errorf("write %s: %w", artifact, err)
	}

	// Re-render only this artifact; the previous PDF (possibly stale)
	// is kept when rendering fails.
	s.renderArtifact(course, &ledger[idx], artifact, text, dir)

	if err := writeJSON(filepath.Join(path, versionsFile), ledger); err != nil {
		return nil, err
	}

	s.logger.Info("version updated", "course", course, "version", version, "artifact", artifact)
	entry := ledger[idx]
	return &entry, nil
}

func (s *store) readLedger(course string) ([]Version, error) {
	var ledger []Version
	err := readJSON(filepath.Join(s.root, course, versionsFile), &ledger)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []Version{}, nil
		}
		return nil, err
	}
	if ledger == nil {
		ledger = []Version{}
	}
	return ledger, nil
}

func (s *store) findVersion(course string, version int) (*Version, error) {
	ledger, err := s.readLedger(course)
	if err != nil {
		return nil, err
	}

	byNumber := make(map[int]*Version, len(ledger))
	for i := range ledger {
		byNumber[ledger[i].Number] = &ledger[i]
	}

	entry, ok := byNumber[version]
	if !ok {
		return nil, fmt.Errorf("%w: v%d", ErrVersionNotFound, version)
	}
	return entry, nil
}

func (s *store) versionDir(course string, version int) string {
	return filepath.Join(s.root, course, outputDir, fmt.Sprintf("v%d", version))
}

// coursePath validates the course name and resolves its directory,
// returning ErrCourseNotFound if it does not exist.
func (s *store) coursePath(name string) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}

	path := filepath.Join(s.root, name)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("%w: %s", ErrCourseNotFound, name)
	}
	return path, nil
}

// lock serializes mutating operations per course. Read-modify-write of
// resources.json and versions.json is not otherwise atomic.
func (s *store) lock(course string) func() {
	s.mu.Lock()
	m, ok := s.locks[course]
	if !ok {
		m = &sync.Mutex{}
		s.locks[course] = m
	}
	s.mu.Unlock()

	m.Lock()
	return m.Unlock
}

func validateName(name string) error {
	if name == "" || len(name) > 120 || !namePattern.MatchString(name) || strings.HasSuffix(name, " ") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

func safeFilename(name string) (string, error) {
	base := filepath.Base(filepath.Clean(name))
	if base == "" || base == "." || base == ".." || base == string(filepath.Separator) {
		return "", fmt.Errorf("%w: %q", ErrInvalidFile, name)
	}
	return strings.ReplaceAll(base, " ", "_"), nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	return writeFileAtomic(path, data)
}

func writeFileAtomic(path string, data []byte) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
