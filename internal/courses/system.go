package courses

import (
	"context"

	"github.com/syllaber/syllaber/internal/lifecycle"
)

// Renderer converts Markdown text to PDF bytes. Implementations return
// an error when rendering fails; the store tolerates failures and
// simply omits the PDF byproduct.
type Renderer interface {
	Render(markdown string) ([]byte, error)
}

// System defines the course store operations. The store exclusively
// owns the filesystem tree under its root; no other component reads
// or writes it directly.
type System interface {
	// Create creates an empty course tree. Returns ErrCourseExists if
	// a course with that name already exists, ErrInvalidName if the
	// name is not filesystem-safe. No side effects on failure.
	Create(ctx context.Context, name string) error

	// List returns the names of existing courses.
	List(ctx context.Context) ([]string, error)

	// Delete removes a course and everything nested under it,
	// including all versions and PDFs. Irreversible.
	Delete(ctx context.Context, name string) error

	// AddDocument stores a source document under the course's pdfs
	// directory. Adding a document with an existing filename
	// overwrites it: last write wins.
	AddDocument(ctx context.Context, course, filename string, data []byte) error

	// DocumentPath resolves the on-disk path of a stored document.
	DocumentPath(ctx context.Context, course, filename string) (string, error)

	// AddLink appends a web resource link to the course.
	AddLink(ctx context.Context, course, url, description string) error

	// Content returns the course's current document filenames and links.
	Content(ctx context.Context, course string) (*CourseContent, error)

	// SaveVersion allocates the next version number, persists the three
	// Markdown artifacts, renders each to PDF independently (a failure
	// for one artifact does not block the others), and appends a ledger
	// entry. Returns the new ledger entry.
	SaveVersion(ctx context.Context, course, syllabusEN, syllabusIT, topicMapping string) (*Version, error)

	// Versions returns the full ledger for the course, oldest first.
	Versions(ctx context.Context, course string) ([]Version, error)

	// VersionContent loads the three Markdown artifacts and any
	// available PDF byproducts for a version.
	VersionContent(ctx context.Context, course string, version int) (*VersionContent, error)

	// UpdateVersionContent overwrites one artifact's Markdown in place,
	// re-renders only that artifact's PDF, and reconciles the ledger.
	// A renderer failure leaves the Markdown persisted and the previous
	// PDF byproduct untouched.
	UpdateVersionContent(ctx context.Context, course string, version int, artifact Artifact, text string) (*Version, error)

	// Start registers lifecycle hooks: root directory creation and the
	// ledger/directory integrity check.
	Start(lc *lifecycle.Coordinator) error
}
