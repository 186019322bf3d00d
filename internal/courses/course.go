// Package courses provides the file-tree-backed course store: course
// creation and deletion, uploaded source documents, web resource links,
// and the versioned ledger of generated syllabus artifacts.
//
// Layout under the configured root, one directory per course:
//
//	<root>/<course>/
//	  pdfs/<filename>.pdf
//	  resources.json
//	  versions.json
//	  output/v<N>/syllabus_en.md, syllabus_it.md, topic_mapping.md, *.pdf
//
// The ledger (versions.json) is canonical for which versions exist and
// for version numbering; the output directories are derived storage.
package courses

// Link is a web resource attached to a course. Links are append-only
// and kept in insertion order.
type Link struct {
	URL         string `json:"url"`
	Description string `json:"description"`
}

// CourseContent is the current set of uploaded documents and links
// for a course.
type CourseContent struct {
	PDFFiles []string `json:"pdf_files"`
	Links    []Link   `json:"links"`
}

// Version is a ledger entry describing one generated version. The
// PDF fields hold rendered file names, or nil when rendering failed
// or has not happened for that artifact.
type Version struct {
	Number      int     `json:"version"`
	Name        string  `json:"name"`
	Timestamp   string  `json:"timestamp"`
	PDFEnglish  *string `json:"pdf_en"`
	PDFItalian  *string `json:"pdf_it"`
	PDFTopicMap *string `json:"pdf_tm"`
}

// PDFFile is a rendered PDF byproduct loaded from a version directory.
type PDFFile struct {
	Filename string `json:"filename"`
	Data     []byte `json:"data"`
}

// VersionContent is the full content of one version: the three Markdown
// artifacts plus whichever PDF byproducts exist on disk.
type VersionContent struct {
	Version      Version  `json:"version"`
	SyllabusEN   string   `json:"syllabus_en"`
	SyllabusIT   string   `json:"syllabus_it"`
	TopicMapping string   `json:"topic_mapping"`
	PDFEnglish   *PDFFile `json:"pdf_en,omitempty"`
	PDFItalian   *PDFFile `json:"pdf_it,omitempty"`
	PDFTopicMap  *PDFFile `json:"pdf_tm,omitempty"`
}

// resources is the on-disk shape of resources.json.
type resources struct {
	Links []Link `json:"links"`
}
