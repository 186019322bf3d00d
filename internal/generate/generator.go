// Package generate produces syllabus and topic-mapping Markdown from
// aggregated course source material using the Gemini API.
package generate

import "context"

// Language selects the output language of a generated syllabus.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageItalian Language = "it"
)

// instruction returns the language name used inside prompts.
func (l Language) instruction() string {
	if l == LanguageItalian {
		return "Italian"
	}
	return "English"
}

// SyllabusRequest carries the inputs for a syllabus generation call.
type SyllabusRequest struct {
	// SourceText is the aggregated text extracted from course documents.
	SourceText string

	// WebResources is a formatted list of reference links with any text
	// scraped from them.
	WebResources string

	// Instructions holds optional author-provided guidance.
	Instructions string

	Language Language
}

// System defines the generator contract. Outputs are Markdown documents.
// All calls return an error when no credential is configured.
type System interface {
	// Syllabus generates a structured course syllabus.
	Syllabus(ctx context.Context, req SyllabusRequest) (string, error)

	// TopicMapping generates a document mapping major topics to source
	// sections and suggested hands-on labs.
	TopicMapping(ctx context.Context, sourceText string) (string, error)

	// Ready reports whether a credential was loaded and calls can succeed.
	Ready() bool
}
