package courses

import "fmt"

// Artifact identifies one of the three generated document kinds
// tracked per version.
type Artifact string

// Recognized artifact kinds.
const (
	ArtifactSyllabusEN   Artifact = "syllabus_en"
	ArtifactSyllabusIT   Artifact = "syllabus_it"
	ArtifactTopicMapping Artifact = "topic_mapping"
)

// Artifacts lists all recognized artifact kinds in canonical order.
var Artifacts = []Artifact{ArtifactSyllabusEN, ArtifactSyllabusIT, ArtifactTopicMapping}

// ParseArtifact validates an artifact kind string.
func ParseArtifact(s string) (Artifact, error) {
	switch Artifact(s) {
	case ArtifactSyllabusEN, ArtifactSyllabusIT, ArtifactTopicMapping:
		return Artifact(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidArtifact, s)
	}
}

// MarkdownFilename returns the artifact's Markdown file name inside a
// version directory.
func (a Artifact) MarkdownFilename() string {
	return string(a) + ".md"
}

// PDFFilename returns the artifact's rendered PDF file name for the
// given course and version number.
func (a Artifact) PDFFilename(course string, version int) string {
	switch a {
	case ArtifactSyllabusEN:
		return fmt.Sprintf("%s_Syllabus_English_v%d.pdf", course, version)
	case ArtifactSyllabusIT:
		return fmt.Sprintf("%s_Syllabus_Italian_v%d.pdf", course, version)
	default:
		return fmt.Sprintf("%s_Topic_Mapping_v%d.pdf", course, version)
	}
}

// pdf returns a pointer to the ledger entry field recording this
// artifact's rendered PDF file name.
func (a Artifact) pdf(v *Version) **string {
	switch a {
	case ArtifactSyllabusEN:
		return &v.PDFEnglish
	case ArtifactSyllabusIT:
		return &v.PDFItalian
	default:
		return &v.PDFTopicMap
	}
}
