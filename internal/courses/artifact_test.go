package courses_test

import (
	"errors"
	"testing"

	"github.com/syllaber/syllaber/internal/courses"
)

func TestParseArtifact(t *testing.T) {
	for _, valid := range []string{"syllabus_en", "syllabus_it", "topic_mapping"} {
		a, err := courses.ParseArtifact(valid)
		if err != nil {
			t.Errorf("ParseArtifact(%q) failed: %v", valid, err)
		}
		if string(a) != valid {
			t.Errorf("ParseArtifact(%q) = %q", valid, a)
		}
	}

	for _, invalid := range []string{"", "syllabus", "syllabus_fr", "SYLLABUS_EN"} {
		if _, err := courses.ParseArtifact(invalid); !errors.Is(err, courses.ErrInvalidArtifact) {
			t.Errorf("ParseArtifact(%q) error = %v, want ErrInvalidArtifact", invalid, err)
		}
	}
}

func TestArtifact_MarkdownFilename(t *testing.T) {
	cases := map[courses.Artifact]string{
		courses.ArtifactSyllabusEN:   "syllabus_en.md",
		courses.ArtifactSyllabusIT:   "syllabus_it.md",
		courses.ArtifactTopicMapping: "topic_mapping.md",
	}

	for artifact, want := range cases {
		if got := artifact.MarkdownFilename(); got != want {
			t.Errorf("%s.MarkdownFilename() = %q, want %q", artifact, got, want)
		}
	}
}

func TestArtifact_PDFFilename(t *testing.T) {
	cases := map[courses.Artifact]string{
		courses.ArtifactSyllabusEN:   "Physics101_Syllabus_English_v3.pdf",
		courses.ArtifactSyllabusIT:   "Physics101_Syllabus_Italian_v3.pdf",
		courses.ArtifactTopicMapping: "Physics101_Topic_Mapping_v3.pdf",
	}

	for artifact, want := range cases {
		if got := artifact.PDFFilename("Physics101", 3); got != want {
			t.Errorf("%s.PDFFilename() = %q, want %q", artifact, got, want)
		}
	}
}
