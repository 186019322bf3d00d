package render_test

import (
	"bytes"
	"testing"

	"github.com/syllaber/syllaber/internal/render"
)

const sample = `# Course Syllabus

**Learning Intent**: Understand the fundamentals.

## Program Modules

1. Foundations
2. Applications

- Theory: anchors
- Organization: levers
- Labs: Lab: [Relevant Lab Title]

` + "```" + `
code block
` + "```" + `

---

Closing expectations with accented text: però, così.
`

func TestRenderer_Render(t *testing.T) {
	r := render.New()

	data, err := r.Render(sample)
	if err != nil {
		t.Fatalf("Render() failed: %v", err)
	}

	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output does not start with PDF header: %q", data[:min(8, len(data))])
	}
	if len(data) < 500 {
		t.Errorf("output suspiciously small: %d bytes", len(data))
	}
}

func TestRenderer_Render_Empty(t *testing.T) {
	r := render.New()

	data, err := r.Render("")
	if err != nil {
		t.Fatalf("Render() failed for empty input: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Error("empty document should still produce a valid pdf")
	}
}

func TestRenderer_Render_Deterministic(t *testing.T) {
	r := render.New()

	first, err := r.Render("# Title\n\nBody text.")
	if err != nil {
		t.Fatalf("Render() failed: %v", err)
	}
	second, err := r.Render("# Title\n\nBody text.")
	if err != nil {
		t.Fatalf("Render() failed: %v", err)
	}

	// Lengths match even if embedded timestamps differ.
	if len(first) != len(second) {
		t.Errorf("output lengths differ: %d vs %d", len(first), len(second))
	}
}
