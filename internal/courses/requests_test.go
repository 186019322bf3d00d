package courses_test

import (
	"testing"

	"github.com/syllaber/syllaber/internal/courses"
)

func TestCreateRequest_Validate(t *testing.T) {
	valid := []string{"Physics101", "Data Engineering 2.0", "intro_to-go"}
	for _, name := range valid {
		req := courses.CreateRequest{Name: name}
		if err := req.Validate(); err != nil {
			t.Errorf("Validate(%q) failed: %v", name, err)
		}
	}

	invalid := []string{"", "../escape", "a/b", ".hidden"}
	for _, name := range invalid {
		req := courses.CreateRequest{Name: name}
		if err := req.Validate(); err == nil {
			t.Errorf("Validate(%q) should fail", name)
		}
	}
}

func TestAddLinkRequest_Validate(t *testing.T) {
	req := courses.AddLinkRequest{URL: "https://example.com", Description: "Example"}
	if err := req.Validate(); err != nil {
		t.Errorf("Validate() failed: %v", err)
	}

	if err := (courses.AddLinkRequest{URL: "https://example.com"}).Validate(); err == nil {
		t.Error("Validate() should fail without description")
	}
	if err := (courses.AddLinkRequest{Description: "Example"}).Validate(); err == nil {
		t.Error("Validate() should fail without url")
	}
}

func TestUpdateVersionRequest_Validate(t *testing.T) {
	if err := (courses.UpdateVersionRequest{Content: "# Edited"}).Validate(); err != nil {
		t.Errorf("Validate() failed: %v", err)
	}
	if err := (courses.UpdateVersionRequest{}).Validate(); err == nil {
		t.Error("Validate() should fail without content")
	}
}
