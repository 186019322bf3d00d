package courses

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CreateRequest contains the data for course creation requests.
type CreateRequest struct {
	Name string `json:"name"`
}

// Validate checks the create request fields.
func (r CreateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required,
			validation.Length(1, 120),
			validation.Match(namePattern).Error("must contain only letters, digits, spaces, '.', '_' or '-'"),
		),
	)
}

// AddLinkRequest contains the data for link addition requests.
type AddLinkRequest struct {
	URL         string `json:"url"`
	Description string `json:"description"`
}

// Validate checks the add-link request fields. URL well-formedness is
// deliberately not enforced; the store treats it as opaque text.
func (r AddLinkRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.URL, validation.Required),
		validation.Field(&r.Description, validation.Required),
	)
}

// UpdateVersionRequest contains the replacement Markdown for one artifact.
type UpdateVersionRequest struct {
	Content string `json:"content"`
}

// Validate checks the update request fields.
func (r UpdateVersionRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content, validation.Required),
	)
}
