package sites

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hyperfill/formfill/internal/types"
)

// Metadata is the caller-supplied part of a site definition. Defaults are the caller's concern.
type Metadata struct {
	ID           string `json:"id" validate:"required,max=200"`
	Name         string `json:"name" validate:"max=200"`
	URLPattern   string `json:"urlPattern"`
	PathPattern  string `json:"pathPattern"`
	Category     string `json:"category"`
	SpamScore    int    `json:"spamScore" validate:"gte=0"`
	FormSelector string `json:"formSelector,omitempty"`
}

// Validate checks user-entered metadata before it is persisted.
func (m *Metadata) Validate() error {
	validate := validator.New()
	return validate.Struct(m)
}

// DefaultMetadata is the placeholder metadata offered to users generating a definition by hand.
func DefaultMetadata() Metadata {
	return Metadata{
		ID:         "my-site-id",
		Name:       "My Site — Login/Signup",
		URLPattern: "example.com",
		Category:   "Article Submission",
		SpamScore:  5,
	}
}

// ValidateMapping checks that every entry binds a known role to a non-empty selector.
func ValidateMapping(mapping types.Mapping) error {
	for role, selector := range mapping {
		if !role.IsKnown() {
			return &AssembleError{Message: fmt.Sprintf("unknown role %q", role)}
		}
		if strings.TrimSpace(selector) == "" {
			return &AssembleError{Message: fmt.Sprintf("empty selector for role %q", role)}
		}
	}
	return nil
}

// Assemble wraps a classifier result with metadata. A result that carries an error is
// rejected. The metadata's form selector wins; otherwise the one echoed by the classifier is kept.
func Assemble(meta Metadata, result *types.GenerateResult) (*types.SiteDefinition, error) {
	if result == nil {
		return nil, &AssembleError{Message: "no mapping to assemble"}
	}
	if result.Error != "" {
		return nil, &AssembleError{Message: result.Error}
	}
	if err := ValidateMapping(result.Mappings); err != nil {
		return nil, err
	}

	mappings := make(types.Mapping, len(result.Mappings))
	for role, selector := range result.Mappings {
		mappings[role] = selector
	}

	formSelector := strings.TrimSpace(meta.FormSelector)
	if formSelector == "" && result.FormSelector != nil {
		formSelector = *result.FormSelector
	}

	return &types.SiteDefinition{
		ID:           meta.ID,
		Name:         meta.Name,
		URLPattern:   meta.URLPattern,
		PathPattern:  meta.PathPattern,
		Category:     meta.Category,
		SpamScore:    meta.SpamScore,
		FormSelector: formSelector,
		Mappings:     mappings,
	}, nil
}
