package types

// Mapping binds a role to the selector that locates its form control. At most one selector per role.
type Mapping map[Role]string

// GenerateResult is the classifier output, directly embeddable into a SiteDefinition.
// FormSelector is nil when no scope was requested. Error is set only when the scope could not be resolved.
type GenerateResult struct {
	Mappings     Mapping `json:"mappings"`
	FormSelector *string `json:"formSelector"`
	Error        string  `json:"error,omitempty"`
}

// SiteDefinition is a persistable record bundling a Mapping with site-matching metadata.
type SiteDefinition struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	URLPattern   string  `json:"urlPattern"`
	PathPattern  string  `json:"pathPattern"`
	Category     string  `json:"category"`
	SpamScore    int     `json:"spamScore"`
	FormSelector string  `json:"formSelector,omitempty"`
	Mappings     Mapping `json:"mappings"`
}

// SiteDataset is the persisted site-mapping document consumed by the page matcher.
type SiteDataset struct {
	Sites []SiteDefinition `json:"sites"`
}
