// Package schemas bundles the JSON Schemas for persisted profile and site-mapping documents.
package schemas

import "embed"

// Schema file names.
const (
	Profile      = "profile.schema.json"
	SiteMappings = "site_mappings.schema.json"
)

// FS holds every *.schema.json file in this directory.
//
//go:embed *.schema.json
var FS embed.FS
