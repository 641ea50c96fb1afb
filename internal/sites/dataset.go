package sites

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hyperfill/formfill/internal/schemas"
	"github.com/hyperfill/formfill/internal/types"
	bundled "github.com/hyperfill/formfill/schemas"
)

// Parse reads a dataset given either as {"sites": [...]} or as a bare array of sites.
func Parse(data []byte) (*types.SiteDataset, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, &DatasetError{Message: "empty document"}
	}

	if trimmed[0] == '[' {
		var list []types.SiteDefinition
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, &DatasetError{Message: "invalid JSON", Cause: err}
		}
		return &types.SiteDataset{Sites: list}, nil
	}

	var dataset types.SiteDataset
	if err := json.Unmarshal(trimmed, &dataset); err != nil {
		return nil, &DatasetError{Message: "invalid JSON", Cause: err}
	}
	if dataset.Sites == nil {
		dataset.Sites = []types.SiteDefinition{}
	}
	return &dataset, nil
}

// Validate checks a dataset against the bundled site-mapping schema.
func Validate(dataset *types.SiteDataset) error {
	data, err := json.Marshal(normalized(dataset))
	if err != nil {
		return &DatasetError{Message: "failed to marshal dataset", Cause: err}
	}
	if err := schemas.ValidateDocument(bundled.SiteMappings, data); err != nil {
		return &DatasetError{Message: "dataset does not match schema", Cause: err}
	}
	return nil
}

// Upsert merges def into the dataset: an existing id is replaced in place, a new id is
// appended. It reports whether an existing definition was replaced.
func Upsert(dataset *types.SiteDataset, def types.SiteDefinition) bool {
	for i := range dataset.Sites {
		if dataset.Sites[i].ID == def.ID {
			dataset.Sites[i] = def
			return true
		}
	}
	dataset.Sites = append(dataset.Sites, def)
	return false
}

// Find returns the definition with the given id.
func Find(dataset *types.SiteDataset, id string) (*types.SiteDefinition, bool) {
	for i := range dataset.Sites {
		if dataset.Sites[i].ID == id {
			return &dataset.Sites[i], true
		}
	}
	return nil, false
}

// Effective returns the stored override when it holds at least one site, else the bundled dataset.
func Effective(bundledSites, override []types.SiteDefinition) []types.SiteDefinition {
	if len(override) > 0 {
		return override
	}
	if bundledSites == nil {
		return []types.SiteDefinition{}
	}
	return bundledSites
}

type exportDocument struct {
	Sites       []types.SiteDefinition `json:"sites"`
	ProfileKeys string                 `json:"_profileKeys"`
}

// Export renders the dataset for download, annotated with the list of known profile keys.
func Export(dataset *types.SiteDataset) ([]byte, error) {
	keys := make([]string, len(types.AllRoles))
	for i, role := range types.AllRoles {
		keys[i] = string(role)
	}

	return json.MarshalIndent(exportDocument{
		Sites:       normalized(dataset).Sites,
		ProfileKeys: strings.Join(keys, ", "),
	}, "", "  ")
}

// Load reads a dataset file. A missing file is an empty dataset.
func Load(path string) (*types.SiteDataset, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &types.SiteDataset{Sites: []types.SiteDefinition{}}, nil
	}
	if err != nil {
		return nil, &DatasetError{Path: path, Message: "failed to read dataset", Cause: err}
	}

	dataset, err := Parse(data)
	if err != nil {
		var dsErr *DatasetError
		if errors.As(err, &dsErr) {
			dsErr.Path = path
		}
		return nil, err
	}
	return dataset, nil
}

// Save validates and writes a dataset file, creating parent directories as needed.
func Save(path string, dataset *types.SiteDataset) error {
	if err := Validate(dataset); err != nil {
		return err
	}

	data, err := json.MarshalIndent(normalized(dataset), "", "  ")
	if err != nil {
		return &DatasetError{Path: path, Message: "failed to marshal dataset", Cause: err}
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &DatasetError{Path: path, Message: "failed to create directory", Cause: err}
		}
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return &DatasetError{Path: path, Message: "failed to write dataset", Cause: err}
	}
	return nil
}

// normalized returns a dataset whose nil slices and maps serialize as [] and {}.
func normalized(dataset *types.SiteDataset) *types.SiteDataset {
	out := &types.SiteDataset{Sites: make([]types.SiteDefinition, 0)}
	if dataset == nil {
		return out
	}
	for _, def := range dataset.Sites {
		if def.Mappings == nil {
			def.Mappings = types.Mapping{}
		}
		out.Sites = append(out.Sites, def)
	}
	return out
}
