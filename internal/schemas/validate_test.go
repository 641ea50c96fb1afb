package schemas

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	bundled "github.com/hyperfill/formfill/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["id"],
	"properties": {"id": {"type": "string"}, "score": {"type": "integer"}}
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidateJSON_ValidJSON(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.json", testSchema)
	jsonPath := writeFile(t, dir, "doc.json", `{"id": "a", "score": 3}`)

	assert.NoError(t, ValidateJSON(schemaPath, jsonPath))
}

func TestValidateJSON_InvalidJSON_MissingField(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.json", testSchema)
	jsonPath := writeFile(t, dir, "doc.json", `{"score": 3}`)

	err := ValidateJSON(schemaPath, jsonPath)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateJSON_NonExistentFiles(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.json", testSchema)

	err := ValidateJSON(filepath.Join(dir, "missing_schema.json"), schemaPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	err = ValidateJSON(schemaPath, filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSONString_WrongType(t *testing.T) {
	err := ValidateJSONString(testSchema, `{"id": 7}`)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "id", validationErr.Errors[0].Field)
	assert.Contains(t, validationErr.Error(), "validation failed")
}

func TestValidateJSONString_BrokenSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": 12}`, `{}`)

	var loadErr *SchemaLoadError
	assert.True(t, errors.As(err, &loadErr))
}

func TestValidateDocument_SiteMappings(t *testing.T) {
	valid := `{"sites": [{"id": "a", "name": "A", "urlPattern": "a.test", "pathPattern": "", "category": "Blog", "spamScore": 5, "mappings": {"email": "#email", "password2": "input[name=\"pw2\"]"}}]}`
	assert.NoError(t, ValidateDocument(bundled.SiteMappings, []byte(valid)))

	tests := map[string]string{
		"missing sites":   `{}`,
		"missing id":      `{"sites": [{"mappings": {}}]}`,
		"unknown role":    `{"sites": [{"id": "a", "mappings": {"shoeSize": "#s"}}]}`,
		"empty selector":  `{"sites": [{"id": "a", "mappings": {"email": ""}}]}`,
		"negative score":  `{"sites": [{"id": "a", "spamScore": -1, "mappings": {}}]}`,
		"empty formScope": `{"sites": [{"id": "a", "formSelector": "", "mappings": {}}]}`,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			var validationErr *ValidationError
			assert.True(t, errors.As(ValidateDocument(bundled.SiteMappings, []byte(doc)), &validationErr))
		})
	}
}

func TestValidateDocument_UnknownSchema(t *testing.T) {
	var loadErr *SchemaLoadError
	assert.True(t, errors.As(ValidateDocument("nope.schema.json", []byte(`{}`)), &loadErr))
}
