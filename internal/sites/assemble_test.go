package sites

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyperfill/formfill/internal/types"
)

func strPtr(s string) *string { return &s }

func TestAssemble_CopiesMappingAndMetadata(t *testing.T) {
	result := &types.GenerateResult{
		Mappings: types.Mapping{
			types.RoleEmail:    "#email",
			types.RolePassword: "#pw",
		},
	}

	def, err := Assemble(DefaultMetadata(), result)
	require.NoError(t, err)

	assert.Equal(t, "my-site-id", def.ID)
	assert.Equal(t, "example.com", def.URLPattern)
	assert.Equal(t, "Article Submission", def.Category)
	assert.Equal(t, 5, def.SpamScore)
	assert.Empty(t, def.FormSelector)
	assert.Equal(t, result.Mappings, def.Mappings)

	// The definition owns its own copy
	result.Mappings[types.RoleEmail] = "#changed"
	assert.Equal(t, "#email", def.Mappings[types.RoleEmail])
}

func TestAssemble_FormSelector(t *testing.T) {
	result := &types.GenerateResult{
		Mappings:     types.Mapping{types.RoleEmail: "#email"},
		FormSelector: strPtr("#signup"),
	}

	def, err := Assemble(Metadata{ID: "a"}, result)
	require.NoError(t, err)
	assert.Equal(t, "#signup", def.FormSelector)

	def, err = Assemble(Metadata{ID: "a", FormSelector: "form.main"}, result)
	require.NoError(t, err)
	assert.Equal(t, "form.main", def.FormSelector)
}

func TestAssemble_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		result *types.GenerateResult
	}{
		{name: "nil result", result: nil},
		{name: "scope error", result: &types.GenerateResult{Mappings: types.Mapping{}, Error: "formSelector not found: #x"}},
		{name: "unknown role", result: &types.GenerateResult{Mappings: types.Mapping{types.Role("nickname"): "#n"}}},
		{name: "empty selector", result: &types.GenerateResult{Mappings: types.Mapping{types.RoleEmail: "  "}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Assemble(DefaultMetadata(), tt.result)
			require.Error(t, err)
			var asmErr *AssembleError
			assert.ErrorAs(t, err, &asmErr)
		})
	}
}

func TestAssemble_EmptyMappingIsValid(t *testing.T) {
	def, err := Assemble(Metadata{ID: "empty"}, &types.GenerateResult{Mappings: types.Mapping{}})
	require.NoError(t, err)
	assert.Empty(t, def.Mappings)
	assert.NotNil(t, def.Mappings)
}

func TestMetadata_Validate(t *testing.T) {
	meta := DefaultMetadata()
	assert.NoError(t, meta.Validate())

	meta.ID = ""
	assert.Error(t, meta.Validate())

	meta = DefaultMetadata()
	meta.SpamScore = -1
	assert.Error(t, meta.Validate())
}
