package observability

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/hyperfill/formfill/internal/formmap"
	"github.com/hyperfill/formfill/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestPrintProfile(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintProfile(&types.Profile{
		FirstName: "Jane",
		Email:     "jane@example.com",
		Password:  "hunter2",
	})
	output := buf.String()

	assert.Contains(t, output, "IMPORTED PROFILE")
	assert.Contains(t, output, "Jane")
	assert.Contains(t, output, "jane@example.com")
	assert.NotContains(t, output, "hunter2")
	assert.Contains(t, output, "3 of 28 fields filled")
	assert.Less(t, strings.Index(output, "firstname"), strings.Index(output, "email"))
}

func TestPrintProfile_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintProfile(&types.Profile{})
	assert.Contains(t, buf.String(), "(no recognized fields)")

	buf.Reset()
	p.PrintProfile(nil)
	assert.Empty(t, buf.String())
}

func TestPrintMapping(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	scope := "#signup"
	p.PrintMapping(&types.GenerateResult{
		FormSelector: &scope,
		Mappings: types.Mapping{
			types.RolePassword: "#pw",
			types.RoleEmail:    "#email",
		},
	})
	output := buf.String()

	assert.Contains(t, output, "FORM MAPPING")
	assert.Contains(t, output, "Scope:  #signup")
	assert.Contains(t, output, "2 roles mapped")
	assert.Less(t, strings.Index(output, "#email"), strings.Index(output, "#pw"))
}

func TestPrintMapping_Error(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintMapping(&types.GenerateResult{Mappings: types.Mapping{}, Error: "form not found: #missing"})
	output := buf.String()

	assert.Contains(t, output, "⚠ form not found: #missing")
	assert.NotContains(t, output, "roles mapped")
}

func TestPrintBatchSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	results := []formmap.FileResult{
		{Path: "/pages/broken.html", Result: &types.GenerateResult{Mappings: types.Mapping{}, Error: "form not found"}},
	}
	for i := 0; i < 7; i++ {
		results = append(results, formmap.FileResult{
			Path:   fmt.Sprintf("/pages/site%d.html", i),
			Result: &types.GenerateResult{Mappings: types.Mapping{types.RoleEmail: "#e"}},
		})
	}

	p.PrintBatchSummary(results)
	output := buf.String()

	assert.Contains(t, output, "Files: 8  Mapped: 7  Failed: 1")
	assert.Contains(t, output, "broken.html")
	assert.Contains(t, output, "site0.html (1)")
	assert.Contains(t, output, "... and 2 more")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", strings.Repeat("x", 200))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
	assert.Contains(t, buf.String(), "...")
}
