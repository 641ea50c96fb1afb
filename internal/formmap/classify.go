package formmap

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/hyperfill/formfill/internal/types"
)

// fillableSelector enumerates candidate controls; input types are filtered afterwards.
const fillableSelector = "input, textarea, select"

// skippedInputTypes are input types that never receive profile data.
var skippedInputTypes = map[string]bool{
	"hidden": true,
	"submit": true,
	"button": true,
	"reset":  true,
	"image":  true,
	"file":   true,
}

// Candidate is one fillable form control and the attributes used to classify it.
type Candidate struct {
	Position    int
	Tag         string
	ID          string
	Name        string
	Placeholder string
	AriaLabel   string
	Type        string
}

// IdentifyingText joins the non-empty name, id, placeholder and aria-label, lowercased.
func (c Candidate) IdentifyingText() string {
	parts := make([]string, 0, 4)
	for _, v := range []string{c.Name, c.ID, c.Placeholder, c.AriaLabel} {
		if v != "" {
			parts = append(parts, v)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// Candidates lists the fillable controls under scope in document order.
func Candidates(scope *goquery.Selection) []Candidate {
	candidates := make([]Candidate, 0)

	scope.Find(fillableSelector).Each(func(_ int, s *goquery.Selection) {
		tag := goquery.NodeName(s)
		inputType := strings.ToLower(strings.TrimSpace(s.AttrOr("type", "")))
		if tag == "input" && skippedInputTypes[inputType] {
			return
		}

		candidates = append(candidates, Candidate{
			Position:    len(candidates),
			Tag:         tag,
			ID:          s.AttrOr("id", ""),
			Name:        s.AttrOr("name", ""),
			Placeholder: s.AttrOr("placeholder", ""),
			AriaLabel:   s.AttrOr("aria-label", ""),
			Type:        inputType,
		})
	})

	return candidates
}

// BuildMapping folds candidates in document order into a mapping. A candidate needs
// both a role and a selector to claim its role; once claimed, later candidates with
// the same role are ignored.
func BuildMapping(candidates []Candidate) types.Mapping {
	mapping := types.Mapping{}
	claimed := make(map[types.Role]struct{})

	for _, c := range candidates {
		role, ok := InferRole(c)
		if !ok {
			continue
		}
		selector, ok := BuildSelector(c)
		if !ok {
			continue
		}
		if _, taken := claimed[role]; taken {
			continue
		}
		claimed[role] = struct{}{}
		mapping[role] = selector
	}

	return mapping
}

// Generate parses form markup and maps each recognizable control to a selector.
// An empty formSelector scopes to the document body. A formSelector that matches
// nothing, or cannot be parsed as a selector, yields an empty mapping with the
// result's Error set and a *ScopeNotFoundError.
func Generate(markup string, formSelector string) (*types.GenerateResult, error) {
	formSelector = strings.TrimSpace(formSelector)

	result := &types.GenerateResult{Mappings: types.Mapping{}}
	if formSelector != "" {
		result.FormSelector = &formSelector
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		parseErr := &ParseError{Message: "failed to parse HTML", Cause: err}
		result.Error = parseErr.Error()
		return result, parseErr
	}

	scope := resolveScope(doc, formSelector)
	if scope == nil {
		scopeErr := &ScopeNotFoundError{Selector: formSelector}
		result.Error = scopeErr.Error()
		return result, scopeErr
	}

	result.Mappings = BuildMapping(Candidates(scope))
	return result, nil
}

func resolveScope(doc *goquery.Document, formSelector string) *goquery.Selection {
	if formSelector != "" {
		scope := doc.Find(formSelector).First()
		if scope.Length() == 0 {
			return nil
		}
		return scope
	}

	if body := doc.Find("body").First(); body.Length() > 0 {
		return body
	}
	return doc.Selection
}
