package formmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildSelector(t *testing.T) {
	tests := []struct {
		name      string
		candidate Candidate
		expected  string
		ok        bool
	}{
		{"bare id", Candidate{Tag: "input", ID: "email"}, "#email", true},
		{"id with hyphen and digits", Candidate{Tag: "input", ID: "e-mail_2"}, "#e-mail_2", true},
		{"id trimmed", Candidate{Tag: "input", ID: "  email "}, "#email", true},
		{"leading digit falls back to name", Candidate{Tag: "input", ID: "123bad", Name: "foo"}, `input[name="foo"]`, true},
		{"id with colon falls back", Candidate{Tag: "select", ID: "a:b", Name: "country"}, `select[name="country"]`, true},
		{"name with brackets", Candidate{Tag: "input", Name: "user[email]"}, `input[name="user[email]"]`, true},
		{"name quotes escaped", Candidate{Tag: "textarea", Name: `say "hi"`}, `textarea[name="say \"hi\""]`, true},
		{"name backslash escaped", Candidate{Tag: "input", Name: `a\b`}, `input[name="a\\b"]`, true},
		{"invalid id and no name", Candidate{Tag: "input", ID: "9lives"}, "", false},
		{"nothing", Candidate{Tag: "input"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			selector, ok := BuildSelector(tt.candidate)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, selector)
		})
	}
}
