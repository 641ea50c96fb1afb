package sites

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractURLs(t *testing.T) {
	text := `Submit to https://a.example/signup, then http://b.example/path?x=1.
	Again (https://a.example/signup) and "https://c.example/form";
	not a url: ftp://d.example`

	assert.Equal(t, []string{
		"https://a.example/signup",
		"http://b.example/path?x=1",
		"https://c.example/form",
	}, ExtractURLs(text, 0))
}

func TestExtractURLs_Limit(t *testing.T) {
	var b strings.Builder
	for i := 0; i < MaxBulkURLs+20; i++ {
		fmt.Fprintf(&b, "https://site%d.example/\n", i)
	}

	urls := ExtractURLs(b.String(), MaxBulkURLs)
	assert.Len(t, urls, MaxBulkURLs)
	assert.Equal(t, "https://site0.example/", urls[0])
}

func TestExtractURLs_None(t *testing.T) {
	urls := ExtractURLs("nothing here", 10)
	assert.NotNil(t, urls)
	assert.Empty(t, urls)
}

func TestIsRestrictedURL(t *testing.T) {
	assert.True(t, IsRestrictedURL(""))
	assert.True(t, IsRestrictedURL("chrome://settings"))
	assert.True(t, IsRestrictedURL("chrome-extension://abc/popup.html"))
	assert.True(t, IsRestrictedURL("about://blank"))
	assert.False(t, IsRestrictedURL("https://example.com/signup"))
}
