package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastOptions() *Options {
	opts := DefaultOptions()
	opts.RetryDelay = time.Millisecond
	return opts
}

func TestURL_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body><form><input id="email"></form></body></html>`))
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, fastOptions())
	require.NoError(t, err)
	assert.Equal(t, server.URL, result.URL)
	assert.Contains(t, result.HTML, `<input id="email">`)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, "text/html", result.ContentType)
}

func TestURL_RejectsUnfetchableURLs(t *testing.T) {
	for _, u := range []string{"", "not-a-valid-url", "chrome://settings", "ftp://files.example/x", "file:///etc/passwd"} {
		_, err := URL(context.Background(), u, fastOptions())
		var fetchErr *Error
		if assert.ErrorAs(t, err, &fetchErr, "url %q", u) {
			assert.True(t, fetchErr.Invalid, "url %q", u)
		}
	}
}

func TestURL_PermanentStatusIsNotRetried(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, fastOptions())
	require.Error(t, err)
	require.NotNil(t, result)
	assert.Equal(t, http.StatusNotFound, result.StatusCode)
	assert.Equal(t, int32(1), hits.Load())

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Same(t, fetchErr, err)
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
	assert.False(t, fetchErr.Retryable)
	assert.NotContains(t, err.Error(), "attempts")
}

func TestURL_TransientStatusIsRetried(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("<form></form>"))
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, fastOptions())
	require.NoError(t, err)
	assert.Equal(t, "<form></form>", result.HTML)
	assert.Equal(t, int32(2), hits.Load())
}

func TestURL_GivesUpAfterAttempts(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	opts := fastOptions()
	opts.Attempts = 2

	result, err := URL(context.Background(), server.URL, opts)
	require.Error(t, err)
	assert.Equal(t, int32(2), hits.Load())
	require.NotNil(t, result)
	assert.Equal(t, http.StatusBadGateway, result.StatusCode)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusBadGateway, fetchErr.StatusCode)
	assert.True(t, fetchErr.Retryable)
	assert.NotContains(t, err.Error(), "attempts")
}

func TestHasFormControls(t *testing.T) {
	assert.True(t, HasFormControls(`<form><input name="a"></form>`))
	assert.True(t, HasFormControls(`<textarea></textarea>`))
	assert.True(t, HasFormControls(`<select></select>`))
	assert.False(t, HasFormControls(`<div id="app"></div>`))
	assert.True(t, ShouldUseBrowser(`<div id="app"></div>`))
}
