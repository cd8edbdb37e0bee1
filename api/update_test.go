package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tweetpatch/tweetpatch/pkg/tweetpatch"
)

// resetHandler makes the next request build the handler from the current
// environment.
func resetHandler(t *testing.T) {
	t.Helper()
	once = sync.Once{}
	handler = nil
	t.Cleanup(func() {
		once = sync.Once{}
		handler = nil
	})
}

func TestHandler(t *testing.T) {
	resetHandler(t)
	path := filepath.Join(t.TempDir(), "index.html")
	require.NoError(t, os.WriteFile(path, []byte(`<div class="tweet-text">old</div>`), 0644))
	t.Setenv("UPDATE_SECRET", "s3cret")
	t.Setenv("DOCUMENT_PATH", path)
	t.Setenv("STORAGE_TYPE", "file")

	req := httptest.NewRequest(http.MethodPost, tweetpatch.UpdatePath,
		strings.NewReader(`{"text":"hello <world>","secret":"s3cret"}`))
	rec := httptest.NewRecorder()
	Handler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp tweetpatch.UpdateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "hello <world>", resp.UpdatedText)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `<div class="tweet-text">hello &lt;world&gt;</div>`, string(data))

	req = httptest.NewRequest(http.MethodGet, tweetpatch.UpdatePath, nil)
	rec = httptest.NewRecorder()
	Handler(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandlerInvalidConfig(t *testing.T) {
	resetHandler(t)
	t.Setenv("UPDATE_SECRET", "s3cret")
	t.Setenv("STORAGE_TYPE", "s3")
	t.Setenv("STORAGE_S3_BUCKET_NAME", "")
	t.Setenv("STORAGE_CONTAINER", "")
	t.Setenv("STORAGE_S3_REGION", "")

	req := httptest.NewRequest(http.MethodOptions, tweetpatch.UpdatePath, nil)
	rec := httptest.NewRecorder()
	Handler(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "POST, OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type", rec.Header().Get("Access-Control-Allow-Headers"))
	assert.Empty(t, rec.Body.String())

	req = httptest.NewRequest(http.MethodPost, tweetpatch.UpdatePath,
		strings.NewReader(`{"text":"hello","secret":"s3cret"}`))
	rec = httptest.NewRecorder()
	Handler(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var body struct {
		Error   string `json:"error"`
		Details string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, tweetpatch.MsgInternal, body.Error)
	assert.Contains(t, body.Details, "STORAGE_S3_BUCKET_NAME")
}
