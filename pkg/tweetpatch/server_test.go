package tweetpatch

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tweetpatch/tweetpatch/pkg/info"
)

func TestRouter(t *testing.T) {
	store := newMemoryStore(testDocument)
	s := httptest.NewServer(MakeRouter(zap.NewNop(), newTestHandler(store)))
	defer s.Close()

	resp, err := http.Get(s.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(s.URL + "/v1/info")
	require.NoError(t, err)
	var si info.ServerInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&si))
	resp.Body.Close()
	assert.NotEmpty(t, si.Build.Version)

	// every method reaches the handler so it can answer 405 itself
	resp, err = http.Get(s.URL + UpdatePath)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	resp, err = http.Post(s.URL+UpdatePath, "application/json",
		strings.NewReader(`{"text":"via router","secret":"`+testSecret+`"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, store.document(), "via router")
}
