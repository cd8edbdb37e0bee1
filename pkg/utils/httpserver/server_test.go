package httpserver

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tweetpatch/tweetpatch/pkg/utils/loggerfactory"
)

func TestStartServer(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	logger := loggerfactory.GetLogger()
	m := mux.NewRouter()
	m.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte("test handler"))
		if err != nil {
			logger.Error("failed to write response", zap.Error(err))
		}
	}))

	done := make(chan error, 1)
	go func() {
		done <- StartServer(ctx, logger, "test", "127.0.0.1:18999", m)
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://127.0.0.1:18999/")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return true
	}, 5*time.Second, 50*time.Millisecond)

	tests := []struct {
		Name       string
		URL        string
		StatusCode int
		Body       string
	}{
		{
			Name:       "test handler",
			URL:        "http://127.0.0.1:18999",
			StatusCode: http.StatusOK,
			Body:       "test handler",
		},
		{
			Name:       "not found",
			URL:        "http://127.0.0.1:18999/notfound",
			StatusCode: http.StatusNotFound,
			Body:       "404 page not found\n",
		},
	}
	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			resp, err := http.Get(test.URL)
			require.NoError(t, err, "failed to make get request %s", test.URL)
			defer resp.Body.Close()
			require.Equal(t, test.StatusCode, resp.StatusCode)
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)
			require.Equal(t, test.Body, string(body))
		})
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
