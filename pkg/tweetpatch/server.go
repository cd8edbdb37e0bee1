/*
Copyright 2025 The Tweetpatch Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package tweetpatch

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/tweetpatch/tweetpatch/pkg/config"
	"github.com/tweetpatch/tweetpatch/pkg/document"
	"github.com/tweetpatch/tweetpatch/pkg/info"
	"github.com/tweetpatch/tweetpatch/pkg/utils/httpserver"
	"github.com/tweetpatch/tweetpatch/pkg/utils/manager"
	"github.com/tweetpatch/tweetpatch/pkg/utils/metrics"
	otelUtils "github.com/tweetpatch/tweetpatch/pkg/utils/otel"
)

// MakeRouter wires the update handler and the service endpoints.
func MakeRouter(logger *zap.Logger, h http.Handler) *mux.Router {
	r := mux.NewRouter()
	r.Use(metrics.HTTPMetricMiddleware)
	r.Handle(UpdatePath, h)
	r.HandleFunc("/healthz", healthHandler).Methods("GET")
	r.HandleFunc("/v1/info", infoHandler(logger)).Methods("GET")
	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func infoHandler(logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := json.Marshal(info.ApiInfo())
		if err != nil {
			http.Error(w, "error marshaling server info", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if _, err := w.Write(resp); err != nil {
			logger.Error("error writing HTTP response", zap.Error(err))
		}
	}
}

// Start runs the update server and the metrics server until ctx is done.
func Start(ctx context.Context, logger *zap.Logger, cfg config.Config) error {
	store, err := document.MakeStore(logger, cfg.Storage)
	if err != nil {
		return err
	}

	if cfg.UsingDefaultSecret() {
		logger.Warn("UPDATE_SECRET is not set, using the built-in default secret; anyone can update the document")
	}

	h := NewHandler(logger, store, WithSecret(cfg.Secret))
	handler := otelUtils.GetHandlerWithOTEL(MakeRouter(logger, h), "tweetpatch", otelUtils.UrlsToIgnore("/healthz"))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	mgr := manager.New(logger)
	mgr.Add(ctx, "metrics", func(ctx context.Context) {
		metrics.ServeMetrics(ctx, logger, cfg.MetricsAddr)
	})

	logger.Info("tweetpatch server started",
		zap.Stringer("document", store),
		zap.String("storage_type", cfg.Storage.Type))
	err = httpserver.StartServer(ctx, logger, "tweetpatch", cfg.ListenAddr(), handler)

	// a failed listen returns before ctx is done; stop the metrics server too
	cancel()
	mgr.Wait()
	return err
}
