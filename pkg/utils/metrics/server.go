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

package metrics

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/tweetpatch/tweetpatch/pkg/utils/httpserver"
)

// DefaultAddr is used when no metrics address is configured.
const DefaultAddr = ":9090"

// ServeMetrics exposes the default registry on addr at /metrics until ctx is done.
func ServeMetrics(ctx context.Context, logger *zap.Logger, addr string) {
	if addr == "" {
		addr = DefaultAddr
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	if err := httpserver.StartServer(ctx, logger, "metrics", addr, mux); err != nil {
		logger.Error("metrics server stopped", zap.Error(err))
	}
}
