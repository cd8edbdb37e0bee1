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

package otel

import (
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// UrlsToIgnore returns a filter that keeps requests whose path does not start
// with any of ignoreEndpoints.
func UrlsToIgnore(ignoreEndpoints ...string) otelhttp.Filter {
	return func(r *http.Request) bool {
		for _, ignore := range ignoreEndpoints {
			if strings.HasPrefix(r.URL.Path, ignore) {
				return false
			}
		}
		return true
	}
}

func GetHandlerWithOTEL(h http.Handler, name string, filter ...otelhttp.Filter) http.Handler {
	opts := []otelhttp.Option{
		otelhttp.WithMessageEvents(otelhttp.ReadEvents, otelhttp.WriteEvents),
	}

	for _, f := range filter {
		opts = append(opts, otelhttp.WithFilter(f))
	}

	return otelhttp.NewHandler(h, name, opts...)
}

// GetTransportWithOTEL wraps base so outgoing requests carry trace context.
func GetTransportWithOTEL(base http.RoundTripper) http.RoundTripper {
	return otelhttp.NewTransport(base)
}
