/*
Copyright 2021 The Fission Authors.

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
	"context"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// LoggerWithTraceID adds trace_id and span_id fields when ctx carries a valid span.
func LoggerWithTraceID(ctx context.Context, logger *zap.Logger) *zap.Logger {
	span := trace.SpanContextFromContext(ctx)
	if !span.TraceID().IsValid() {
		return logger
	}
	fields := []zap.Field{zap.String("trace_id", span.TraceID().String())}
	if span.SpanID().IsValid() {
		fields = append(fields, zap.String("span_id", span.SpanID().String()))
	}
	return logger.With(fields...)
}
