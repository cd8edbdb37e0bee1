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

package document

import (
	"context"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

var (
	operationLabels = []string{"backend", "operation", "result"}
	operationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tweetpatch_document_operations_total",
			Help: "Number of document loads and saves by backend and result",
		},
		operationLabels,
	)
	operationSeconds = promauto.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "tweetpatch_document_operation_seconds",
			Help:       "Time taken to load or save the document",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"backend", "operation"},
	)
	documentBytes = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tweetpatch_document_bytes",
			Help: "Size of the document after the last load or save",
		},
		[]string{"backend"},
	)
)

type instrumentedStore struct {
	Store
	logger  *zap.Logger
	backend string
}

// WithMetrics records Prometheus metrics and debug logs around every call to store.
func WithMetrics(logger *zap.Logger, backend string, store Store) Store {
	return &instrumentedStore{
		Store:   store,
		logger:  logger.Named("document"),
		backend: backend,
	}
}

func (s *instrumentedStore) observe(operation string, start time.Time, size int, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	operationsTotal.WithLabelValues(s.backend, operation, result).Inc()
	operationSeconds.WithLabelValues(s.backend, operation).Observe(time.Since(start).Seconds())
	if err == nil {
		documentBytes.WithLabelValues(s.backend).Set(float64(size))
		s.logger.Debug("document "+operation,
			zap.Stringer("document", s.Store),
			zap.String("size", humanize.Bytes(uint64(size))),
			zap.Duration("took", time.Since(start)))
	}
}

func (s *instrumentedStore) Load(ctx context.Context) ([]byte, error) {
	start := time.Now()
	data, err := s.Store.Load(ctx)
	s.observe("load", start, len(data), err)
	return data, err
}

func (s *instrumentedStore) Save(ctx context.Context, data []byte) error {
	start := time.Now()
	err := s.Store.Save(ctx, data)
	s.observe("save", start, len(data), err)
	return err
}
