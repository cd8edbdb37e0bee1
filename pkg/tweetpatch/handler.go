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
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"github.com/tweetpatch/tweetpatch/pkg/document"
	ferror "github.com/tweetpatch/tweetpatch/pkg/error"
	"github.com/tweetpatch/tweetpatch/pkg/htmlpatch"
	otelUtils "github.com/tweetpatch/tweetpatch/pkg/utils/otel"
	"github.com/tweetpatch/tweetpatch/pkg/utils/uuid"
)

const maxBodyBytes = 1 << 20

type (
	// Handler serves the update endpoint. It holds no per-request state; the
	// only shared resource is the document behind store.
	Handler struct {
		logger *zap.Logger
		store  document.Store
		secret string
		now    func() time.Time

		// serializes read-transform-write within this process
		mu sync.Mutex
	}

	Option func(*Handler)
)

// WithSecret sets the shared secret callers must present.
func WithSecret(secret string) Option {
	return func(h *Handler) {
		h.secret = secret
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) {
		h.now = now
	}
}

// NewHandler returns a handler patching the document in store. Without
// WithSecret no secret matches and every update is rejected.
func NewHandler(logger *zap.Logger, store document.Store, opts ...Option) *Handler {
	h := &Handler{
		logger: logger.Named("tweetpatch"),
		store:  store,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.RequestID(r.Header.Get("X-Request-Id"))
	w.Header().Set("X-Request-Id", requestID)
	logger := otelUtils.LoggerWithTraceID(r.Context(), h.logger).With(zap.String("request_id", requestID))

	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("unexpected error in update handler", zap.Any("panic", rec), zap.Stack("stack"))
			h.respondWithError(w, logger, ferror.MakeErrorWithDetails(ferror.ErrorInternal, MsgInternal, fmt.Errorf("%v", rec)))
		}
	}()

	if !h.checkMethod(w, r, logger) {
		return
	}

	resp, err := h.update(r.Context(), logger, w, r, requestID)
	if err != nil {
		h.respondWithError(w, logger, err)
		return
	}
	h.respondWithSuccess(w, logger, resp)
}

// checkMethod answers preflight and unsupported methods. It reports whether
// the request is a POST left for the caller to serve.
func (h *Handler) checkMethod(w http.ResponseWriter, r *http.Request, logger *zap.Logger) bool {
	switch r.Method {
	case http.MethodPost:
		return true
	case http.MethodOptions:
		setCORSHeaders(w)
		w.WriteHeader(http.StatusOK)
	default:
		w.Header().Set("Allow", "POST, OPTIONS")
		h.respondWithError(w, logger, ferror.MakeError(ferror.ErrorMethodNotAllowed, MsgMethodNotAllowed))
	}
	return false
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

func (h *Handler) update(ctx context.Context, logger *zap.Logger, w http.ResponseWriter, r *http.Request, requestID string) (*UpdateResponse, error) {
	var req UpdateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		logger.Info("error decoding request body", zap.Error(err))
		return nil, ferror.MakeErrorWithDetails(ferror.ErrorInvalidArgument, MsgInvalidBody, err)
	}

	if subtle.ConstantTimeCompare([]byte(req.Secret), []byte(h.secret)) != 1 || h.secret == "" {
		logger.Warn("invalid secret provided")
		return nil, ferror.MakeError(ferror.ErrorNotAuthorized, MsgUnauthorized)
	}

	if req.Text == "" {
		logger.Info("no text provided in request")
		return nil, ferror.MakeError(ferror.ErrorInvalidArgument, MsgTextRequired)
	}

	u := htmlpatch.Update{Text: req.Text}
	if req.Timestamp != "" {
		postedAt, err := htmlpatch.ParseTimestamp(req.Timestamp)
		if err != nil {
			logger.Info("invalid timestamp in request", zap.String("timestamp", req.Timestamp))
			return nil, ferror.MakeErrorWithDetails(ferror.ErrorInvalidArgument, MsgInvalidTimestamp, err)
		}
		u.PostedAt = &postedAt
	}

	ctx, span := otel.Tracer("tweetpatch").Start(ctx, "Handler/update")
	defer span.End()
	span.SetAttributes(otelUtils.GetAttributesForUpdate(requestID, h.store.String(), len(req.Text), u.PostedAt != nil)...)

	resp, err := h.patchDocument(ctx, logger, u)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		observeUpdate(err)
		return nil, err
	}
	observeUpdate(nil)
	return resp, nil
}

func (h *Handler) patchDocument(ctx context.Context, logger *zap.Logger, u htmlpatch.Update) (*UpdateResponse, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	logger = logger.With(zap.Stringer("document", h.store))
	logger.Info("updating tweet", zap.Int("text_length", len(u.Text)))

	data, err := h.store.Load(ctx)
	if err != nil {
		logger.Error("error reading document", zap.Error(err))
		return nil, ferror.MakeErrorWithDetails(ferror.ErrorDocumentRead, MsgReadFailed, err)
	}

	result, err := htmlpatch.Apply(string(data), u, h.now())
	if err != nil {
		if errors.Is(err, htmlpatch.ErrRegionNotFound) {
			logger.Error("tweet element not found in document", zap.Error(err))
			return nil, ferror.MakeError(ferror.ErrorRegionNotFound, MsgRegionNotFound)
		}
		return nil, ferror.MakeErrorWithDetails(ferror.ErrorInternal, MsgInternal, err)
	}

	if result.TweetTextCount > 1 {
		logger.Warn("tweet element appears more than once, only the first was updated",
			zap.Int("occurrences", result.TweetTextCount))
	}
	switch {
	case u.PostedAt == nil:
	case result.TimestampUpdated:
		if result.TimestampCount > 1 {
			logger.Warn("timestamp element appears more than once, only the first was updated",
				zap.Int("occurrences", result.TimestampCount))
		}
		logger.Info("timestamp updated", zap.String("label", result.TimeLabel))
	default:
		logger.Info("timestamp element not found, skipping timestamp update")
	}

	if err := h.store.Save(ctx, []byte(result.Document)); err != nil {
		logger.Error("error writing document", zap.Error(err))
		return nil, ferror.MakeErrorWithDetails(ferror.ErrorDocumentWrite, MsgWriteFailed, err)
	}

	logger.Info("update completed")
	return &UpdateResponse{
		Success:     true,
		Message:     MsgSuccess,
		UpdatedText: u.Text,
		Timestamp:   h.now().UTC().Format(TimestampFormat),
	}, nil
}

// FailedHandler stands in for a Handler that could not be built. Preflight
// and method checks behave as usual; updates get a 500 carrying cause.
func FailedHandler(logger *zap.Logger, cause error) http.Handler {
	h := &Handler{logger: logger.Named("tweetpatch")}
	failure := ferror.MakeErrorWithDetails(ferror.ErrorInternal, MsgInternal, cause)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !h.checkMethod(w, r, h.logger) {
			return
		}
		h.respondWithError(w, h.logger, failure)
	})
}

func (h *Handler) respondWithSuccess(w http.ResponseWriter, logger *zap.Logger, resp *UpdateResponse) {
	writeJSON(w, logger, http.StatusOK, resp)
}

func (h *Handler) respondWithError(w http.ResponseWriter, logger *zap.Logger, err error) {
	code, body := ferror.GetHTTPError(err)
	logger.Debug("responding with error", zap.Int("code", code), zap.String("error", body.Message))
	writeJSON(w, logger, code, body)
}

func writeJSON(w http.ResponseWriter, logger *zap.Logger, code int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		logger.Error("error marshaling response", zap.Error(err))
		http.Error(w, MsgInternal, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if _, err := w.Write(body); err != nil {
		logger.Error("error writing HTTP response", zap.Error(err))
	}
}
