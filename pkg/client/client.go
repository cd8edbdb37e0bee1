/*
Copyright 2016 The Fission Authors.
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

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	ferror "github.com/tweetpatch/tweetpatch/pkg/error"
	"github.com/tweetpatch/tweetpatch/pkg/tweetpatch"
	otelUtils "github.com/tweetpatch/tweetpatch/pkg/utils/otel"
)

type (
	// ClientInterface posts updates to a running update endpoint.
	ClientInterface interface {
		Update(ctx context.Context, req tweetpatch.UpdateRequest) (*tweetpatch.UpdateResponse, error)
	}

	// Options tune the underlying HTTP client. Zero values keep the defaults:
	// no retries and a 30 second timeout.
	Options struct {
		RetryMax int
		Timeout  time.Duration
	}

	client struct {
		logger     *zap.Logger
		updateURL  string
		httpClient *retryablehttp.Client
	}
)

// MakeClient returns a client for the server at serverURL. A URL that
// already ends in the update path is used as is.
func MakeClient(logger *zap.Logger, serverURL string, opts Options) ClientInterface {
	hc := retryablehttp.NewClient()
	hc.RetryMax = opts.RetryMax
	hc.Logger = nil
	hc.HTTPClient.Transport = otelUtils.GetTransportWithOTEL(hc.HTTPClient.Transport)
	hc.HTTPClient.Timeout = 30 * time.Second
	if opts.Timeout > 0 {
		hc.HTTPClient.Timeout = opts.Timeout
	}
	// hand non-2xx replies back so their JSON body can be decoded
	hc.ErrorHandler = retryablehttp.PassthroughErrorHandler

	updateURL := strings.TrimSuffix(serverURL, "/")
	if !strings.HasSuffix(updateURL, tweetpatch.UpdatePath) {
		updateURL += tweetpatch.UpdatePath
	}

	return &client{
		logger:     logger.Named("tweetpatch_client"),
		updateURL:  updateURL,
		httpClient: hc,
	}
}

func (c *client) Update(ctx context.Context, update tweetpatch.UpdateRequest) (*tweetpatch.UpdateResponse, error) {
	body, err := json.Marshal(update)
	if err != nil {
		return nil, fmt.Errorf("could not marshal update request: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.updateURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("could not create update request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error posting update to %s: %w", c.updateURL, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug("update rejected", zap.Int("status", resp.StatusCode), zap.String("request_id", resp.Header.Get("X-Request-Id")))
		return nil, classifyServerError(ferror.MakeErrorFromHTTP(resp))
	}
	defer resp.Body.Close()

	var ur tweetpatch.UpdateResponse
	if err := json.NewDecoder(resp.Body).Decode(&ur); err != nil {
		return nil, fmt.Errorf("error decoding update response: %w", err)
	}
	return &ur, nil
}

// classifyServerError restores the document error codes that a 500 reply
// only carries in its message.
func classifyServerError(err error) error {
	fe, ok := err.(ferror.Error)
	if !ok || fe.Code != ferror.ErrorInternal {
		return err
	}
	switch fe.Message {
	case tweetpatch.MsgReadFailed:
		fe.Code = ferror.ErrorDocumentRead
	case tweetpatch.MsgRegionNotFound:
		fe.Code = ferror.ErrorRegionNotFound
	case tweetpatch.MsgWriteFailed:
		fe.Code = ferror.ErrorDocumentWrite
	default:
		return err
	}
	return fe
}
