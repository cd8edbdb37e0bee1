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

// Package handler is the serverless entry point: the platform routes
// /api/update to Handler.
package handler

import (
	"net/http"
	"sync"

	"go.uber.org/zap"

	"github.com/tweetpatch/tweetpatch/pkg/config"
	"github.com/tweetpatch/tweetpatch/pkg/document"
	"github.com/tweetpatch/tweetpatch/pkg/tweetpatch"
	"github.com/tweetpatch/tweetpatch/pkg/utils/loggerfactory"
)

var (
	once    sync.Once
	handler http.Handler
)

// setup builds the update handler from the environment. A configuration or
// storage failure still yields a handler, one that reports the failure.
func setup() {
	logger := loggerfactory.GetLogger()

	cfg, err := config.Load(config.Config{})
	if err != nil {
		logger.Error("invalid configuration", zap.Error(err))
		handler = tweetpatch.FailedHandler(logger, err)
		return
	}
	if cfg.UsingDefaultSecret() {
		logger.Warn("UPDATE_SECRET is not set, using the built-in default secret")
	}

	store, err := document.MakeStore(logger, cfg.Storage)
	if err != nil {
		logger.Error("error creating document store", zap.Error(err))
		handler = tweetpatch.FailedHandler(logger, err)
		return
	}
	handler = tweetpatch.NewHandler(logger, store, tweetpatch.WithSecret(cfg.Secret))
}

func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(setup)
	handler.ServeHTTP(w, r)
}
