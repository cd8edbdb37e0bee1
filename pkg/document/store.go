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
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/tweetpatch/tweetpatch/pkg/config"
)

var ErrNotFound = errors.New("document not found")

type (
	// Store loads and saves the single HTML document being patched.
	Store interface {
		// Load returns the full document.
		Load(ctx context.Context) ([]byte, error)

		// Save replaces the full document with data.
		Save(ctx context.Context, data []byte) error

		// String names the document for logs, e.g. a path or bucket/key.
		String() string
	}
)

// MakeStore builds the Store selected by cfg.Type.
func MakeStore(logger *zap.Logger, cfg config.StorageConfig) (Store, error) {
	var (
		store Store
		err   error
	)

	switch cfg.Type {
	case config.StorageTypeFile, "":
		store = NewFileStore(cfg.DocumentPath)
	case config.StorageTypeLocal:
		store, err = MakeStowStore(logger, NewLocalLocation(cfg.LocalPath), cfg.Container, cfg.DocumentPath)
	case config.StorageTypeS3:
		store, err = MakeStowStore(logger, NewS3Location(cfg.S3), cfg.Container, cfg.DocumentPath)
	default:
		return nil, fmt.Errorf("storage type %q is not implemented", cfg.Type)
	}
	if err != nil {
		return nil, err
	}

	return WithMetrics(logger, cfg.Type, store), nil
}
