/*
Copyright 2017 The Fission Authors.
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
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/graymeta/stow"
	"github.com/graymeta/stow/local"
	"github.com/graymeta/stow/s3"
	"go.uber.org/zap"

	"github.com/tweetpatch/tweetpatch/pkg/config"
	"github.com/tweetpatch/tweetpatch/pkg/utils/uuid"
)

// PaginationSize is the page size used when listing containers.
const PaginationSize = 10

type (
	// Location describes how to reach a stow backend.
	Location interface {
		Kind() string
		Dial() (stow.Location, error)
	}

	localLocation struct {
		path string
	}

	s3Location struct {
		cfg config.S3Config
	}

	// StowStore keeps the document as a single item in a stow container.
	StowStore struct {
		logger    *zap.Logger
		kind      string
		item      string
		location  stow.Location
		container stow.Container

		// dir is the container directory for the local kind, empty otherwise
		dir string
	}
)

// NewLocalLocation stores containers as directories under path.
func NewLocalLocation(path string) Location {
	return localLocation{path: path}
}

func (l localLocation) Kind() string {
	return local.Kind
}

func (l localLocation) Dial() (stow.Location, error) {
	if err := os.MkdirAll(l.path, 0755); err != nil {
		return nil, fmt.Errorf("error creating local storage path %s: %w", l.path, err)
	}
	return stow.Dial(local.Kind, stow.ConfigMap{local.ConfigKeyPath: l.path})
}

// NewS3Location stores the document in an S3 (or S3 compatible) bucket.
func NewS3Location(cfg config.S3Config) Location {
	return s3Location{cfg: cfg}
}

func (l s3Location) Kind() string {
	return s3.Kind
}

func (l s3Location) Dial() (stow.Location, error) {
	cfgMap := stow.ConfigMap{
		s3.ConfigAccessKeyID: l.cfg.AccessKeyID,
		s3.ConfigSecretKey:   l.cfg.SecretAccessKey,
		s3.ConfigRegion:      l.cfg.Region,
	}
	if l.cfg.AccessKeyID == "" {
		cfgMap[s3.ConfigAuthType] = "iam"
	}
	if l.cfg.Endpoint != "" {
		cfgMap[s3.ConfigEndpoint] = l.cfg.Endpoint
	}
	if l.cfg.DisableSSL {
		cfgMap[s3.ConfigDisableSSL] = strconv.FormatBool(l.cfg.DisableSSL)
	}
	return stow.Dial(s3.Kind, cfgMap)
}

// MakeStowStore dials loc and opens (creating when needed) containerName.
// item is the document's name inside the container.
func MakeStowStore(logger *zap.Logger, loc Location, containerName, item string) (*StowStore, error) {
	location, err := loc.Dial()
	if err != nil {
		return nil, fmt.Errorf("error dialing %s storage: %w", loc.Kind(), err)
	}

	container, err := openContainer(location, containerName)
	if err != nil {
		location.Close()
		return nil, fmt.Errorf("error opening container %q: %w", containerName, err)
	}

	store := &StowStore{
		logger:    logger.Named("stow_store"),
		kind:      loc.Kind(),
		item:      item,
		location:  location,
		container: container,
	}
	if l, ok := loc.(localLocation); ok {
		store.dir = filepath.Join(l.path, containerName)
	}
	return store, nil
}

func openContainer(location stow.Location, name string) (stow.Container, error) {
	con, err := location.CreateContainer(name)
	if err == nil {
		return con, nil
	}
	if !os.IsExist(err) && !strings.Contains(err.Error(), "BucketAlreadyOwnedByYou") {
		return nil, err
	}

	// already there: look it up by prefix and pick the exact name
	cursor := stow.CursorStart
	for {
		var cons []stow.Container
		cons, cursor, err = location.Containers(name, cursor, PaginationSize)
		if err != nil {
			return nil, err
		}
		for _, c := range cons {
			if c.Name() == name {
				return c, nil
			}
		}
		if stow.IsCursorEnd(cursor) {
			return nil, fmt.Errorf("container %q exists but could not be listed", name)
		}
	}
}

func (s *StowStore) String() string {
	return fmt.Sprintf("%s://%s/%s", s.kind, s.container.Name(), s.item)
}

func (s *StowStore) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	item, err := s.container.Item(s.item)
	if err != nil {
		if errors.Is(err, stow.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", s, ErrNotFound)
		}
		return nil, fmt.Errorf("error retrieving %s: %w", s, err)
	}

	f, err := item.Open()
	if err != nil {
		return nil, fmt.Errorf("error opening %s: %w", s, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", s, err)
	}

	s.logger.Debug("loaded document", zap.Stringer("document", s), zap.String("size", humanize.Bytes(uint64(len(data)))))
	return data, nil
}

// Save puts data as the item, replacing it.
func (s *StowStore) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := s.put(bytes.NewReader(data), int64(len(data))); err != nil {
		s.logger.Error("error writing document on storage", zap.Error(err), zap.Stringer("document", s))
		return fmt.Errorf("error writing %s: %w", s, err)
	}

	s.logger.Debug("saved document", zap.Stringer("document", s), zap.String("size", humanize.Bytes(uint64(len(data)))))
	return nil
}

// put writes the item. S3 puts replace the object atomically. The local
// backend truncates the target before copying, so there the data goes to a
// temporary item first which is then renamed over the document.
func (s *StowStore) put(r io.Reader, size int64) error {
	if s.dir == "" {
		_, err := s.container.Put(s.item, r, size, nil)
		return err
	}

	tmpItem := path.Join(path.Dir(s.item), "."+path.Base(s.item)+".tmp-"+uuid.NewString())
	tmpPath := filepath.Join(s.dir, filepath.FromSlash(tmpItem))
	target := filepath.Join(s.dir, filepath.FromSlash(s.item))

	if _, err := s.container.Put(tmpItem, r, size, nil); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if info, err := os.Stat(target); err == nil {
		if err := os.Chmod(tmpPath, info.Mode().Perm()); err != nil {
			os.Remove(tmpPath)
			return err
		}
	}
	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

// Close releases the stow location.
func (s *StowStore) Close() error {
	return s.location.Close()
}
