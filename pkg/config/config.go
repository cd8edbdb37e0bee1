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

package config

import (
	"fmt"
	"os"
	"strconv"

	"dario.cat/mergo"
	"github.com/hashicorp/go-multierror"
)

const (
	// DefaultSecret is used when UPDATE_SECRET is unset. It is public and
	// therefore insecure; deployments must override it.
	DefaultSecret = "tweetpatch-insecure-default-secret"

	DefaultDocumentPath = "index.html"
	DefaultPort         = 8080
	DefaultMetricsAddr  = ":9090"
	DefaultContainer    = "tweetpatch"

	StorageTypeFile  = "file"
	StorageTypeLocal = "local"
	StorageTypeS3    = "s3"
)

type (
	Config struct {
		Secret      string
		Port        int
		MetricsAddr string
		Storage     StorageConfig
	}

	// StorageConfig selects where the document lives. For the file type
	// DocumentPath is the file itself; for stow types it is the item name
	// inside Container.
	StorageConfig struct {
		Type         string
		DocumentPath string
		LocalPath    string
		Container    string
		S3           S3Config
	}

	S3Config struct {
		Endpoint        string
		AccessKeyID     string
		SecretAccessKey string
		Region          string
		DisableSSL      bool
	}
)

// Defaults returns the configuration used for every field left unset.
func Defaults() Config {
	return Config{
		Secret:      DefaultSecret,
		Port:        DefaultPort,
		MetricsAddr: DefaultMetricsAddr,
		Storage: StorageConfig{
			Type:         StorageTypeFile,
			DocumentPath: DefaultDocumentPath,
			Container:    DefaultContainer,
		},
	}
}

// FromEnv reads the configuration from environment variables only. Unset
// variables stay zero.
func FromEnv() (Config, error) {
	var errs *multierror.Error

	cfg := Config{
		Secret:      os.Getenv("UPDATE_SECRET"),
		MetricsAddr: os.Getenv("METRICS_ADDR"),
		Storage: StorageConfig{
			Type:         os.Getenv("STORAGE_TYPE"),
			DocumentPath: os.Getenv("DOCUMENT_PATH"),
			LocalPath:    os.Getenv("STORAGE_LOCAL_PATH"),
			Container:    os.Getenv("STORAGE_CONTAINER"),
			S3: S3Config{
				Endpoint:        os.Getenv("STORAGE_S3_ENDPOINT"),
				AccessKeyID:     os.Getenv("STORAGE_S3_ACCESS_KEY_ID"),
				SecretAccessKey: os.Getenv("STORAGE_S3_SECRET_ACCESS_KEY"),
				Region:          os.Getenv("STORAGE_S3_REGION"),
			},
		},
	}

	// the bucket name wins over STORAGE_CONTAINER for s3
	if bucket := os.Getenv("STORAGE_S3_BUCKET_NAME"); bucket != "" {
		cfg.Storage.Container = bucket
	}

	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("invalid PORT %q: %w", port, err))
		}
		cfg.Port = p
	}

	if v := os.Getenv("STORAGE_S3_DISABLE_SSL"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = multierror.Append(errs, fmt.Errorf("invalid STORAGE_S3_DISABLE_SSL %q: %w", v, err))
		}
		cfg.Storage.S3.DisableSSL = b
	}

	return cfg, errs.ErrorOrNil()
}

// Load builds the effective configuration: environment, then overrides (for
// example from command line flags) on top, then Defaults for whatever is
// still unset. The result is validated.
func Load(overrides Config) (Config, error) {
	cfg, err := FromEnv()
	if err != nil {
		return Config{}, err
	}
	if err := mergo.Merge(&cfg, overrides, mergo.WithOverride); err != nil {
		return Config{}, fmt.Errorf("error merging config overrides: %w", err)
	}
	if err := mergo.Merge(&cfg, Defaults()); err != nil {
		return Config{}, fmt.Errorf("error merging config defaults: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every problem with the configuration at once.
func (c Config) Validate() error {
	var errs *multierror.Error

	if c.Secret == "" {
		errs = multierror.Append(errs, fmt.Errorf("secret must not be empty"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = multierror.Append(errs, fmt.Errorf("port %d out of range", c.Port))
	}
	if c.Storage.DocumentPath == "" {
		errs = multierror.Append(errs, fmt.Errorf("document path must not be empty"))
	}

	switch c.Storage.Type {
	case StorageTypeFile:
	case StorageTypeLocal:
		if c.Storage.LocalPath == "" {
			errs = multierror.Append(errs, fmt.Errorf("STORAGE_LOCAL_PATH is required for storage type %q", c.Storage.Type))
		}
		if c.Storage.Container == "" {
			errs = multierror.Append(errs, fmt.Errorf("container is required for storage type %q", c.Storage.Type))
		}
	case StorageTypeS3:
		if c.Storage.Container == "" {
			errs = multierror.Append(errs, fmt.Errorf("STORAGE_S3_BUCKET_NAME is required for storage type %q", c.Storage.Type))
		}
		if c.Storage.S3.Region == "" {
			errs = multierror.Append(errs, fmt.Errorf("STORAGE_S3_REGION is required for storage type %q", c.Storage.Type))
		}
	default:
		errs = multierror.Append(errs, fmt.Errorf("unknown storage type %q", c.Storage.Type))
	}

	return errs.ErrorOrNil()
}

// UsingDefaultSecret reports whether the public fallback secret is in effect.
func (c Config) UsingDefaultSecret() bool {
	return c.Secret == DefaultSecret
}

// ListenAddr is the address the update server binds to.
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}
