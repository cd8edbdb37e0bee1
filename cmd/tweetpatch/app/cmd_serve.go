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

package app

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/tweetpatch/tweetpatch/pkg/config"
	"github.com/tweetpatch/tweetpatch/pkg/tweetpatch"
	"github.com/tweetpatch/tweetpatch/pkg/utils/loggerfactory"
	otelUtils "github.com/tweetpatch/tweetpatch/pkg/utils/otel"
	"github.com/tweetpatch/tweetpatch/pkg/utils/signals"
)

// configOverrides reads the flags shared by serve and patch. Flags left at
// their zero value do not override the environment.
func configOverrides(flags *pflag.FlagSet) (config.Config, error) {
	var (
		overrides config.Config
		err       error
	)
	if overrides.Port, err = flags.GetInt("port"); err != nil {
		return overrides, err
	}
	if overrides.MetricsAddr, err = flags.GetString("metrics-addr"); err != nil {
		return overrides, err
	}
	if overrides.Storage.Type, err = flags.GetString("storage"); err != nil {
		return overrides, err
	}
	if overrides.Storage.DocumentPath, err = flags.GetString("document"); err != nil {
		return overrides, err
	}
	if overrides.Storage.LocalPath, err = flags.GetString("local-path"); err != nil {
		return overrides, err
	}
	if overrides.Storage.Container, err = flags.GetString("container"); err != nil {
		return overrides, err
	}
	return overrides, nil
}

func addStorageFlags(flags *pflag.FlagSet) {
	flags.StringP("document", "d", "", "document path (file storage) or item name (stow storage); env DOCUMENT_PATH")
	flags.String("storage", "", "storage type: file, local or s3; env STORAGE_TYPE")
	flags.String("local-path", "", "root directory for local stow storage; env STORAGE_LOCAL_PATH")
	flags.String("container", "", "stow container or bucket; env STORAGE_CONTAINER / STORAGE_S3_BUCKET_NAME")
}

func serveCommandHandler(cmd *cobra.Command, args []string) error {
	logger := loggerfactory.GetLogger()
	defer logger.Sync() //nolint: errcheck

	overrides, err := configOverrides(cmd.Flags())
	if err != nil {
		return err
	}
	cfg, err := config.Load(overrides)
	if err != nil {
		logger.Error("invalid configuration", zap.Error(err))
		return err
	}

	ctx := signals.SetupSignalHandlerWithContext(cmd.Context(), logger)

	shutdown, err := otelUtils.InitProvider(ctx, logger, "tweetpatch")
	if err != nil {
		logger.Error("error initializing tracing provider", zap.Error(err))
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		shutdown(shutdownCtx)
	}()

	return tweetpatch.Start(ctx, logger, cfg)
}

func ServeCommand() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the update endpoint",
		RunE:  serveCommandHandler,
		Args:  cobra.NoArgs,
	}
	flags := serveCmd.Flags()
	flags.IntP("port", "p", 0, "port to listen on; env PORT (default 8080)")
	flags.String("metrics-addr", "", "address of the metrics server; env METRICS_ADDR (default :9090)")
	addStorageFlags(flags)
	return serveCmd
}
