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
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tweetpatch/tweetpatch/pkg/config"
	"github.com/tweetpatch/tweetpatch/pkg/document"
	"github.com/tweetpatch/tweetpatch/pkg/htmlpatch"
	"github.com/tweetpatch/tweetpatch/pkg/utils/loggerfactory"
)

// patchCommandHandler applies an update straight to the configured document,
// without a server or a secret.
func patchCommandHandler(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	text, err := flags.GetString("text")
	if err != nil {
		return err
	}
	if text == "" {
		return fmt.Errorf("text is required")
	}

	u := htmlpatch.Update{Text: text}
	timestamp, err := flags.GetString("timestamp")
	if err != nil {
		return err
	}
	if timestamp != "" {
		postedAt, err := htmlpatch.ParseTimestamp(timestamp)
		if err != nil {
			return err
		}
		u.PostedAt = &postedAt
	}

	logger := loggerfactory.GetLogger()
	defer logger.Sync() //nolint: errcheck

	overrides, err := configOverrides(cmd.Flags())
	if err != nil {
		return err
	}
	cfg, err := config.Load(overrides)
	if err != nil {
		return err
	}
	store, err := document.MakeStore(logger, cfg.Storage)
	if err != nil {
		return err
	}

	data, err := store.Load(cmd.Context())
	if err != nil {
		return err
	}
	result, err := htmlpatch.Apply(string(data), u, time.Now())
	if err != nil {
		return err
	}

	dryRun, err := flags.GetBool("dry-run")
	if err != nil {
		return err
	}
	if dryRun {
		_, err = fmt.Fprint(cmd.OutOrStdout(), result.Document)
		return err
	}
	if err := store.Save(cmd.Context(), []byte(result.Document)); err != nil {
		return err
	}

	logger.Info("document patched",
		zap.Stringer("document", store),
		zap.Bool("timestamp_updated", result.TimestampUpdated))
	return nil
}

func PatchCommand() *cobra.Command {
	patchCmd := &cobra.Command{
		Use:   "patch",
		Short: "Patch the document directly, without a server",
		RunE:  patchCommandHandler,
		Args:  cobra.NoArgs,
	}
	flags := patchCmd.Flags()
	flags.StringP("text", "t", "", "tweet text")
	flags.String("timestamp", "", "ISO-8601 time the tweet was posted")
	flags.Bool("dry-run", false, "print the patched document instead of saving it")
	// configOverrides reads these too
	flags.Int("port", 0, "")
	flags.String("metrics-addr", "", "")
	flags.MarkHidden("port")         //nolint: errcheck
	flags.MarkHidden("metrics-addr") //nolint: errcheck
	addStorageFlags(flags)
	return patchCmd
}
