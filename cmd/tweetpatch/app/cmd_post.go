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
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tweetpatch/tweetpatch/pkg/client"
	ferror "github.com/tweetpatch/tweetpatch/pkg/error"
	"github.com/tweetpatch/tweetpatch/pkg/htmlpatch"
	"github.com/tweetpatch/tweetpatch/pkg/tweetpatch"
	"github.com/tweetpatch/tweetpatch/pkg/utils/loggerfactory"
)

func postCommandHandler(cmd *cobra.Command, args []string) error {
	var err error
	flags := cmd.Flags()

	req := tweetpatch.UpdateRequest{}
	if req.Text, err = flags.GetString("text"); err != nil {
		return err
	}
	if req.Secret, err = flags.GetString("secret"); err != nil {
		return err
	}
	if req.Secret == "" {
		req.Secret = os.Getenv("UPDATE_SECRET")
	}

	now, err := flags.GetBool("now")
	if err != nil {
		return err
	}
	if now {
		req.Timestamp = time.Now().UTC().Format(tweetpatch.TimestampFormat)
	} else if req.Timestamp, err = flags.GetString("timestamp"); err != nil {
		return err
	}

	server, err := flags.GetString("server")
	if err != nil {
		return err
	}
	retries, err := flags.GetInt("retries")
	if err != nil {
		return err
	}
	timeout, err := flags.GetDuration("timeout")
	if err != nil {
		return err
	}

	logger := loggerfactory.GetLogger()
	defer logger.Sync() //nolint: errcheck

	c := client.MakeClient(logger, server, client.Options{RetryMax: retries, Timeout: timeout})
	resp, err := c.Update(cmd.Context(), req)
	if err != nil {
		if ferror.IsRegionNotFound(err) {
			fmt.Fprintf(cmd.ErrOrStderr(), "the document has no %s element\n", htmlpatch.TweetText.Open)
		}
		if ferror.IsBeforeMutation(err) {
			fmt.Fprintln(cmd.ErrOrStderr(), color.YellowString("document unchanged"))
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s at %s\n", color.GreenString(resp.Message), resp.Timestamp)
	return nil
}

func PostCommand() *cobra.Command {
	postCmd := &cobra.Command{
		Use:   "post",
		Short: "Send an update to a running tweetpatch server",
		RunE:  postCommandHandler,
		Args:  cobra.NoArgs,
	}
	flags := postCmd.Flags()
	flags.StringP("server", "s", "http://127.0.0.1:8080", "server URL")
	flags.StringP("text", "t", "", "tweet text")
	flags.String("secret", "", "shared secret; defaults to env UPDATE_SECRET")
	flags.String("timestamp", "", "ISO-8601 time the tweet was posted")
	flags.Bool("now", false, "use the current time as the tweet timestamp")
	flags.Int("retries", 0, "number of retries on connection errors and 5xx replies")
	flags.Duration("timeout", 30*time.Second, "request timeout")
	postCmd.MarkFlagRequired("text") //nolint: errcheck
	postCmd.MarkFlagsMutuallyExclusive("timestamp", "now")
	return postCmd
}
