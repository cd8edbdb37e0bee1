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
	"github.com/spf13/cobra"
)

const usage = `tweetpatch: keep the tweet card of a static page up to date.

It serves an HTTP endpoint that, given a shared secret, replaces the tweet
text and relative timestamp inside an HTML document.
`

func App() *cobra.Command {
	cobra.EnableCommandSorting = false

	rootCmd := &cobra.Command{
		Use:          "tweetpatch",
		Long:         usage,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		ServeCommand(),
		PostCommand(),
		PatchCommand(),
		VersionCommand(),
	)
	return rootCmd
}
