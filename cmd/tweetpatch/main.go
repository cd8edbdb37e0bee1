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

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/tweetpatch/tweetpatch/cmd/tweetpatch/app"
)

func main() {
	cmd := app.App()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v: %v\n", color.RedString("Error"), strings.TrimSuffix(err.Error(), "\n"))
		os.Exit(1)
	}
}
