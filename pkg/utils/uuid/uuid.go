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

package uuid

import (
	"github.com/google/uuid"
)

func NewString() string {
	return uuid.New().String()
}

// RequestID returns the caller supplied id when it is a valid UUID and a
// fresh one otherwise.
func RequestID(supplied string) string {
	if supplied != "" {
		if id, err := uuid.Parse(supplied); err == nil {
			return id.String()
		}
	}
	return NewString()
}
