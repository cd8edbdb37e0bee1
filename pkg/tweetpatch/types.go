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

package tweetpatch

type (
	// UpdateRequest is the body of a POST to the update endpoint.
	UpdateRequest struct {
		Text string `json:"text"`

		// Timestamp is an optional ISO-8601 instant the tweet was posted at.
		Timestamp string `json:"timestamp,omitempty"`

		Secret string `json:"secret"`
	}

	// UpdateResponse is returned with status 200 once the document is saved.
	UpdateResponse struct {
		Success     bool   `json:"success"`
		Message     string `json:"message"`
		UpdatedText string `json:"updatedText"`

		// Timestamp is the server time the update was applied at.
		Timestamp string `json:"timestamp"`
	}
)

const (
	// TimestampFormat matches JavaScript's Date.toISOString.
	TimestampFormat = "2006-01-02T15:04:05.000Z07:00"

	UpdatePath = "/api/update"
)

// Reply messages. Read and region failures happen before the document is
// touched; the write failure is the only one raised after.
const (
	MsgSuccess          = "HTML updated successfully"
	MsgTextRequired     = "Text is required"
	MsgInvalidBody      = "Invalid request body"
	MsgInvalidTimestamp = "Invalid timestamp"
	MsgUnauthorized     = "Unauthorized"
	MsgMethodNotAllowed = "Method not allowed"
	MsgReadFailed       = "Could not read HTML file"
	MsgRegionNotFound   = "Tweet element not found in HTML"
	MsgWriteFailed      = "Could not write HTML file"
	MsgInternal         = "Internal server error"
)
