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

package htmlpatch

import "time"

type (
	// Update is one change to apply to a document.
	Update struct {
		// Text is the raw tweet text; it is escaped before splicing.
		Text string

		// PostedAt, when set, drives the timestamp region label.
		PostedAt *time.Time
	}

	// Result describes what Apply did to a document.
	Result struct {
		Document string

		EscapedText string

		// TimeLabel is empty when no timestamp was requested.
		TimeLabel        string
		TimestampUpdated bool

		// Occurrences of each region's open marker in the input document.
		TweetTextCount int
		TimestampCount int
	}
)

// Apply splices u into doc and returns the patched copy; doc itself is never
// modified. A missing tweet-text region fails the whole update. A missing
// timestamp region is skipped and reported through Result.TimestampUpdated.
func Apply(doc string, u Update, now time.Time) (*Result, error) {
	escaped := Escape(u.Text)

	patched, count, err := TweetText.Replace(doc, escaped)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Document:       patched,
		EscapedText:    escaped,
		TweetTextCount: count,
	}

	if u.PostedAt == nil {
		return result, nil
	}

	result.TimeLabel = TimeAgo(*u.PostedAt, now)
	patched, count, err = Timestamp.Replace(result.Document, result.TimeLabel)
	result.TimestampCount = count
	if err != nil {
		return result, nil
	}
	result.Document = patched
	result.TimestampUpdated = true

	return result, nil
}
