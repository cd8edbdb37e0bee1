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

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var ErrRegionNotFound = errors.New("region not found")

type (
	// Region is a span of a document delimited by a fixed open and close
	// marker. Markers are matched byte-for-byte.
	Region struct {
		Name  string
		Open  string
		Close string

		// Prefix is written in front of new content on Replace.
		Prefix string
		// Lead, when set, must open the existing content for an occurrence
		// to count.
		Lead string
	}

	// Span locates the inner content of a region: doc[Start:End].
	Span struct {
		Start int
		End   int
	}
)

var (
	// TweetText holds the escaped tweet body.
	TweetText = Region{
		Name:  "tweet-text",
		Open:  `<div class="tweet-text">`,
		Close: `</div>`,
	}

	// Timestamp holds the relative time label, after a middle dot. Spans
	// without the dot, or spread over several lines, are left alone.
	Timestamp = Region{
		Name:   "timestamp",
		Open:   `<span class="timestamp">`,
		Close:  `</span>`,
		Prefix: "· ",
		Lead:   "·",
	}
)

// Find returns the inner span of the first occurrence of the region and the
// number of occurrences in doc. The close marker is the first one after the
// open marker, so regions cannot nest another element with the same closing
// tag. Occurrences whose content Lead rejects are not counted.
func (r Region) Find(doc string) (Span, int, error) {
	var (
		first = Span{Start: -1}
		count int
	)
	for offset := 0; ; {
		i := strings.Index(doc[offset:], r.Open)
		if i < 0 {
			break
		}
		start := offset + i + len(r.Open)
		offset = start

		end := strings.Index(doc[start:], r.Close)
		if end < 0 {
			break
		}
		if !r.accepts(doc[start : start+end]) {
			continue
		}
		count++
		if first.Start < 0 {
			first = Span{Start: start, End: start + end}
		}
	}

	if count == 0 {
		return Span{}, 0, fmt.Errorf("%s: %q ... %q: %w", r.Name, r.Open, r.Close, ErrRegionNotFound)
	}
	return first, count, nil
}

// accepts reports whether inner is a valid region body. With a Lead, the body
// must start with it and the text after the whitespace following it must sit
// on a single line.
func (r Region) accepts(inner string) bool {
	if r.Lead == "" {
		return true
	}
	rest, ok := strings.CutPrefix(inner, r.Lead)
	if !ok {
		return false
	}
	return !strings.ContainsAny(strings.TrimLeftFunc(rest, unicode.IsSpace), "\r\n\u2028\u2029")
}

// Replace swaps the inner content of the first occurrence of the region for
// Prefix+content. Whitespace around the old content is kept so the
// document's indentation survives. It also returns the open marker count;
// callers decide what more than one occurrence means.
func (r Region) Replace(doc, content string) (string, int, error) {
	span, count, err := r.Find(doc)
	if err != nil {
		return doc, count, err
	}

	inner := doc[span.Start:span.End]
	leading := inner[:len(inner)-len(strings.TrimLeftFunc(inner, unicode.IsSpace))]
	trailing := ""
	if len(leading) < len(inner) {
		trailing = inner[len(strings.TrimRightFunc(inner, unicode.IsSpace)):]
	}

	var b strings.Builder
	b.Grow(len(doc) - len(inner) + len(leading) + len(r.Prefix) + len(content) + len(trailing))
	b.WriteString(doc[:span.Start])
	b.WriteString(leading)
	b.WriteString(r.Prefix)
	b.WriteString(content)
	b.WriteString(trailing)
	b.WriteString(doc[span.End:])

	return b.String(), count, nil
}

// Content returns the inner content of the first occurrence of the region.
func (r Region) Content(doc string) (string, error) {
	span, _, err := r.Find(doc)
	if err != nil {
		return "", err
	}
	return doc[span.Start:span.End], nil
}
