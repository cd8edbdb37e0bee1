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

import "strings"

// htmlReplacements must run in order: the ampersand goes first so the
// entities produced by the later substitutions are left alone.
var htmlReplacements = []struct {
	old, new string
}{
	{"&", "&amp;"},
	{"<", "&lt;"},
	{">", "&gt;"},
	{`"`, "&quot;"},
	{"'", "&#39;"},
}

// Escape makes raw text safe to embed in HTML element content or a quoted
// attribute. Existing entities are escaped again, so "&amp;" becomes
// "&amp;amp;".
func Escape(raw string) string {
	s := raw
	for _, r := range htmlReplacements {
		s = strings.ReplaceAll(s, r.old, r.new)
	}
	return s
}
