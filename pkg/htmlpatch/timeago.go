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
	"fmt"
	"time"
)

const (
	millisPerMinute = 60 * 1000
	minutesPerHour  = 60
	minutesPerDay   = 24 * minutesPerHour
)

// TimeAgo renders the time elapsed between past and now as a compact label:
// "now", "<N>m", "<N>h" or "<N>d". Elapsed time is floored to whole minutes.
//
// Instants after now give a negative minute count and render as "now".
func TimeAgo(past, now time.Time) string {
	// millisecond arithmetic; time.Duration saturates at about 292 years
	elapsed := now.UnixMilli() - past.UnixMilli()
	minutes := elapsed / millisPerMinute
	if elapsed%millisPerMinute < 0 {
		minutes--
	}

	switch {
	case minutes < 1:
		return "now"
	case minutes < minutesPerHour:
		return fmt.Sprintf("%dm", minutes)
	case minutes < minutesPerDay:
		return fmt.Sprintf("%dh", minutes/minutesPerHour)
	default:
		return fmt.Sprintf("%dd", minutes/minutesPerDay)
	}
}

// timestampLayouts are the ISO-8601 forms accepted by ParseTimestamp, tried in order.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp parses an ISO-8601 timestamp. Values without a zone offset
// are taken as UTC.
func ParseTimestamp(value string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid ISO-8601 timestamp %q", value)
}
