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

package otel

import (
	"go.opentelemetry.io/otel/attribute"
)

/* GetAttributesForUpdate returns a set of attributes for a document update. Attributes returned:
    request-id
    document
    text-length
    has-timestamp

These attributes are tags that can be used to filter traces.
*/
func GetAttributesForUpdate(requestID, document string, textLength int, hasTimestamp bool) []attribute.KeyValue {
	return []attribute.KeyValue{
		{Key: "request-id", Value: attribute.StringValue(requestID)},
		{Key: "document", Value: attribute.StringValue(document)},
		{Key: "text-length", Value: attribute.IntValue(textLength)},
		{Key: "has-timestamp", Value: attribute.BoolValue(hasTimestamp)},
	}
}
