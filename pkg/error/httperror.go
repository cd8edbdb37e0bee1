/*
Copyright 2016 The Fission Authors.
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

package error

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

type (
	// Errors returned by the update API.
	Error struct {
		Code    errorCode `json:"-"`
		Message string    `json:"error"`
		Details string    `json:"details,omitempty"`
	}

	errorCode int
)

func (err Error) Error() string {
	if err.Details != "" {
		return fmt.Sprintf("%v - %v: %v", err.Description(), err.Message, err.Details)
	}
	return fmt.Sprintf("%v - %v", err.Description(), err.Message)
}

func MakeError(code int, msg string) Error {
	return Error{Code: errorCode(code), Message: msg}
}

// MakeErrorWithDetails attaches the cause's message as details. A nil cause
// gives the same result as MakeError.
func MakeErrorWithDetails(code int, msg string, cause error) Error {
	e := MakeError(code, msg)
	if cause != nil {
		e.Details = cause.Error()
	}
	return e
}

// MakeErrorFromHTTP decodes an error reply. JSON bodies in the {error, details}
// shape are unpacked; anything else becomes the message verbatim.
func MakeErrorFromHTTP(resp *http.Response) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}

	var errCode int
	switch resp.StatusCode {
	case http.StatusBadRequest:
		errCode = ErrorInvalidArgument
	case http.StatusUnauthorized, http.StatusForbidden:
		errCode = ErrorNotAuthorized
	case http.StatusNotFound:
		errCode = ErrorNotFound
	case http.StatusMethodNotAllowed:
		errCode = ErrorMethodNotAllowed
	default:
		errCode = ErrorInternal
	}

	msg := resp.Status
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err == nil && len(body) > 0 {
		var reply Error
		if json.Unmarshal(body, &reply) == nil && reply.Message != "" {
			reply.Code = errorCode(errCode)
			return reply
		}
		msg = strings.TrimSpace(string(body))
	}

	return MakeError(errCode, msg)
}

func (err Error) HTTPStatus() int {
	var code int
	switch err.Code {
	case ErrorInvalidArgument:
		code = http.StatusBadRequest
	case ErrorNotAuthorized:
		code = http.StatusUnauthorized
	case ErrorNotFound:
		code = http.StatusNotFound
	case ErrorMethodNotAllowed:
		code = http.StatusMethodNotAllowed
	default:
		code = http.StatusInternalServerError
	}
	return code
}

func (err Error) Description() string {
	idx := int(err.Code)
	if idx < 0 || idx > len(errorDescriptions)-1 {
		return ""
	}
	return errorDescriptions[idx]
}

// GetHTTPError maps any error to a status code and a reply body. Errors that
// are not an Error become an internal error carrying err's text as details.
func GetHTTPError(err error) (int, Error) {
	var fe Error
	if errors.As(err, &fe) {
		return fe.HTTPStatus(), fe
	}
	fe = MakeErrorWithDetails(ErrorInternal, "Internal server error", err)
	return fe.HTTPStatus(), fe
}

func hasCode(err error, code int) bool {
	var fe Error
	if !errors.As(err, &fe) {
		return false
	}
	return fe.Code == errorCode(code)
}

func IsNotFound(err error) bool {
	return hasCode(err, ErrorNotFound)
}

func IsNotAuthorized(err error) bool {
	return hasCode(err, ErrorNotAuthorized)
}

func IsRegionNotFound(err error) bool {
	return hasCode(err, ErrorRegionNotFound)
}

// IsBeforeMutation reports whether err was raised before the document write
// was attempted, meaning the stored document is known to be untouched.
func IsBeforeMutation(err error) bool {
	var fe Error
	if !errors.As(err, &fe) {
		return false
	}
	return fe.Code != ErrorDocumentWrite && fe.Code != ErrorInternal
}

const (
	ErrorInternal = iota

	ErrorNotAuthorized
	ErrorNotFound
	ErrorInvalidArgument
	ErrorMethodNotAllowed
	ErrorDocumentRead
	ErrorRegionNotFound
	ErrorDocumentWrite
)

// must match order and len of the above const
var errorDescriptions = []string{
	"Internal error",
	"Not authorized",
	"Resource not found",
	"Invalid argument",
	"Method not allowed",
	"Document read failed",
	"Region not found",
	"Document write failed",
}
