package error

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRegionNotFound(t *testing.T) {
	notFound := MakeError(ErrorRegionNotFound, "Tweet element not found in HTML")
	errs := map[error]bool{
		nil:      false,
		notFound: true,
		MakeError(ErrorDocumentRead, "Could not read HTML file"):                         false,
		fmt.Errorf("other information: %w", notFound):                                    true,
		fmt.Errorf("other information: %w", MakeError(ErrorInvalidArgument, "required")): false,
		fmt.Errorf("plain error"):                                                        false,
	}

	for err, want := range errs {
		assert.Equal(t, want, IsRegionNotFound(err))
	}
}

func TestGetHTTPError(t *testing.T) {
	errs := map[int]error{
		http.StatusBadRequest:          MakeError(ErrorInvalidArgument, "Text is required"),
		http.StatusUnauthorized:        fmt.Errorf("secret: %w", MakeError(ErrorNotAuthorized, "Unauthorized")),
		http.StatusMethodNotAllowed:    MakeError(ErrorMethodNotAllowed, "Method not allowed"),
		http.StatusNotFound:            MakeError(ErrorNotFound, "not found"),
		http.StatusInternalServerError: MakeError(ErrorDocumentWrite, "Could not write HTML file"),
	}
	for want, err := range errs {
		code, _ := GetHTTPError(err)
		assert.Equal(t, want, code)
	}
}

func TestGetHTTPErrorUnknown(t *testing.T) {
	code, body := GetHTTPError(fmt.Errorf("boom"))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Internal server error", body.Message)
	assert.Equal(t, "boom", body.Details)
}

func TestIsBeforeMutation(t *testing.T) {
	assert.True(t, IsBeforeMutation(MakeError(ErrorDocumentRead, "")))
	assert.True(t, IsBeforeMutation(MakeError(ErrorRegionNotFound, "")))
	assert.True(t, IsBeforeMutation(MakeError(ErrorNotAuthorized, "")))
	assert.False(t, IsBeforeMutation(MakeError(ErrorDocumentWrite, "")))
	assert.False(t, IsBeforeMutation(MakeError(ErrorInternal, "")))
	assert.False(t, IsBeforeMutation(fmt.Errorf("boom")))
}

func TestMakeErrorFromHTTP(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantCode    errorCode
		wantMessage string
		wantDetails string
	}{
		{
			name:        "json body",
			status:      http.StatusInternalServerError,
			body:        `{"error":"Could not write HTML file","details":"disk full"}`,
			wantCode:    ErrorInternal,
			wantMessage: "Could not write HTML file",
			wantDetails: "disk full",
		},
		{
			name:        "unauthorized",
			status:      http.StatusUnauthorized,
			body:        `{"error":"Unauthorized"}`,
			wantCode:    ErrorNotAuthorized,
			wantMessage: "Unauthorized",
		},
		{
			name:        "plain text body",
			status:      http.StatusBadGateway,
			body:        "upstream unavailable\n",
			wantCode:    ErrorInternal,
			wantMessage: "upstream unavailable",
		},
		{
			name:        "empty body",
			status:      http.StatusMethodNotAllowed,
			wantCode:    ErrorMethodNotAllowed,
			wantMessage: "405 Method Not Allowed",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &http.Response{
				StatusCode: tt.status,
				Status:     fmt.Sprintf("%d %s", tt.status, http.StatusText(tt.status)),
				Body:       io.NopCloser(strings.NewReader(tt.body)),
			}
			err := MakeErrorFromHTTP(resp)
			var fe Error
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.wantCode, fe.Code)
			assert.Equal(t, tt.wantMessage, fe.Message)
			assert.Equal(t, tt.wantDetails, fe.Details)
		})
	}
}

func TestIsNotFound(t *testing.T) {
	resp := &http.Response{
		StatusCode: http.StatusNotFound,
		Status:     "404 Not Found",
		Body:       io.NopCloser(strings.NewReader("404 page not found\n")),
	}
	err := MakeErrorFromHTTP(resp)
	assert.True(t, IsNotFound(err))
	assert.False(t, IsNotAuthorized(err))
	assert.Equal(t, http.StatusNotFound, err.(Error).HTTPStatus())
}
