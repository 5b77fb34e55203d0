// response/response_test.go
package response

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deploymenttheory/go-api-stream-client/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseHeader(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantValue  string
		wantParams map[string]string
	}{
		{
			name:       "mime type with charset",
			header:     "application/json; charset=utf-8",
			wantValue:  "application/json",
			wantParams: map[string]string{"charset": "utf-8"},
		},
		{
			name:       "bare mime type",
			header:     "text/plain",
			wantValue:  "text/plain",
			wantParams: map[string]string{},
		},
		{
			name:       "empty header",
			header:     "",
			wantValue:  "",
			wantParams: map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, params := parseHeader(tt.header)
			assert.Equal(t, tt.wantValue, value)
			assert.Equal(t, tt.wantParams, params)
		})
	}
}

// errorResponse builds a *http.Response carrying the given status, content type and body.
func errorResponse(t *testing.T, status int, contentType, body string) *http.Response {
	t.Helper()
	recorder := httptest.NewRecorder()
	recorder.Header().Set("Content-Type", contentType)
	recorder.WriteHeader(status)
	recorder.WriteString(body)

	resp := recorder.Result()
	resp.Request = httptest.NewRequest("POST", "http://example.com/auth/token", nil)
	return resp
}

func TestHandleAPIErrorResponse(t *testing.T) {
	tests := []struct {
		name            string
		status          int
		contentType     string
		body            string
		expectedMessage string
	}{
		{
			name:            "JSON error body",
			status:          http.StatusUnauthorized,
			contentType:     "application/json",
			body:            `{"message": "invalid api key"}`,
			expectedMessage: "invalid api key",
		},
		{
			name:            "XML error body",
			status:          http.StatusBadRequest,
			contentType:     "application/xml",
			body:            `<error><message>missing api key</message></error>`,
			expectedMessage: "missing api key",
		},
		{
			name:            "HTML error body",
			status:          http.StatusServiceUnavailable,
			contentType:     "text/html",
			body:            `<html><body><p>Service down for maintenance</p></body></html>`,
			expectedMessage: "Service down for maintenance",
		},
		{
			name:            "plain text error body",
			status:          http.StatusInternalServerError,
			contentType:     "text/plain",
			body:            "something broke",
			expectedMessage: "something broke",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := errorResponse(t, tt.status, tt.contentType, tt.body)

			apiError := HandleAPIErrorResponse(resp, logger.NewNopLogger())

			require.NotNil(t, apiError)
			assert.Equal(t, tt.status, apiError.StatusCode)
			assert.Equal(t, "POST", apiError.Method)
			assert.Contains(t, apiError.Message, tt.expectedMessage)
		})
	}
}

func TestHandleAPIErrorResponseUnknownContentType(t *testing.T) {
	resp := errorResponse(t, http.StatusBadGateway, "application/octet-stream", "binary junk")

	apiError := HandleAPIErrorResponse(resp, logger.NewNopLogger())

	assert.Equal(t, "Unknown content type error", apiError.Message)
	assert.Equal(t, "binary junk", apiError.RawResponse)
}

func TestAPIErrorImplementsError(t *testing.T) {
	apiError := &APIError{StatusCode: http.StatusUnauthorized, Message: "invalid api key"}
	assert.Contains(t, apiError.Error(), "invalid api key")

	// Empty message falls back to the HTTP status text.
	apiError = &APIError{StatusCode: http.StatusForbidden}
	assert.Contains(t, apiError.Error(), http.StatusText(http.StatusForbidden))
}

func TestHandleAPISuccessResponse(t *testing.T) {
	type tokenBody struct {
		Token     string `json:"token" xml:"token"`
		ExpiresAt int64  `json:"expires_at" xml:"expires_at"`
	}

	tests := []struct {
		name        string
		contentType string
		body        string
		expectError bool
		expected    tokenBody
	}{
		{
			name:        "JSON success body",
			contentType: "application/json; charset=utf-8",
			body:        `{"token": "tok1", "expires_at": 1700000000}`,
			expected:    tokenBody{Token: "tok1", ExpiresAt: 1700000000},
		},
		{
			name:        "XML success body",
			contentType: "application/xml",
			body:        `<session><token>tok1</token><expires_at>1700000000</expires_at></session>`,
			expected:    tokenBody{Token: "tok1", ExpiresAt: 1700000000},
		},
		{
			name:        "unsupported content type",
			contentType: "text/csv",
			body:        "token,expires_at",
			expectError: true,
		},
		{
			name:        "malformed JSON",
			contentType: "application/json",
			body:        `{"token": `,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := &http.Response{
				StatusCode: http.StatusOK,
				Header:     http.Header{"Content-Type": []string{tt.contentType}},
				Body:       newBodyReader(tt.body),
			}

			var out tokenBody
			err := HandleAPISuccessResponse(resp, &out, logger.NewNopLogger())

			if tt.expectError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, out)
			}
		})
	}
}

func newBodyReader(body string) *readCloser {
	return &readCloser{Reader: strings.NewReader(body)}
}

type readCloser struct {
	*strings.Reader
}

func (r *readCloser) Close() error { return nil }
