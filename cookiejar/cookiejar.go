// cookiejar/cookiejar.go

/* The cookiejar package provides cookie handling for the token-exchange HTTP client:
initialization of a cookie jar and redaction of sensitive cookies before they reach
logs. Some streaming providers pin a session cookie during the exchange flow; the jar
keeps it across the request chain. */

package cookiejar

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"

	"github.com/deploymenttheory/go-api-stream-client/logger"
	"go.uber.org/zap"
)

// SetupCookieJar initializes the HTTP client with a cookie jar if enabled in the configuration.
func SetupCookieJar(client *http.Client, enableCookieJar bool, log logger.Logger) error {
	if enableCookieJar {
		jar, err := cookiejar.New(nil) // nil options use default options
		if err != nil {
			log.Error("Failed to create cookie jar", zap.Error(err))
			return fmt.Errorf("setupCookieJar failed: %w", err)
		}
		client.Jar = jar
	}
	return nil
}

// RedactSensitiveCookies redacts sensitive information from cookies.
// It takes a slice of *http.Cookie and returns a redacted slice of *http.Cookie.
func RedactSensitiveCookies(cookies []*http.Cookie) []*http.Cookie {
	// Cookie names whose values never belong in logs.
	sensitiveCookieNames := map[string]bool{
		"SessionID":    true,
		"AuthToken":    true,
		"access_token": true,
	}

	for _, cookie := range cookies {
		if sensitiveCookieNames[cookie.Name] {
			cookie.Value = "REDACTED"
		}
	}

	return cookies
}
