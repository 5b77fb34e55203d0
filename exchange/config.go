// exchange/config.go
package exchange

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/deploymenttheory/go-api-stream-client/cookiejar"
	"github.com/deploymenttheory/go-api-stream-client/logger"
)

const (
	DefaultCustomTimeout         = 10 * time.Second
	DefaultLogLevelString        = "LogLevelInfo"
	DefaultLogOutputFormatString = logger.LogOutputJSON
)

// Client performs the token exchange against a fixed endpoint.
type Client struct {
	endpoint string
	http     *http.Client
	logger   logger.Logger
}

// ClientConfig holds the options for building an exchange Client.
type ClientConfig struct {
	// TokenEndpoint is the full URL of the provider's token-exchange endpoint. Required.
	TokenEndpoint string

	// CookieJarEnabled keeps provider session cookies across the exchange request chain.
	CookieJarEnabled bool

	// Misc
	CustomTimeout time.Duration

	// Log
	LogLevel        string
	LogOutputFormat string

	// Logger overrides the built logger when set.
	Logger logger.Logger
}

// BuildClient creates a new token-exchange client with the provided configuration.
func BuildClient(config ClientConfig) (*Client, error) {

	if err := validateClientConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log := config.Logger
	if log == nil {
		log = logger.BuildLogger(logger.ParseLogLevelFromString(config.LogLevel), config.LogOutputFormat)
	}

	httpClient := &http.Client{
		Timeout: config.CustomTimeout,
	}

	if err := cookiejar.SetupCookieJar(httpClient, config.CookieJarEnabled, log); err != nil {
		return nil, err
	}

	return &Client{
		endpoint: config.TokenEndpoint,
		http:     httpClient,
		logger:   log,
	}, nil
}

// validateClientConfig checks required fields and fills defaults in place.
func validateClientConfig(config *ClientConfig) error {
	if config.TokenEndpoint == "" {
		return errors.New("no token endpoint supplied, please see documentation")
	}

	parsed, err := url.Parse(config.TokenEndpoint)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid token endpoint: %s", config.TokenEndpoint)
	}

	if config.CustomTimeout == 0 {
		config.CustomTimeout = DefaultCustomTimeout
	}

	if config.LogLevel == "" {
		config.LogLevel = DefaultLogLevelString
	}
	if config.LogOutputFormat == "" {
		config.LogOutputFormat = DefaultLogOutputFormatString
	}

	return nil
}
