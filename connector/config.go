// connector/config.go
// Description: configuration surface and constructor for the Connector, following the
// config-struct-plus-build-function shape used across this codebase.
package connector

import (
	"errors"
	"fmt"
	"time"

	"github.com/deploymenttheory/go-api-stream-client/logger"
	"github.com/deploymenttheory/go-api-stream-client/scheduler"
	"github.com/deploymenttheory/go-api-stream-client/tokenstore"
	"go.uber.org/zap"
)

const (
	// DefaultDelayBuffer schedules the proactive refresh at 90% of the token's
	// remaining lifetime.
	DefaultDelayBuffer = 0.9

	// DefaultRefreshTimeout bounds a timer-triggered token exchange, which has no
	// caller-supplied context to inherit a deadline from.
	DefaultRefreshTimeout = 30 * time.Second

	DefaultLogLevelString        = "LogLevelInfo"
	DefaultLogOutputFormatString = logger.LogOutputJSON
)

// ConnectorConfig holds the options for building a Connector.
type ConnectorConfig struct {
	// APIKey is the long-lived credential exchanged for short-lived tokens. Required.
	APIKey string

	// Transport owns the streaming connection and the token-exchange call. Required.
	Transport TransportClient

	// TokenStorage holds the current token. Defaults to a fresh in-memory store scoped
	// to this connector; supply a FileStore or RedisStore to share or persist tokens.
	// The caller keeps ownership of an injected store.
	TokenStorage tokenstore.Store

	// DelayBuffer is the fraction of remaining token lifetime to wait before refreshing.
	// Defaults to DefaultDelayBuffer; must be within (0, 1].
	DelayBuffer float64

	// Log
	LogLevel        string
	LogOutputFormat string

	// Logger overrides the built logger when set. Useful for tests and for embedding
	// applications with their own logging setup.
	Logger logger.Logger
}

// BuildConnector creates a new Connector with the provided configuration.
func BuildConnector(config ConnectorConfig) (*Connector, error) {

	if err := validateConnectorConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log := config.Logger
	if log == nil {
		log = logger.BuildLogger(logger.ParseLogLevelFromString(config.LogLevel), config.LogOutputFormat)
	}

	store := config.TokenStorage
	if store == nil {
		store = tokenstore.NewMemoryStore()
	}

	connector := &Connector{
		apiKey:      config.APIKey,
		delayBuffer: config.DelayBuffer,
		transport:   config.Transport,
		store:       store,
		logger:      log,
	}
	connector.scheduler = scheduler.NewRefreshScheduler(connector.backgroundRefresh, log)

	// The transport reads tokens from the same store for its own reconnection needs.
	config.Transport.SetTokenStorage(store)

	log.Debug("New connector initialized",
		zap.Float64("Delay Buffer", config.DelayBuffer),
		zap.Bool("Injected Token Storage", config.TokenStorage != nil),
		zap.String("Logging Level", config.LogLevel),
		zap.String("Log Encoding Format", config.LogOutputFormat),
	)

	return connector, nil
}

// validateConnectorConfig checks required fields and fills defaults in place.
func validateConnectorConfig(config *ConnectorConfig) error {
	if config.APIKey == "" {
		return errors.New("no api key supplied, please see documentation")
	}

	if config.Transport == nil {
		return errors.New("no transport client supplied, please see documentation")
	}

	if config.DelayBuffer == 0 {
		config.DelayBuffer = DefaultDelayBuffer
	}
	if config.DelayBuffer < 0 || config.DelayBuffer > 1 {
		return fmt.Errorf("delay buffer must be within (0, 1], got: %v", config.DelayBuffer)
	}

	if config.LogLevel == "" {
		config.LogLevel = DefaultLogLevelString
	}
	if config.LogOutputFormat == "" {
		config.LogOutputFormat = DefaultLogOutputFormatString
	}

	return nil
}
