// connector/connector.go
/* The connector package is the session core of the streaming client. A Connector
guarantees a valid short-lived token is stored before the transport connects, and keeps
that token fresh in the background for the lifetime of the session by re-arming a single
refresh timer at a fraction (the delay buffer) of each token's remaining lifetime.
The wire-level connection itself belongs to the injected TransportClient. */
package connector

import (
	"context"
	"sync"
	"time"

	"github.com/deploymenttheory/go-api-stream-client/logger"
	"github.com/deploymenttheory/go-api-stream-client/scheduler"
	"github.com/deploymenttheory/go-api-stream-client/tokenstore"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// refreshKey is the singleflight key: one connector, at most one in-flight exchange.
const refreshKey = "refresh"

// Connector orchestrates the token store, the refresh scheduler and the transport.
type Connector struct {
	// Private
	apiKey      string
	delayBuffer float64
	transport   TransportClient
	store       tokenstore.Store
	scheduler   *scheduler.RefreshScheduler
	logger      logger.Logger

	// group deduplicates concurrent token fetches: all concurrent callers share the
	// result of a single exchange, and the in-flight slot is cleared on success and
	// failure alike so the next call can retry.
	group singleflight.Group

	lock      sync.Mutex
	scheduled bool // consumed by the first fresh-token read; refreshes always re-arm
}

// Connect obtains a valid token, stores it, and opens the transport connection.
// When no token can be obtained it returns a TokenAcquisitionError and the transport
// is never touched: connecting without a valid token is meaningless.
func (c *Connector) Connect(ctx context.Context) error {
	token, err := c.GetToken(ctx)
	if err != nil {
		c.logger.Error("Failed to obtain token for connect", zap.Error(err))
		return err
	}

	c.logger.Debug("Connecting transport", zap.Time("Token Expiry", token.ExpiresAt))
	return c.transport.Connect(ctx)
}

// Reconnect delegates directly to the transport without re-checking token freshness.
// The background refresh is expected to have kept the stored token current, and the
// transport reads the store itself on this path. Connect re-validates, Reconnect does
// not; the two paths are intentionally different.
func (c *Connector) Reconnect(ctx context.Context) error {
	c.logger.Debug("Reconnecting transport")
	return c.transport.Reconnect(ctx)
}

// Disconnect closes the transport connection. The refresh timer stays armed so a later
// Connect or Reconnect finds a fresh token already in the store.
func (c *Connector) Disconnect(ctx context.Context) error {
	c.logger.Debug("Disconnecting transport")
	return c.transport.Disconnect(ctx)
}

// GetToken returns a valid token, fetching a new one when the store is empty or the
// stored token's expiry has passed. On the very first fresh-token read of this
// connector's lifetime it also arms the refresh timer; later reads return the stored
// token without touching the scheduler, which the refresh path keeps re-arming.
func (c *Connector) GetToken(ctx context.Context) (tokenstore.TokenInfo, error) {
	token, ok := c.store.Get(ctx)
	if !ok || token.IsExpiring() {
		c.logger.Debug("Stored token absent or expiring, fetching a new one", zap.Bool("Present", ok))
		return c.RefreshToken(ctx)
	}

	c.lock.Lock()
	firstRead := !c.scheduled
	c.scheduled = true
	c.lock.Unlock()

	if firstRead {
		c.armRefreshTimer(token)
	}

	return token, nil
}

// RefreshToken exchanges the API key for a new token, stores it, and re-arms the refresh
// timer. Concurrent calls perform exactly one exchange and all receive its result.
// Exchange failures are returned as a TokenAcquisitionError; the connector does not
// retry on its own, the next scheduled refresh or explicit Connect call is the retry path.
func (c *Connector) RefreshToken(ctx context.Context) (tokenstore.TokenInfo, error) {
	result, err, shared := c.group.Do(refreshKey, func() (interface{}, error) {
		token, err := c.transport.GetNewAPIToken(ctx, c.apiKey)
		if err != nil {
			return nil, &TokenAcquisitionError{Err: err}
		}

		c.store.Set(ctx, token)
		c.armRefreshTimer(token)

		c.logger.Info("Token obtained successfully",
			zap.Time("Expiry", token.ExpiresAt),
			zap.Duration("Duration", time.Until(token.ExpiresAt)),
		)
		return token, nil
	})

	if err != nil {
		return tokenstore.TokenInfo{}, err
	}

	if shared {
		c.logger.Debug("Joined in-flight token fetch")
	}

	return result.(tokenstore.TokenInfo), nil
}

// Close cancels any armed refresh timer. The connector performs no further background
// work after Close; the transport connection, if open, is the caller's to disconnect.
func (c *Connector) Close() {
	c.scheduler.Stop()
	c.logger.Debug("Connector closed")
}

// armRefreshTimer schedules the next refresh at delayBuffer of the token's remaining
// lifetime. A token already past the buffer point yields a non-positive delay, which the
// scheduler treats as fire-as-soon-as-possible rather than skipping the refresh.
func (c *Connector) armRefreshTimer(token tokenstore.TokenInfo) {
	delay := time.Duration(float64(time.Until(token.ExpiresAt)) * c.delayBuffer)
	c.scheduler.ScheduleNextRefresh(delay)

	c.lock.Lock()
	c.scheduled = true
	c.lock.Unlock()
}

// backgroundRefresh is the scheduler callback. No caller awaits a timer-triggered
// refresh, so failures surface through the log only. A failed refresh arms no new
// timer; the next explicit GetToken or Connect call retries and re-arms.
func (c *Connector) backgroundRefresh() {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultRefreshTimeout)
	defer cancel()

	if _, err := c.RefreshToken(ctx); err != nil {
		c.logger.Warn("Background token refresh failed", zap.Error(err))
	}
}
