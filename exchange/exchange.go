// exchange/exchange.go
/* The exchange package implements the HTTP token-exchange call: it POSTs the long-lived
API key to the provider's token endpoint and returns the short-lived TokenInfo the
streaming transport authenticates with. Transport implementations embed a Client to
satisfy the GetNewAPIToken part of the connector's TransportClient contract. */
package exchange

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/deploymenttheory/go-api-stream-client/response"
	"github.com/deploymenttheory/go-api-stream-client/tokenstore"
	"github.com/deploymenttheory/go-api-stream-client/version"
	"go.uber.org/zap"
)

// tokenRequest is the wire format of the exchange request body.
type tokenRequest struct {
	APIKey string `json:"api_key"`
}

// tokenResponse is the wire format of a successful exchange. Expiry is seconds since epoch.
type tokenResponse struct {
	Token     string `json:"token" xml:"token"`
	ExpiresAt int64  `json:"expires_at" xml:"expires_at"`
}

// GetNewAPIToken exchanges the API key for a fresh token. Non-2xx responses are returned
// as a *response.APIError carrying whatever detail the endpoint's error body provided.
func (c *Client) GetNewAPIToken(ctx context.Context, apiKey string) (tokenstore.TokenInfo, error) {
	body, err := json.Marshal(tokenRequest{APIKey: apiKey})
	if err != nil {
		return tokenstore.TokenInfo{}, fmt.Errorf("failed to encode token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		c.logger.Error("Failed to create token exchange request", zap.Error(err))
		return tokenstore.TokenInfo{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	c.logger.Debug("Attempting token exchange", zap.String("URL", c.endpoint))

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("Token exchange request failed", zap.Error(err))
		return tokenstore.TokenInfo{}, fmt.Errorf("token exchange request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return tokenstore.TokenInfo{}, response.HandleAPIErrorResponse(resp, c.logger)
	}

	var tokenResp tokenResponse
	if err := response.HandleAPISuccessResponse(resp, &tokenResp, c.logger); err != nil {
		return tokenstore.TokenInfo{}, err
	}

	if tokenResp.Token == "" {
		return tokenstore.TokenInfo{}, c.logger.Error("Token endpoint returned an empty token", zap.String("URL", c.endpoint))
	}

	token := tokenstore.TokenInfo{
		Token:     tokenResp.Token,
		ExpiresAt: time.Unix(tokenResp.ExpiresAt, 0),
	}

	c.logger.Info("Token obtained successfully",
		zap.Time("Expiry", token.ExpiresAt),
		zap.Duration("Duration", time.Until(token.ExpiresAt)),
	)

	return token, nil
}
