// connector/transport.go
package connector

import (
	"context"

	"github.com/deploymenttheory/go-api-stream-client/tokenstore"
)

// TransportClient is the collaborator owning the actual streaming connection and the
// token-exchange call. The connector never opens sockets or frames messages itself; it
// only guarantees a valid token is stored before Connect and kept fresh afterwards.
type TransportClient interface {
	// Connect opens the streaming connection. The connector calls this only after a
	// valid token has been stored.
	Connect(ctx context.Context) error

	// Reconnect re-establishes a previously opened connection. The transport reads the
	// current token from the store it received via SetTokenStorage.
	Reconnect(ctx context.Context) error

	// Disconnect closes the streaming connection.
	Disconnect(ctx context.Context) error

	// GetNewAPIToken exchanges the API key for a fresh short-lived token.
	GetNewAPIToken(ctx context.Context, apiKey string) (tokenstore.TokenInfo, error)

	// SetTokenStorage hands the transport the token store so it can read tokens for its
	// own reconnection needs.
	SetTokenStorage(store tokenstore.Store)
}
