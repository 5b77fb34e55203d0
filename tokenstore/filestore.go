// tokenstore/filestore.go
package tokenstore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/deploymenttheory/go-api-stream-client/logger"
	"go.uber.org/zap"
)

// storedToken is the on-disk representation of a TokenInfo. Expiry is persisted as
// seconds since epoch so the file is usable by non-Go tooling.
type storedToken struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
}

// FileStore persists the current token as a JSON document at a fixed path, so a restarted
// process can resume with a still-valid token instead of exchanging the API key again.
// Read or write failures are logged and reported as an absent token.
type FileStore struct {
	path   string
	lock   sync.Mutex
	logger logger.Logger
}

// NewFileStore creates a file-backed token store writing to the given path.
func NewFileStore(path string, log logger.Logger) *FileStore {
	return &FileStore{
		path:   path,
		logger: log,
	}
}

// Get reads and decodes the token file. A missing file is an empty store, not an error.
func (s *FileStore) Get(ctx context.Context) (TokenInfo, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("Failed to read token file", zap.String("Path", s.path), zap.Error(err))
		}
		return TokenInfo{}, false
	}

	var stored storedToken
	if err := json.Unmarshal(data, &stored); err != nil {
		s.logger.Warn("Failed to decode token file", zap.String("Path", s.path), zap.Error(err))
		return TokenInfo{}, false
	}

	return TokenInfo{
		Token:     stored.Token,
		ExpiresAt: time.Unix(stored.ExpiresAt, 0),
	}, true
}

// Set encodes the token and writes it with owner-only permissions. The parent directory
// is created if needed.
func (s *FileStore) Set(ctx context.Context, token TokenInfo) {
	s.lock.Lock()
	defer s.lock.Unlock()

	stored := storedToken{
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt.Unix(),
	}

	data, err := json.Marshal(stored)
	if err != nil {
		s.logger.Warn("Failed to encode token for file store", zap.Error(err))
		return
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		s.logger.Warn("Failed to create token file directory", zap.String("Path", s.path), zap.Error(err))
		return
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		s.logger.Warn("Failed to write token file", zap.String("Path", s.path), zap.Error(err))
	}
}
