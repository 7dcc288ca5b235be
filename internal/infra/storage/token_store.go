package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/atlas-it/atlas-agent/internal/impls"
)

var _ impls.TokenStore = (*FileTokenStore)(nil)

// FileTokenStore keeps the loopback API token in a single file. A token is
// generated on first use and reused afterwards.
type FileTokenStore struct {
	path string

	mu    sync.Mutex
	token string
}

func NewFileTokenStore(path string) *FileTokenStore {
	return &FileTokenStore{path: path}
}

// Path is the file holding the token.
func (s *FileTokenStore) Path() string {
	return s.path
}

func (s *FileTokenStore) Token(_ context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" {
		return s.token, nil
	}

	data, err := os.ReadFile(s.path)
	switch {
	case err == nil:
		if stored, err := uuid.Parse(strings.TrimSpace(string(data))); err == nil {
			s.token = stored.String()
			return s.token, nil
		}
	case !errors.Is(err, os.ErrNotExist):
		return "", fmt.Errorf("read token: %w", err)
	}

	token := uuid.NewString()
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return "", fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("persist token: %w", err)
	}
	s.token = token
	return token, nil
}
