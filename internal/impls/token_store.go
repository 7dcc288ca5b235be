package impls

import "context"

// TokenStore keeps the shared secret that guards the local API.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	// Path tells local clients where to read the token from.
	Path() string
}
