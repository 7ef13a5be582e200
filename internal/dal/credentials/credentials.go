package credentials

import (
	"context"
	"errors"
	"fmt"

	"github.com/okuafopa/order-core/internal/dal/interfaces/ikvrepo"
)

// tokenKey is the fixed storage key for the saved bearer token.
const tokenKey = "okuafopa_token"

// Provider supplies the saved bearer token for authenticated calls.
type Provider struct {
	kvRepo ikvrepo.IKVRepository
}

// NewProvider creates a new credential provider.
func NewProvider(kvRepo ikvrepo.IKVRepository) *Provider {
	return &Provider{
		kvRepo: kvRepo,
	}
}

// Token returns the saved token, or an empty string when none is saved.
func (p *Provider) Token(ctx context.Context) (string, error) {
	value, err := p.kvRepo.Get(ctx, tokenKey)
	if err != nil {
		if errors.Is(err, ikvrepo.ErrNotFound) {
			return "", nil
		}

		return "", fmt.Errorf("failed to load token: %w", err)
	}

	return string(value), nil
}

// Save stores the token durably.
func (p *Provider) Save(ctx context.Context, token string) error {
	if err := p.kvRepo.Set(ctx, tokenKey, []byte(token)); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	return nil
}

// Clear removes the saved token. Called when the session is invalidated.
func (p *Provider) Clear(ctx context.Context) error {
	if err := p.kvRepo.Delete(ctx, tokenKey); err != nil {
		return fmt.Errorf("failed to clear token: %w", err)
	}

	return nil
}
