// Package wallet models the wallet provider the voting panel talks to:
// account access, account listing and a signer.
package wallet

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/bsv-blockchain/go-sdk/script"
	"go.uber.org/zap"
)

var (
	// ErrNoProvider means no wallet is configured.
	ErrNoProvider = errors.New("no wallet provider available")
	// ErrReadOnly is returned by Signer on a watch-only provider.
	ErrReadOnly = errors.New("wallet is watch-only")
	// ErrNotAuthorized is returned by Signer before account access was granted.
	ErrNotAuthorized = errors.New("account access not granted")
)

// Signer signs on behalf of one account.
type Signer interface {
	Address() string
	Sign(data []byte) ([]byte, error)
}

// Provider is the wallet capability. RequestAccounts asks for account
// access; ListAccounts reports accounts already granted and never prompts.
type Provider interface {
	RequestAccounts(ctx context.Context) ([]string, error)
	ListAccounts(ctx context.Context) ([]string, error)
	Signer(ctx context.Context) (Signer, error)
}

// KeyProvider serves a single local key.
type KeyProvider struct {
	w *Wallet

	mu         sync.Mutex
	authorized bool
}

func NewKeyProvider(w *Wallet) *KeyProvider {
	return &KeyProvider{w: w}
}

func (p *KeyProvider) RequestAccounts(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.Lock()
	p.authorized = true
	p.mu.Unlock()
	return []string{p.w.Address()}, nil
}

func (p *KeyProvider) ListAccounts(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.authorized {
		return nil, nil
	}
	return []string{p.w.Address()}, nil
}

func (p *KeyProvider) Signer(ctx context.Context) (Signer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.authorized {
		return nil, ErrNotAuthorized
	}
	return p.w, nil
}

// WatchProvider exposes a configured address for read-only lookup. It is
// treated as already granted.
type WatchProvider struct {
	address string
}

// NewWatchProvider validates addr as a P2PKH address.
func NewWatchProvider(addr string) (*WatchProvider, error) {
	if _, err := script.NewAddressFromString(addr); err != nil {
		return nil, fmt.Errorf("invalid address %q: %w", addr, err)
	}
	return &WatchProvider{address: addr}, nil
}

func (p *WatchProvider) RequestAccounts(ctx context.Context) ([]string, error) {
	return p.ListAccounts(ctx)
}

func (p *WatchProvider) ListAccounts(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return []string{p.address}, nil
}

func (p *WatchProvider) Signer(context.Context) (Signer, error) {
	return nil, ErrReadOnly
}

// FromConfig picks a provider: a WIF key wins over a watch-only address.
// With neither it returns ErrNoProvider.
func FromConfig(key, address string, log *zap.Logger) (Provider, error) {
	if key != "" {
		w, err := Load(key)
		if err != nil {
			return nil, err
		}
		if address != "" && address != w.Address() {
			log.Warn("configured address differs from key, using key address",
				zap.String("configured", address), zap.String("key_address", w.Address()))
		}
		log.Info("loaded signing key", zap.String("address", w.Address()))
		return NewKeyProvider(w), nil
	}
	if address != "" {
		p, err := NewWatchProvider(address)
		if err != nil {
			return nil, err
		}
		log.Info("watch-only wallet", zap.String("address", address))
		return p, nil
	}
	return nil, ErrNoProvider
}
