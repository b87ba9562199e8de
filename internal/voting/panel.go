package voting

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/b0ase/path402/apps/baguette/internal/metrics"
	"github.com/b0ase/path402/apps/baguette/internal/wallet"
	"go.uber.org/zap"
)

// User-facing notices.
const (
	NoticeInstallWallet = "Please install a wallet to use this feature"
	NoticeConnectFirst  = "Please connect your wallet first"
)

var (
	ErrNoProvider     = errors.New("no wallet provider")
	ErrNotConnected   = errors.New("wallet not connected")
	ErrBusy           = errors.New("wallet request already in progress")
	ErrUnknownCharity = errors.New("unknown charity")
	ErrConnectFailed  = errors.New("wallet connection failed")
	ErrVoteFailed     = errors.New("vote failed")
)

// Notice returns the message shown to the user for err, or "" when the
// error carries none.
func Notice(err error) string {
	switch {
	case errors.Is(err, ErrNoProvider):
		return NoticeInstallWallet
	case errors.Is(err, ErrNotConnected):
		return NoticeConnectFirst
	}
	return ""
}

// ConnState is the wallet connection state.
type ConnState int

const (
	Disconnected ConnState = iota
	Connecting
	Connected
)

func (s ConnState) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	default:
		return "disconnected"
	}
}

func (s ConnState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Status is a point-in-time copy of the panel state.
type Status struct {
	State       ConnState `json:"state"`
	HasProvider bool      `json:"hasProvider"`
	Address     string    `json:"address,omitempty"`
	Short       string    `json:"short,omitempty"`
	Selected    int       `json:"selected,omitempty"` // charity id, 0 when none
	Busy        bool      `json:"busy"`
}

func (s Status) Connected() bool { return s.State == Connected }

// ShortAddress abbreviates addr to its first 6 and last 4 characters.
func ShortAddress(addr string) string {
	if len(addr) <= 10 {
		return addr
	}
	return addr[:6] + "..." + addr[len(addr)-4:]
}

// Panel tracks the wallet connection and the local vote selection.
// Provider calls run without the lock held; the Connecting state and the
// voting flag reject overlapping requests with ErrBusy.
type Panel struct {
	provider wallet.Provider
	period   Period
	log      *zap.Logger

	mu       sync.Mutex
	state    ConnState
	address  string
	selected int
	voting   bool
}

// NewPanel creates a disconnected panel. provider may be nil when no
// wallet is available.
func NewPanel(provider wallet.Provider, period Period, log *zap.Logger) *Panel {
	if log == nil {
		log = zap.NewNop()
	}
	return &Panel{
		provider: provider,
		period:   period,
		log:      log.Named("voting"),
	}
}

func (p *Panel) Period() Period { return p.period }

// Status returns the current state.
func (p *Panel) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.statusLocked()
}

func (p *Panel) statusLocked() Status {
	return Status{
		State:       p.state,
		HasProvider: p.provider != nil,
		Address:     p.address,
		Short:       ShortAddress(p.address),
		Selected:    p.selected,
		Busy:        p.state == Connecting || p.voting,
	}
}

// CheckConnection adopts an account the provider already granted, without
// prompting. Errors are logged and leave the panel disconnected.
func (p *Panel) CheckConnection(ctx context.Context) {
	if p.provider == nil {
		return
	}
	accounts, err := p.provider.ListAccounts(ctx)
	if err != nil {
		p.log.Warn("check wallet connection", zap.Error(err))
		return
	}
	if len(accounts) == 0 {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == Disconnected {
		p.state = Connected
		p.address = accounts[0]
		p.log.Info("wallet already connected", zap.String("address", p.address))
	}
}

// Connect requests account access from the provider.
func (p *Panel) Connect(ctx context.Context) (Status, error) {
	if p.provider == nil {
		metrics.WalletConnects.WithLabelValues("absent").Inc()
		return p.Status(), ErrNoProvider
	}

	p.mu.Lock()
	switch {
	case p.state == Connected:
		st := p.statusLocked()
		p.mu.Unlock()
		return st, nil
	case p.state == Connecting || p.voting:
		st := p.statusLocked()
		p.mu.Unlock()
		return st, ErrBusy
	}
	p.state = Connecting
	p.mu.Unlock()

	accounts, err := p.provider.RequestAccounts(ctx)
	if err == nil && len(accounts) == 0 {
		err = errors.New("provider returned no accounts")
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.state = Disconnected
		p.log.Error("connect wallet", zap.Error(err))
		metrics.WalletConnects.WithLabelValues("error").Inc()
		return p.statusLocked(), fmt.Errorf("%w: %v", ErrConnectFailed, err)
	}
	p.state = Connected
	p.address = accounts[0]
	p.log.Info("wallet connected", zap.String("address", p.address))
	metrics.WalletConnects.WithLabelValues("success").Inc()
	return p.statusLocked(), nil
}

// Vote marks id as the selected charity. The selection is local only.
// Voting again for the selected charity is a no-op.
func (p *Panel) Vote(ctx context.Context, id int) (Status, error) {
	p.mu.Lock()
	switch {
	case p.state == Connecting || p.voting:
		st := p.statusLocked()
		p.mu.Unlock()
		return st, ErrBusy
	case p.state != Connected:
		st := p.statusLocked()
		p.mu.Unlock()
		return st, ErrNotConnected
	}
	if _, ok := Lookup(id); !ok {
		st := p.statusLocked()
		p.mu.Unlock()
		return st, fmt.Errorf("%w: %d", ErrUnknownCharity, id)
	}
	if p.selected == id {
		st := p.statusLocked()
		p.mu.Unlock()
		return st, nil
	}
	p.voting = true
	address := p.address
	p.mu.Unlock()

	sig, err := p.sign(ctx, id, address)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.voting = false
	if err != nil {
		p.log.Error("vote", zap.Int("charity", id), zap.Error(err))
		return p.statusLocked(), fmt.Errorf("%w: %v", ErrVoteFailed, err)
	}
	p.selected = id
	p.log.Info("vote selected",
		zap.Int("charity", id),
		zap.String("address", address),
		zap.Int("sig_len", len(sig)))
	metrics.VotesSelected.WithLabelValues(strconv.Itoa(id)).Inc()
	return p.statusLocked(), nil
}

// sign gets the provider's signer and signs the ballot. The signature is
// not submitted anywhere.
func (p *Panel) sign(ctx context.Context, id int, address string) ([]byte, error) {
	signer, err := p.provider.Signer(ctx)
	if err != nil {
		return nil, err
	}
	return signer.Sign(Ballot(id, address))
}

// Ballot is the message signed for a vote.
func Ballot(id int, address string) []byte {
	return []byte("baguette-vote:" + strconv.Itoa(id) + ":" + address)
}
