package voting

import (
	"bytes"
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/b0ase/path402/apps/baguette/internal/wallet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSigner struct{ addr string }

func (s fakeSigner) Address() string                  { return s.addr }
func (s fakeSigner) Sign(data []byte) ([]byte, error) { return append([]byte{0x30}, data...), nil }

// fakeProvider is a scriptable wallet.Provider. When gate is set,
// RequestAccounts blocks until it is closed.
type fakeProvider struct {
	mu         sync.Mutex
	accounts   []string
	granted    bool
	requestErr error
	listErr    error
	signerErr  error
	gate       chan struct{}
	entered    chan struct{}
	requests   int
	signers    int
}

func (f *fakeProvider) RequestAccounts(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	f.requests++
	gate, entered := f.gate, f.entered
	f.mu.Unlock()
	if entered != nil {
		close(entered)
	}
	if gate != nil {
		<-gate
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.requestErr != nil {
		return nil, f.requestErr
	}
	f.granted = true
	return f.accounts, nil
}

func (f *fakeProvider) ListAccounts(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	if !f.granted {
		return nil, nil
	}
	return f.accounts, nil
}

func (f *fakeProvider) Signer(ctx context.Context) (wallet.Signer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signers++
	if f.signerErr != nil {
		return nil, f.signerErr
	}
	return fakeSigner{addr: f.accounts[0]}, nil
}

const addr = "0x1234567890abcdef1234567890abcdef12345678"

func newConnected(t *testing.T) (*Panel, *fakeProvider) {
	t.Helper()
	fp := &fakeProvider{accounts: []string{addr}}
	p := NewPanel(fp, DefaultPeriod(), nil)
	_, err := p.Connect(context.Background())
	require.NoError(t, err)
	return p, fp
}

func TestTotalsAndPercentages(t *testing.T) {
	list := Charities()
	total := TotalVotes(list)
	assert.Equal(t, 6335, total)

	want := []string{"37.0", "29.8", "33.2"}
	sum := 0.0
	for i, c := range list {
		p := Percentage(c.Votes, total)
		sum += p
		assert.Equal(t, want[i], FormatPercentage(p), c.Name)
	}
	assert.InDelta(t, 100, sum, 1e-9)
}

func TestPercentage_ZeroTotal(t *testing.T) {
	assert.Equal(t, 0.0, Percentage(10, 0))
	assert.Equal(t, "0.0", FormatPercentage(Percentage(0, 0)))
	assert.False(t, math.IsNaN(Percentage(0, 0)))
}

func TestCharities_Copy(t *testing.T) {
	a := Charities()
	a[0].Votes = 1
	assert.Equal(t, 2345, Charities()[0].Votes)

	c, ok := Lookup(3)
	require.True(t, ok)
	assert.Equal(t, "Pet Food Bank", c.Name)
	_, ok = Lookup(99)
	assert.False(t, ok)
}

func TestShortAddress(t *testing.T) {
	assert.Equal(t, "0x1234...5678", ShortAddress(addr))
	assert.Equal(t, "short", ShortAddress("short"))
	assert.Equal(t, "", ShortAddress(""))
}

func TestConnect_NoProvider(t *testing.T) {
	p := NewPanel(nil, DefaultPeriod(), nil)
	st, err := p.Connect(context.Background())
	require.ErrorIs(t, err, ErrNoProvider)
	assert.Equal(t, NoticeInstallWallet, Notice(err))
	assert.Equal(t, Disconnected, st.State)
	assert.False(t, st.HasProvider)
}

func TestConnect_Success(t *testing.T) {
	p, fp := newConnected(t)
	st := p.Status()
	assert.Equal(t, Connected, st.State)
	assert.Equal(t, addr, st.Address)
	assert.Equal(t, "0x1234...5678", st.Short)

	// Already connected: no second prompt.
	_, err := p.Connect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, fp.requests)
}

func TestConnect_ProviderError(t *testing.T) {
	fp := &fakeProvider{accounts: []string{addr}, requestErr: errors.New("user rejected")}
	p := NewPanel(fp, DefaultPeriod(), nil)

	st, err := p.Connect(context.Background())
	require.ErrorIs(t, err, ErrConnectFailed)
	assert.Equal(t, Disconnected, st.State)
	assert.Empty(t, st.Address)
	assert.Empty(t, Notice(err))
}

func TestConnect_NoAccounts(t *testing.T) {
	p := NewPanel(&fakeProvider{}, DefaultPeriod(), nil)
	_, err := p.Connect(context.Background())
	require.ErrorIs(t, err, ErrConnectFailed)
	assert.Equal(t, Disconnected, p.Status().State)
}

func TestConnect_ConcurrentIsBusy(t *testing.T) {
	fp := &fakeProvider{
		accounts: []string{addr},
		gate:     make(chan struct{}),
		entered:  make(chan struct{}),
	}
	p := NewPanel(fp, DefaultPeriod(), nil)

	done := make(chan error, 1)
	go func() {
		_, err := p.Connect(context.Background())
		done <- err
	}()
	<-fp.entered

	st := p.Status()
	assert.Equal(t, Connecting, st.State)
	assert.True(t, st.Busy)

	_, err := p.Connect(context.Background())
	require.ErrorIs(t, err, ErrBusy)
	_, err = p.Vote(context.Background(), 1)
	require.ErrorIs(t, err, ErrBusy)

	close(fp.gate)
	require.NoError(t, <-done)
	assert.Equal(t, Connected, p.Status().State)
	assert.Equal(t, 1, fp.requests)
}

func TestCheckConnection(t *testing.T) {
	fp := &fakeProvider{accounts: []string{addr}}
	p := NewPanel(fp, DefaultPeriod(), nil)

	// Not yet granted: stays disconnected without prompting.
	p.CheckConnection(context.Background())
	assert.Equal(t, Disconnected, p.Status().State)
	assert.Equal(t, 0, fp.requests)

	fp.granted = true
	p.CheckConnection(context.Background())
	assert.Equal(t, Connected, p.Status().State)
	assert.Equal(t, addr, p.Status().Address)
}

func TestCheckConnection_Error(t *testing.T) {
	fp := &fakeProvider{accounts: []string{addr}, granted: true, listErr: errors.New("boom")}
	p := NewPanel(fp, DefaultPeriod(), nil)
	p.CheckConnection(context.Background())
	assert.Equal(t, Disconnected, p.Status().State)

	NewPanel(nil, DefaultPeriod(), nil).CheckConnection(context.Background())
}

func TestVote_NotConnectedIsNoop(t *testing.T) {
	fp := &fakeProvider{accounts: []string{addr}}
	p := NewPanel(fp, DefaultPeriod(), nil)
	before := p.Status()

	st, err := p.Vote(context.Background(), 1)
	require.ErrorIs(t, err, ErrNotConnected)
	assert.Equal(t, NoticeConnectFirst, Notice(err))
	assert.Equal(t, before, st)
	assert.Equal(t, before, p.Status())
	assert.Equal(t, 0, fp.signers)
}

func TestVote_Selects(t *testing.T) {
	p, fp := newConnected(t)

	st, err := p.Vote(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, st.Selected)
	assert.False(t, st.Busy)
	assert.Equal(t, 1, fp.signers)

	// Same charity again: no-op.
	_, err = p.Vote(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, 1, fp.signers)

	st, err = p.Vote(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, st.Selected)
}

func TestVote_UnknownCharity(t *testing.T) {
	p, _ := newConnected(t)
	_, err := p.Vote(context.Background(), 42)
	require.ErrorIs(t, err, ErrUnknownCharity)
	assert.Zero(t, p.Status().Selected)
}

func TestVote_SignerError(t *testing.T) {
	p, fp := newConnected(t)
	fp.signerErr = wallet.ErrReadOnly

	st, err := p.Vote(context.Background(), 1)
	require.ErrorIs(t, err, ErrVoteFailed)
	assert.Zero(t, st.Selected)
	assert.False(t, st.Busy)
	assert.Equal(t, Connected, st.State)
}

func render(t *testing.T, st Status) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Render(st, Charities(), DefaultPeriod()).Render(&buf))
	return buf.String()
}

func TestRender_Disconnected(t *testing.T) {
	html := render(t, Status{HasProvider: true})
	assert.Contains(t, html, "Connect Wallet")
	assert.Contains(t, html, "hold CATGUETTE or DOGUETTE")
	assert.Contains(t, html, "Votes: 2,345")
	assert.Contains(t, html, "37.0%")
	assert.Contains(t, html, "width: 29.8%")
	assert.Contains(t, html, "6,335")
	assert.Contains(t, html, "156.8 MATIC")
	assert.Contains(t, html, "March 31, 2025")
	assert.Contains(t, html, "Q1 2025")
	// Every vote button disabled.
	assert.Equal(t, 3, strings.Count(html, `data-action="vote" data-charity`))
	assert.Equal(t, 3, strings.Count(html, "disabled"))
}

func TestRender_ConnectedAndVoted(t *testing.T) {
	html := render(t, Status{State: Connected, HasProvider: true, Address: addr, Short: ShortAddress(addr), Selected: 1})
	assert.Contains(t, html, "Connected: 0x1234...5678")
	assert.Contains(t, html, "Your wallet is connected")
	assert.NotContains(t, html, "Connect Wallet")
	assert.Equal(t, 1, strings.Count(html, ">Voted<"))
	assert.Equal(t, 2, strings.Count(html, ">Vote<"))
	assert.Equal(t, 1, strings.Count(html, "disabled"))
}
