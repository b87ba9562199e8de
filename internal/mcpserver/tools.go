package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/b0ase/path402/apps/baguette/internal/market"
	"github.com/b0ase/path402/apps/baguette/internal/view"
	"github.com/b0ase/path402/apps/baguette/internal/voting"
)

// --- Input types ---

type emptyInput struct{}

type holdersInput struct {
	Token string `json:"token,omitempty" jsonschema:"Catguette or Doguette (empty = both)"`
}

type voteInput struct {
	CharityID int `json:"charity_id" jsonschema:"id of the charity to vote for"`
}

// registerTools adds all baguette MCP tools to the server.
func (s *MCPServer) registerTools() {
	// Read-only tools

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "baguette_dashboard",
		Description: "Token stats for Catguette and Doguette with volume dominance",
	}, s.handleDashboard)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "baguette_holders",
		Description: "Top holders per token",
	}, s.handleHolders)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "baguette_charities",
		Description: "Charities with vote tallies and the current voting period",
	}, s.handleCharities)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "baguette_wallet",
		Description: "Wallet connection state and selected charity",
	}, s.handleWallet)

	// Write tools

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "baguette_wallet_connect",
		Description: "Request account access from the configured wallet",
	}, s.handleWalletConnect)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "baguette_vote",
		Description: "Select a charity to vote for (local only, nothing is submitted on-chain)",
	}, s.handleVote)
}

// --- Handlers ---

// load runs one dashboard fetch.
func (s *MCPServer) load(ctx context.Context) (*view.Dashboard, error) {
	d := view.New()
	if err := d.Load(ctx, s.source); err != nil {
		s.log.Warn("dashboard fetch failed", zap.Error(err))
		return d, err
	}
	return d, nil
}

func (s *MCPServer) handleDashboard(ctx context.Context, _ *mcp.CallToolRequest, _ emptyInput) (*mcp.CallToolResult, any, error) {
	d, err := s.load(ctx)
	if err != nil {
		return errResult(d.Err()), nil, nil
	}
	data := d.Data()
	cat, dog := view.FormatDominance(d.Dominance())

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", view.Title)
	fmt.Fprintf(&b, "**Source:** %s\n\n", s.daemon.SourceKind())

	fmt.Fprintf(&b, "## Faction Dominance\n")
	fmt.Fprintf(&b, "- %s: %s\n", market.Catguette, cat)
	fmt.Fprintf(&b, "- %s: %s\n\n", market.Doguette, dog)

	fmt.Fprintf(&b, "| Token | Price | Volume | Holders | Market Cap |\n")
	fmt.Fprintf(&b, "|-------|-------|--------|---------|------------|\n")
	for _, name := range []string{market.Catguette, market.Doguette} {
		t, _ := data.Token(name)
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			name, view.FormatPrice(t.Price), view.FormatVolume(t.Volume),
			view.FormatCount(t.Holders), view.FormatVolume(t.MarketCap))
	}

	fmt.Fprintf(&b, "\n## Price History\n")
	for _, name := range []string{market.Catguette, market.Doguette} {
		t, _ := data.Token(name)
		points := make([]string, 0, len(t.PriceHistory))
		for _, p := range t.PriceHistory {
			points = append(points, fmt.Sprintf("%s %s", p.Date, view.FormatPrice(p.Price)))
		}
		fmt.Fprintf(&b, "- %s: %s\n", name, strings.Join(points, ", "))
	}

	return textResult(b.String()), nil, nil
}

func (s *MCPServer) handleHolders(ctx context.Context, _ *mcp.CallToolRequest, input holdersInput) (*mcp.CallToolResult, any, error) {
	names := []string{market.Catguette, market.Doguette}
	if input.Token != "" {
		names = nil
		for _, n := range []string{market.Catguette, market.Doguette} {
			if strings.EqualFold(n, input.Token) {
				names = []string{n}
			}
		}
		if names == nil {
			return errResult(fmt.Sprintf("unknown token %q", input.Token)), nil, nil
		}
	}

	d, err := s.load(ctx)
	if err != nil {
		return errResult(d.Err()), nil, nil
	}

	var b strings.Builder
	for _, name := range names {
		t, _ := d.Data().Token(name)
		fmt.Fprintf(&b, "# %s Top Holders\n\n", name)
		if len(t.TopHolders) == 0 {
			fmt.Fprintf(&b, "No holders.\n\n")
			continue
		}
		fmt.Fprintf(&b, "| # | Address | Amount |\n")
		fmt.Fprintf(&b, "|---|---------|--------|\n")
		for i, h := range t.TopHolders {
			fmt.Fprintf(&b, "| %d | `%s` | %s |\n", i+1, h.Address, view.FormatAmount(h.Amount))
		}
		fmt.Fprintf(&b, "\n")
	}

	return textResult(b.String()), nil, nil
}

func (s *MCPServer) handleCharities(_ context.Context, _ *mcp.CallToolRequest, _ emptyInput) (*mcp.CallToolResult, any, error) {
	list := voting.Charities()
	total := voting.TotalVotes(list)
	st := s.panel.Status()
	period := s.panel.Period()

	var b strings.Builder
	fmt.Fprintf(&b, "# Charity Voting\n\n")
	fmt.Fprintf(&b, "| ID | Charity | Category | Votes | Share |\n")
	fmt.Fprintf(&b, "|----|---------|----------|-------|-------|\n")
	for _, c := range list {
		name := c.Name
		if st.Selected == c.ID {
			name += " (voted)"
		}
		fmt.Fprintf(&b, "| %d | %s | %s | %s | %s%% |\n",
			c.ID, name, c.Category, view.FormatCount(c.Votes),
			voting.FormatPercentage(voting.Percentage(c.Votes, total)))
	}

	fmt.Fprintf(&b, "\n## Current Voting Period\n")
	fmt.Fprintf(&b, "- Total votes: %s\n", view.FormatCount(total))
	fmt.Fprintf(&b, "- Pool amount: %s\n", period.PoolAmount)
	fmt.Fprintf(&b, "- Voting ends: %s\n", period.EndsAt)
	fmt.Fprintf(&b, "- Quarter: %s\n", period.Quarter)

	return textResult(b.String()), nil, nil
}

func (s *MCPServer) handleWallet(_ context.Context, _ *mcp.CallToolRequest, _ emptyInput) (*mcp.CallToolResult, any, error) {
	return textResult(walletText(s.panel.Status())), nil, nil
}

func walletText(st voting.Status) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Wallet\n\n")
	if !st.HasProvider {
		fmt.Fprintf(&b, "%s.\n", voting.NoticeInstallWallet)
		return b.String()
	}
	fmt.Fprintf(&b, "- **State:** %s\n", st.State)
	if st.Address != "" {
		fmt.Fprintf(&b, "- **Address:** `%s`\n", st.Address)
	}
	if c, ok := voting.Lookup(st.Selected); ok {
		fmt.Fprintf(&b, "- **Voted for:** %s\n", c.Name)
	}
	return b.String()
}

func (s *MCPServer) handleWalletConnect(ctx context.Context, _ *mcp.CallToolRequest, _ emptyInput) (*mcp.CallToolResult, any, error) {
	st, err := s.panel.Connect(ctx)
	if err != nil {
		return errResult(panelError("connect", err)), nil, nil
	}
	return textResult(fmt.Sprintf("Wallet connected.\n\n- **Address:** `%s`", st.Address)), nil, nil
}

func (s *MCPServer) handleVote(ctx context.Context, _ *mcp.CallToolRequest, input voteInput) (*mcp.CallToolResult, any, error) {
	if input.CharityID == 0 {
		return errResult("charity_id is required"), nil, nil
	}
	if _, err := s.panel.Vote(ctx, input.CharityID); err != nil {
		return errResult(panelError("vote", err)), nil, nil
	}
	c, _ := voting.Lookup(input.CharityID)
	return textResult(fmt.Sprintf("Vote recorded locally for **%s**.", c.Name)), nil, nil
}

// panelError turns a panel error into the text shown to the caller.
func panelError(op string, err error) string {
	if notice := voting.Notice(err); notice != "" {
		return notice
	}
	if errors.Is(err, voting.ErrBusy) || errors.Is(err, voting.ErrUnknownCharity) {
		return fmt.Sprintf("%s failed: %v", op, err)
	}
	return fmt.Sprintf("%s failed: wallet request failed", op)
}

// --- Helpers ---

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
		IsError: true,
	}
}
