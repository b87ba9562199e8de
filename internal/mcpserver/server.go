package mcpserver

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/b0ase/path402/apps/baguette/internal/source"
	"github.com/b0ase/path402/apps/baguette/internal/voting"
)

// DaemonInfo provides read-only access to daemon state for MCP tools.
type DaemonInfo interface {
	InstanceID() string
	Uptime() time.Duration
	SourceKind() string
}

// MCPServer wraps the MCP protocol server with baguette tools.
type MCPServer struct {
	server *mcp.Server
	daemon DaemonInfo
	source source.Source
	panel  *voting.Panel
	log    *zap.Logger
}

// New creates an MCP server with all baguette tools registered.
func New(version string, daemon DaemonInfo, src source.Source, panel *voting.Panel, log *zap.Logger) *MCPServer {
	if log == nil {
		log = zap.NewNop()
	}
	s := &MCPServer{
		daemon: daemon,
		source: src,
		panel:  panel,
		log:    log.Named("mcp"),
		server: mcp.NewServer(
			&mcp.Implementation{
				Name:    "baguette",
				Version: version,
			},
			&mcp.ServerOptions{
				Instructions: "Catguette vs Doguette token dashboard. Provides tools to read token stats, top holders and charity tallies, and to connect the wallet and cast a local charity vote.",
			},
		),
	}
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio, blocking until the client disconnects.
func (s *MCPServer) Run(ctx context.Context) error {
	s.log.Info("MCP serving on stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
