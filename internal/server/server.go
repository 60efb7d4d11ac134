// Package server exposes pointer control as MCP tools, so agents can move,
// click, and scroll without shelling out to the CLI.
package server

import (
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/keypoint/keypointer/internal/config"
	"github.com/keypoint/keypointer/internal/platform"
	"github.com/keypoint/keypointer/internal/pointer"
	"github.com/keypoint/keypointer/internal/screens"
	"github.com/keypoint/keypointer/internal/version"
)

// Config holds MCP server configuration.
type Config struct {
	Transport string
	Port      int
	Snapshot  config.Snapshot
}

// Server wraps the MCP server with the pointer actor and screen topology.
// Tool calls are concurrent producers; the actor serializes the device.
type Server struct {
	cfg   Config
	actor *pointer.Actor
	topo  *screens.Topology
	perms platform.Permissions

	topoMu sync.Mutex
	mcp    *mcpserver.MCPServer
}

// New creates an MCP server backed by the current platform provider.
func New(cfg Config) (*Server, error) {
	provider, err := platform.NewProvider()
	if err != nil {
		return nil, err
	}
	topo, err := screens.NewTopology(provider.Screens)
	if err != nil {
		return nil, fmt.Errorf("reading display topology: %w", err)
	}

	s := &Server{
		cfg:   cfg,
		topo:  topo,
		perms: provider.Permissions,
	}
	s.actor = pointer.NewActor(pointer.Options{
		OpenDevice: func() (platform.PointerDevice, error) { return provider.Pointer, nil },
		Clamp:      topo.Clamp,
		QueueSize:  cfg.Snapshot.QueueSize,
	})

	s.mcp = mcpserver.NewMCPServer("keypointer", version.Version)
	s.registerTools()
	return s, nil
}

// Serve starts the MCP server with the configured transport and blocks.
func (s *Server) Serve() error {
	defer s.actor.Close()
	switch s.cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", s.cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", s.cfg.Transport)
	}
}

func (s *Server) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("pointer_move",
			mcp.WithDescription("Move the pointer to absolute screen coordinates"),
			mcp.WithNumber("x", mcp.Description("Target X coordinate"), mcp.Required()),
			mcp.WithNumber("y", mcp.Description("Target Y coordinate"), mcp.Required()),
			mcp.WithNumber("screen", mcp.Description("Screen ordinal hint (1-based)")),
			mcp.WithBoolean("glide", mcp.Description("Animate the move instead of warping")),
		),
		s.handleMove,
	)

	s.mcp.AddTool(
		mcp.NewTool("pointer_click",
			mcp.WithDescription("Click at the current pointer position"),
			mcp.WithString("button", mcp.Description("Mouse button: left, right, middle")),
			mcp.WithNumber("count", mcp.Description("Click count: 1=single, 2=double, 3=triple")),
			mcp.WithNumber("x", mcp.Description("Move to X first")),
			mcp.WithNumber("y", mcp.Description("Move to Y first")),
		),
		s.handleClick,
	)

	s.mcp.AddTool(
		mcp.NewTool("pointer_scroll",
			mcp.WithDescription("Scroll at the current pointer position, in line units"),
			mcp.WithNumber("dx", mcp.Description("Horizontal amount, positive scrolls left")),
			mcp.WithNumber("dy", mcp.Description("Vertical amount, positive scrolls up")),
		),
		s.handleScroll,
	)

	s.mcp.AddTool(
		mcp.NewTool("pointer_position",
			mcp.WithDescription("Report the current pointer position"),
		),
		s.handlePosition,
	)

	s.mcp.AddTool(
		mcp.NewTool("screens_list",
			mcp.WithDescription("List connected displays with their virtual-desktop bounds"),
			mcp.WithBoolean("refresh", mcp.Description("Re-read the display topology first")),
		),
		s.handleScreens,
	)

	s.mcp.AddTool(
		mcp.NewTool("grid_cells",
			mcp.WithDescription("Compute the grid-mode cell layout: bounds, key combination, and center per cell"),
			mcp.WithNumber("rows", mcp.Description("Grid rows (default from config)")),
			mcp.WithNumber("columns", mcp.Description("Grid columns (default from config)")),
			mcp.WithNumber("screen", mcp.Description("Screen ordinal (default primary)")),
			mcp.WithBoolean("span_all", mcp.Description("Span all displays as one surface")),
		),
		s.handleGrid,
	)
}
