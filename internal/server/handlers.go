package server

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"gopkg.in/yaml.v3"

	"github.com/keypoint/keypointer/internal/geometry"
	"github.com/keypoint/keypointer/internal/output"
	"github.com/keypoint/keypointer/internal/platform"
	"github.com/keypoint/keypointer/internal/pointer"
)

// stringParam extracts a string parameter with a default.
func stringParam(params map[string]interface{}, key, def string) string {
	if v, ok := params[key].(string); ok {
		return v
	}
	return def
}

// intParam extracts an int parameter with a default. JSON numbers arrive as
// float64.
func intParam(params map[string]interface{}, key string, def int) int {
	if v, ok := params[key].(float64); ok {
		return int(v)
	}
	return def
}

// boolParam extracts a bool parameter with a default.
func boolParam(params map[string]interface{}, key string, def bool) bool {
	if v, ok := params[key].(bool); ok {
		return v
	}
	return def
}

func toYAML(v interface{}) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(b)
}

func (s *Server) checkControl() error {
	if s.perms == nil {
		return nil
	}
	return s.perms.CheckInputControl()
}

func (s *Server) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.checkControl(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	params := request.GetArguments()
	target := geometry.Position{
		X:      intParam(params, "x", 0),
		Y:      intParam(params, "y", 0),
		Screen: intParam(params, "screen", 0),
	}
	glide := boolParam(params, "glide", false)

	if err := s.actor.Do(ctx, pointer.MoveTo{Pos: target, Glide: glide}); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(toYAML(s.positionResult())), nil
}

func (s *Server) handleClick(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.checkControl(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	params := request.GetArguments()
	button, err := platform.ParseMouseButton(stringParam(params, "button", "left"))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	count := intParam(params, "count", 1)

	if _, hasX := params["x"]; hasX {
		target := geometry.Position{X: intParam(params, "x", 0), Y: intParam(params, "y", 0)}
		if err := s.actor.Do(ctx, pointer.MoveTo{Pos: target}); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}
	if err := s.actor.Do(ctx, pointer.Click{Button: button, Count: count}); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(toYAML(s.positionResult())), nil
}

func (s *Server) handleScroll(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.checkControl(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	params := request.GetArguments()
	dx := intParam(params, "dx", 0)
	dy := intParam(params, "dy", 0)
	if dx == 0 && dy == 0 {
		return mcp.NewToolResultError("dx and dy are both zero, nothing to scroll"), nil
	}
	if err := s.actor.Do(ctx, pointer.Scroll{Dx: dx, Dy: dy}); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("ok"), nil
}

func (s *Server) handlePosition(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(toYAML(s.positionResult())), nil
}

func (s *Server) handleScreens(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	s.topoMu.Lock()
	defer s.topoMu.Unlock()
	if boolParam(params, "refresh", false) {
		if err := s.topo.Refresh(); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}
	res := output.ScreensResult{Screens: s.topo.Displays(), Union: s.topo.Union()}
	return mcp.NewToolResultText(toYAML(res)), nil
}

func (s *Server) handleGrid(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	cfg := s.cfg.Snapshot.Grid
	cfg.Rows = intParam(params, "rows", cfg.Rows)
	cfg.Columns = intParam(params, "columns", cfg.Columns)
	spanAll := boolParam(params, "span_all", cfg.SpanAll)

	s.topoMu.Lock()
	var bounds geometry.Bounds
	if spanAll {
		bounds = s.topo.Union()
	} else if d, ok := s.topo.ByOrdinal(intParam(params, "screen", 1)); ok {
		bounds = d.Bounds
	} else {
		bounds = s.topo.Primary().Bounds
	}
	s.topoMu.Unlock()

	grid, err := geometry.NewGrid(cfg, bounds)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res := output.GridResult{Rows: cfg.Rows, Columns: cfg.Columns, Bounds: bounds, Cells: grid.Cells()}
	return mcp.NewToolResultText(toYAML(res)), nil
}

func (s *Server) positionResult() output.PositionResult {
	p, known := s.actor.Position()
	if !known {
		return output.PositionResult{}
	}
	return output.PositionResult{X: p.X, Y: p.Y, Screen: s.topo.At(p).Ordinal}
}
