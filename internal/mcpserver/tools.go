package mcpserver

// Implementation Plan:
// 1. AddPackTool / AddZoomTool - composable tool registrations
// 2. Handler factories capture the server for engine and cache access
// 3. Parse arguments from the MCP request map
// 4. Serve repeated identical calls from the TTL cache
// 5. Return serialized context as text (mcp-go convention)

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/codescope/internal/config"
	"github.com/mvp-joe/codescope/internal/zoom"
)

// AddPackTool registers the codescope_pack tool with an MCP server.
func AddPackTool(ms *server.MCPServer, s *Server) {
	tool := mcp.NewTool(
		"codescope_pack",
		mcp.WithDescription("Pack the repository into bounded LLM context. Files are rendered full, as signature skeletons, or dropped to fit the token budget. Skeletonized files carry ZOOM_AFFORDANCE comments naming the command that expands them."),
		mcp.WithString("budget",
			mcp.Description("Token budget with optional k/M suffix (e.g. '100k'). Empty for unlimited.")),
		mcp.WithString("format",
			mcp.Description("Output format: 'plusminus' (default), 'xml', or 'markdown'.")),
		mcp.WithString("skeleton",
			mcp.Description("Skeleton mode: 'auto' (default), 'always', or 'never'.")),
	)

	ms.AddTool(tool, createPackHandler(s))
}

// createPackHandler creates the handler function for codescope_pack.
func createPackHandler(s *Server) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			argsMap = map[string]interface{}{}
		}

		budgetArg, _ := argsMap["budget"].(string)
		formatArg, _ := argsMap["format"].(string)
		skeletonArg, _ := argsMap["skeleton"].(string)

		cacheKey := fmt.Sprintf("pack|%s|%s|%s", budgetArg, formatArg, skeletonArg)
		if cached, hit := s.cache.Get(cacheKey); hit {
			return mcp.NewToolResultText(cached), nil
		}

		eng, err := s.newEngine(func(cfg *config.Config) {
			if budgetArg != "" {
				cfg.Budget.Tokens = budgetArg
			}
			if formatArg != "" {
				cfg.Output.Format = formatArg
			}
			if skeletonArg != "" {
				cfg.Budget.Skeleton = skeletonArg
			}
		})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		result, err := eng.Pack(ctx)
		if err != nil {
			return nil, fmt.Errorf("pack failed: %w", err)
		}

		s.cache.Set(cacheKey, result.Output)
		return mcp.NewToolResultText(result.Output), nil
	}
}

// AddZoomTool registers the codescope_zoom tool with an MCP server.
func AddZoomTool(ms *server.MCPServer, s *Server) {
	tool := mcp.NewTool(
		"codescope_zoom",
		mcp.WithDescription("Expand a zoom target from packed context back into detail. Targets look like 'function=parse_args', 'class=HttpClient', 'module=auth' or 'file=src/main.rs:100-150'."),
		mcp.WithString("target",
			mcp.Required(),
			mcp.Description("Zoom target in type=value form.")),
		mcp.WithString("depth",
			mcp.Description("Detail level: 'signature', 'implementation' (default), or 'full'.")),
		mcp.WithNumber("budget",
			mcp.Description("Token budget for the zoomed content (default from config).")),
		mcp.WithBoolean("include_tests",
			mcp.Description("Also include matches in test files.")),
		mcp.WithNumber("context_lines",
			mcp.Description("Lines of surrounding context around the target.")),
	)

	ms.AddTool(tool, createZoomHandler(s))
}

// createZoomHandler creates the handler function for codescope_zoom.
func createZoomHandler(s *Server) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		targetArg, ok := argsMap["target"].(string)
		if !ok || targetArg == "" {
			return mcp.NewToolResultError("target parameter is required"), nil
		}

		target, err := zoom.ParseTarget(targetArg)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		zc := zoom.Config{Target: target}
		if depthArg, ok := argsMap["depth"].(string); ok && depthArg != "" {
			depth, ok := zoom.ParseDepth(depthArg)
			if !ok {
				return mcp.NewToolResultError(fmt.Sprintf("unknown zoom depth: %s", depthArg)), nil
			}
			zc.Depth = depth
		}
		if budgetArg, ok := argsMap["budget"].(float64); ok {
			zc.Budget = int(budgetArg)
		}
		if includeTests, ok := argsMap["include_tests"].(bool); ok {
			zc.IncludeTests = includeTests
		}
		if contextLines, ok := argsMap["context_lines"].(float64); ok {
			zc.ContextLines = int(contextLines)
		}

		cacheKey := fmt.Sprintf("zoom|%s|%s|%d|%t|%d", targetArg, zc.Depth, zc.Budget, zc.IncludeTests, zc.ContextLines)
		if cached, hit := s.cache.Get(cacheKey); hit {
			return mcp.NewToolResultText(cached), nil
		}

		eng, err := s.newEngine(nil)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		result, err := eng.Zoom(ctx, zc)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		s.cache.Set(cacheKey, result.Output)
		return mcp.NewToolResultText(result.Output), nil
	}
}
