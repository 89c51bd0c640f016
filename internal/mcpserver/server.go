// Package mcpserver exposes pack and zoom as Model Context Protocol
// tools over stdio, so coding assistants can pull bounded repository
// context on demand.
package mcpserver

// Implementation Plan:
// 1. Server struct wrapping the engine and a TTL response cache
// 2. NewServer - creates MCP server, registers tools
// 3. Serve - stdio transport with graceful shutdown
// 4. Repeated identical tool calls are served from the cache

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/maypok86/otter"

	"github.com/mvp-joe/codescope/internal/config"
	"github.com/mvp-joe/codescope/internal/engine"
)

const (
	serverName    = "codescope-mcp"
	serverVersion = "1.0.0"

	cacheCapacity = 256
	cacheTTL      = 30 * time.Second
)

// Server manages the MCP server lifecycle.
type Server struct {
	rootDir string
	cfg     *config.Config
	cache   otter.Cache[string, string]
	mcp     *server.MCPServer
}

// NewServer creates an MCP server rooted at rootDir. A nil config uses
// defaults.
func NewServer(rootDir string, cfg *config.Config) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	cache, err := otter.MustBuilder[string, string](cacheCapacity).
		WithTTL(cacheTTL).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to create response cache: %w", err)
	}

	mcpServer := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(true),
	)

	s := &Server{
		rootDir: rootDir,
		cfg:     cfg,
		cache:   cache,
		mcp:     mcpServer,
	}

	AddPackTool(mcpServer, s)
	AddZoomTool(mcpServer, s)
	return s, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown.
func (s *Server) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting MCP server on stdio...")
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("MCP server error: %w", err)
		}
	}()

	select {
	case <-sigCh:
		log.Printf("Received shutdown signal, stopping gracefully...")
		cancel()
		return nil
	case err := <-errCh:
		cancel()
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close releases all resources.
func (s *Server) Close() error {
	s.cache.Close()
	return nil
}

// newEngine builds an engine over a copy of the configuration with
// per-call overrides applied.
func (s *Server) newEngine(override func(cfg *config.Config)) (*engine.Engine, error) {
	cfg := *s.cfg
	if override != nil {
		override(&cfg)
	}
	return engine.New(s.rootDir, &cfg)
}
