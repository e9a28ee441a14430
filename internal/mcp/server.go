// ABOUTME: MCP server setup for the elevate workout tracker.
// ABOUTME: Wraps the MCP server with storage, catalog, routines and one live workout.
package mcp

import (
	"context"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/elevate/internal/auth"
	"github.com/harperreed/elevate/internal/catalog"
	"github.com/harperreed/elevate/internal/models"
	"github.com/harperreed/elevate/internal/notify"
	"github.com/harperreed/elevate/internal/routines"
	"github.com/harperreed/elevate/internal/session"
	"github.com/harperreed/elevate/internal/storage"
)

// Version is reported to MCP clients.
const Version = "1.0.0"

// Server wraps the MCP server with storage access.
type Server struct {
	mcpServer *mcp.Server
	repo      storage.Repository
	catalog   *catalog.Catalog
	routines  *routines.Registry
	watcher   *auth.Watcher
	logger    *log.Logger

	mu       sync.Mutex
	active   *session.Session
	messages *notify.Recorder
	// pending holds a finished workout whose save failed, until a retried
	// finish_workout stores it or discard_workout drops it.
	pending *models.Workout
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the diagnostic logger. It must not write to stdout.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithAuth makes every tool and resource require a signed-in session.
func WithAuth(w *auth.Watcher) Option {
	return func(s *Server) { s.watcher = w }
}

// NewServer creates a new MCP server with the given storage.
func NewServer(repo storage.Repository, opts ...Option) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "elevate",
			Version: Version,
		},
		nil,
	)

	exercises := catalog.Default()
	s := &Server{
		mcpServer: mcpServer,
		repo:      repo,
		catalog:   exercises,
		routines:  routines.New(repo, exercises),
		logger:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport. Any live workout is
// abandoned when the transport closes.
func (s *Server) Serve(ctx context.Context) error {
	defer s.Close()
	s.logger.Info("mcp server starting", "version", Version)
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// Close releases the live workout's timer, if any.
func (s *Server) Close() {
	s.mu.Lock()
	active := s.active
	s.active = nil
	s.mu.Unlock()

	if active != nil {
		_ = active.Close()
	}
}

func (s *Server) requireAuth() error {
	if s.watcher == nil {
		return nil
	}
	_, err := s.watcher.Require()
	return err
}
