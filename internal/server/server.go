// Package server exposes a read-only localhost JSON viewer over scopes,
// session history, and session artifacts. No auth: it binds to loopback
// and only reads data the local user already owns.
package server

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/Perdyx/auto-recon/internal/config"
	"github.com/Perdyx/auto-recon/internal/scope"
	"github.com/Perdyx/auto-recon/internal/session"
	"github.com/Perdyx/auto-recon/internal/storage"
	"github.com/Perdyx/auto-recon/internal/version"
	"github.com/gin-gonic/gin"
)

// artifactNames whitelists the files servable from a session directory.
var artifactNames = map[string]bool{
	session.RootsFile:        true,
	session.SubdomainsFile:   true,
	session.ResolvedFile:     true,
	session.IPsFile:          true,
	session.FingerprintsFile: true,
}

// Server serves the viewer API.
type Server struct {
	cfg    *config.Config
	scopes *scope.Store
	ledger *storage.Ledger
}

// New creates a viewer over the given config, scope store and ledger.
func New(cfg *config.Config, scopes *scope.Store, ledger *storage.Ledger) *Server {
	return &Server{cfg: cfg, scopes: scopes, ledger: ledger}
}

// Run starts the HTTP server on addr and blocks.
func (s *Server) Run(addr string) error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	api.GET("/version", s.handleVersion)
	api.GET("/scopes", s.handleScopes)
	api.GET("/scopes/:id/roots", s.handleScopeRoots)
	api.GET("/sessions", s.handleSessions)
	api.GET("/sessions/:id", s.handleSession)
	api.GET("/sessions/:id/artifacts/:name", s.handleArtifact)

	return r.Run(addr)
}

func (s *Server) handleVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"version": version.Version})
}

func (s *Server) handleScopes(c *gin.Context) {
	scopes, err := s.scopes.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"scopes": scopes})
}

func (s *Server) handleScopeRoots(c *gin.Context) {
	roots, err := s.scopes.LoadRoots(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"scope": c.Param("id"), "roots": roots})
}

func (s *Server) handleSessions(c *gin.Context) {
	sessions, err := s.ledger.Sessions(c.Query("scope"), 100)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

func (s *Server) handleSession(c *gin.Context) {
	stages, err := s.ledger.Stages(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": c.Param("id"), "stages": stages})
}

func (s *Server) handleArtifact(c *gin.Context) {
	name := c.Param("name")
	if !artifactNames[name] {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown artifact"})
		return
	}

	// Session IDs never contain path separators; Base strips any attempt.
	id := filepath.Base(c.Param("id"))
	path := filepath.Join(s.cfg.ScansDir(), id, name)
	if _, err := os.Stat(path); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "artifact not found"})
		return
	}
	c.File(path)
}
