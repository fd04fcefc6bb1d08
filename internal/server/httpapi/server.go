// Package httpapi exposes the account store over a JSON HTTP API:
// registration and login issue bearer tokens, authenticated routes serve the
// per-account snapshot and accept profile and meal pushes.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/drfoodie/nutritrack/internal/logging"
	"github.com/drfoodie/nutritrack/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

// Server wires the gin router to the services.
type Server struct {
	addr      string
	logger    logging.Logger
	accounts  *services.AccountService
	snapshots *services.SnapshotService
}

func NewServer(addr string, logger logging.Logger, accounts *services.AccountService, snapshots *services.SnapshotService) *Server {
	return &Server{
		addr:      addr,
		logger:    logger.With("component", "httpapi"),
		accounts:  accounts,
		snapshots: snapshots,
	}
}

// Router builds the gin engine with all routes attached.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	api.POST("/register", s.handleRegister)
	api.POST("/login", s.handleLogin)

	authed := api.Group("")
	authed.Use(s.authMiddleware())
	authed.GET("/snapshot", s.handleSnapshot)
	authed.PUT("/profile", s.handlePushProfile)
	authed.PUT("/meals/:id", s.handlePushMeal)
	authed.DELETE("/meals/:id", s.handleDeleteMeal)
	authed.POST("/signout", s.handleSignOut)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "listening", "addr", s.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
