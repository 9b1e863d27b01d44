// Package server exposes the scorer over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/nikogura/ats-scorer/pkg/config"
	"github.com/nikogura/ats-scorer/pkg/scorer"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 10 * time.Second

// Server is the HTTP API.
type Server struct {
	cfg     config.ServerConfig
	router  *gin.Engine
	limiter *RateLimiter
}

// New builds the router and middleware chain.
func New(cfg config.ServerConfig, s *scorer.Scorer) (srv *Server) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv = &Server{
		cfg:     cfg,
		router:  gin.New(),
		limiter: NewRateLimiter(cfg.RateLimitRPS),
	}

	r := srv.router
	r.Use(gin.Recovery())
	r.Use(requestID())
	r.Use(requestLogger())

	r.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	h := NewScoreHandler(s)

	r.GET("/health", h.Health)

	api := r.Group("/api", srv.limiter.Limit(), bodyLimit(cfg.MaxBodyBytes))
	{
		api.POST("/score", h.Score)
		api.POST("/analyze-resume", h.Analyze)
		api.POST("/extract-job-keywords", h.ExtractKeywords)
		api.POST("/score/batch", h.ScoreBatch)
		api.GET("/lexicon/verbs", h.Verbs)
	}

	return srv
}

// corsConfig allows the listed origins, or any origin without credentials when
// none are listed.
func corsConfig(origins []string) (cc cors.Config) {
	cc = cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}

	if len(origins) == 0 {
		cc.AllowAllOrigins = true
		return cc
	}

	cc.AllowOrigins = origins
	cc.AllowCredentials = true
	return cc
}

// Handler returns the HTTP handler.
func (s *Server) Handler() (handler http.Handler) {
	handler = s.router
	return handler
}

// Run serves on the configured port until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) (err error) {
	timeout := time.Duration(s.cfg.RequestTimeout) * time.Second

	httpServer := &http.Server{
		Addr:              ":" + s.cfg.Port,
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		WriteTimeout:      2 * timeout,
		IdleTimeout:       60 * time.Second,
	}

	limiterCtx, stopLimiter := context.WithCancel(ctx)
	defer stopLimiter()
	go s.limiter.Run(limiterCtx)

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- httpServer.ListenAndServe()
	}()

	log.Info().Str("port", s.cfg.Port).Str("env", s.cfg.Env).Msg("ATS scorer API running")

	select {
	case err = <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
			return err
		}
		err = errors.Wrap(err, "server failed")
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err = httpServer.Shutdown(shutdownCtx)
	if err != nil {
		err = errors.Wrap(err, "server forced to shutdown")
		return err
	}

	log.Info().Msg("Server stopped")
	return err
}
