package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/AlexTLDR/bringwhat/internal/config"
	"github.com/AlexTLDR/bringwhat/internal/database"
	"github.com/AlexTLDR/bringwhat/internal/server/handlers"
	"github.com/AlexTLDR/bringwhat/internal/suggest"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const guestSessionMaxAge = 30 * 24 * 60 * 60

type Server struct {
	config       *config.Config
	db           *database.DB
	suggester    *suggest.Gateway
	logger       *zap.Logger
	sessionStore *sessions.CookieStore
	router       *gin.Engine
	httpServer   *http.Server
}

// GetDB implements handlers.Server interface
func (s *Server) GetDB() *database.DB {
	return s.db
}

// GetConfig implements handlers.Server interface
func (s *Server) GetConfig() *config.Config {
	return s.config
}

// GetLogger implements handlers.Server interface
func (s *Server) GetLogger() *zap.Logger {
	return s.logger
}

// GetSuggester implements handlers.Server interface
func (s *Server) GetSuggester() *suggest.Gateway {
	return s.suggester
}

// GetSessionStore implements handlers.Server interface
func (s *Server) GetSessionStore() sessions.Store {
	return s.sessionStore
}

func New(cfg *config.Config, db *database.DB, suggester *suggest.Gateway, logger *zap.Logger) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	store := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   guestSessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	}

	s := &Server{
		config:       cfg,
		db:           db,
		suggester:    suggester,
		logger:       logger,
		sessionStore: store,
		router:       gin.New(),
	}
	s.httpServer = &http.Server{
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if err := handlers.RegisterValidators(); err != nil {
		logger.Warn("Blank-field validation is unavailable", zap.Error(err))
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	if len(s.config.CORSOrigins) > 0 {
		corsConfig := cors.Config{
			AllowOrigins:     s.config.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-ID"},
			ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}
		if err := corsConfig.Validate(); err != nil {
			s.logger.Error("CORS disabled: invalid origins", zap.Strings("origins", s.config.CORSOrigins), zap.Error(err))
		} else {
			s.router.Use(cors.New(corsConfig))
		}
	}
	s.router.Use(requestID())
	s.router.Use(requestLogger(s.logger))
	s.router.Use(gin.Recovery())

	s.router.GET("/health", handlers.HandleHealth(s))

	api := s.router.Group("/api")
	{
		api.POST("/events", handlers.HandleCreateEvent(s))
		api.GET("/events/:id", handlers.HandleGetEvent(s))
		api.GET("/events/:id/items", handlers.HandleListItems(s))
		api.GET("/events/:id/export", handlers.HandleExportItems(s))
		api.POST("/items", handlers.HandleAddItem(s))
		api.GET("/guest", handlers.HandleGuest(s))
		api.POST("/suggest", handlers.HandleSuggest(s))
		api.POST("/welcome", handlers.HandleWelcome(s))
	}

	// Client-side routing
	s.router.NoRoute(handlers.HandleClient(s))
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	s.httpServer.Addr = addr
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown waits for in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
