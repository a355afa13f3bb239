package handlers

import (
	"net/http"

	"github.com/AlexTLDR/bringwhat/internal/config"
	"github.com/AlexTLDR/bringwhat/internal/database"
	"github.com/AlexTLDR/bringwhat/internal/suggest"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// Server interface defines the methods needed by handlers
type Server interface {
	GetDB() *database.DB
	GetConfig() *config.Config
	GetLogger() *zap.Logger
	GetSuggester() *suggest.Gateway
	GetSessionStore() sessions.Store
}

type createEventRequest struct {
	Title       string `json:"title" binding:"required,notblank"`
	Description string `json:"description"`
	Date        string `json:"date" binding:"required,notblank"`
	Time        string `json:"time"`
	HostName    string `json:"hostName" binding:"required,notblank"`
}

// HandleCreateEvent handles POST /api/events
func HandleCreateEvent(s Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createEventRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": bindingMessage(err, "title, date and hostName are required")})
			return
		}

		event, err := s.GetDB().CreateEvent(c.Request.Context(), req.Title, req.Description, req.Date, req.Time, req.HostName)
		if err != nil {
			_ = c.Error(err)
			s.GetLogger().Error("Error creating event", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create event"})
			return
		}

		s.GetLogger().Info("Created event", zap.String("title", event.Title), zap.String("id", event.ID))
		c.JSON(http.StatusOK, event)
	}
}

// HandleGetEvent handles GET /api/events/:id
func HandleGetEvent(s Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		event, err := s.GetDB().GetEvent(c.Request.Context(), c.Param("id"))
		if err != nil {
			_ = c.Error(err)
			s.GetLogger().Error("Error fetching event", zap.String("id", c.Param("id")), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch event"})
			return
		}
		if event == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Event not found"})
			return
		}

		c.JSON(http.StatusOK, event)
	}
}
