package handlers

import (
	"net/http"

	"github.com/AlexTLDR/bringwhat/internal/database"
	"github.com/AlexTLDR/bringwhat/internal/suggest"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type suggestRequest struct {
	Event database.Event  `json:"event"`
	Items []database.Item `json:"items"`
}

type welcomeRequest struct {
	Title string `json:"title"`
}

// HandleSuggest handles POST /api/suggest. It always answers 200.
func HandleSuggest(s Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req suggestRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			s.GetLogger().Warn("Invalid suggestion request", zap.Error(err))
			c.JSON(http.StatusOK, suggest.Fallback())
			return
		}

		c.JSON(http.StatusOK, s.GetSuggester().Suggest(c.Request.Context(), req.Event, req.Items))
	}
}

// HandleWelcome handles POST /api/welcome
func HandleWelcome(s Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req welcomeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, gin.H{"message": suggest.FailureWelcome})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": s.GetSuggester().Welcome(c.Request.Context(), req.Title)})
	}
}
