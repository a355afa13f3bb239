package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	guestSessionName = "bringwhat-guest"
	guestNameKey     = "guestName"
)

func rememberGuest(s Server, c *gin.Context, guestName string) {
	session, _ := s.GetSessionStore().Get(c.Request, guestSessionName)
	session.Values[guestNameKey] = guestName
	if err := session.Save(c.Request, c.Writer); err != nil {
		// Only a convenience; the item is already stored.
		s.GetLogger().Warn("Failed to save guest session", zap.Error(err))
	}
}

// HandleGuest handles GET /api/guest and returns the name this browser last
// added an item under, or an empty string.
func HandleGuest(s Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, _ := s.GetSessionStore().Get(c.Request, guestSessionName)
		name, _ := session.Values[guestNameKey].(string)
		c.JSON(http.StatusOK, gin.H{"guestName": name})
	}
}
