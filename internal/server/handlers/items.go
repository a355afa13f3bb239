package handlers

import (
	"net/http"

	"github.com/AlexTLDR/bringwhat/internal/database"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type addItemRequest struct {
	EventID   string `json:"eventId" binding:"required,notblank"`
	GuestName string `json:"guestName" binding:"required,notblank"`
	ItemName  string `json:"itemName" binding:"required,notblank"`
	Category  string `json:"category"`
}

// HandleListItems handles GET /api/events/:id/items
func HandleListItems(s Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := s.GetDB().ListItems(c.Request.Context(), c.Param("id"))
		if err != nil {
			_ = c.Error(err)
			s.GetLogger().Error("Error fetching items", zap.String("event_id", c.Param("id")), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch items"})
			return
		}

		c.JSON(http.StatusOK, items)
	}
}

// HandleAddItem handles POST /api/items. The guest name is remembered in the
// session so the next visit can prefill it.
func HandleAddItem(s Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": bindingMessage(err, "eventId, guestName and itemName are required")})
			return
		}

		item, err := s.GetDB().AddItem(c.Request.Context(), req.EventID, req.GuestName, req.ItemName, database.Category(req.Category))
		if err != nil {
			_ = c.Error(err)
			s.GetLogger().Error("Error adding item", zap.String("event_id", req.EventID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item"})
			return
		}

		rememberGuest(s, c, item.GuestName)

		s.GetLogger().Info("Added item", zap.String("item", item.ItemName), zap.String("event_id", item.EventID))
		c.JSON(http.StatusOK, item)
	}
}
