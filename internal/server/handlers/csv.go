package handlers

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/AlexTLDR/bringwhat/internal/database"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// csvRowData holds formatted data for a single CSV row
type csvRowData struct {
	guest    string
	item     string
	category string
	added    string
}

// escapeCSVField escapes a string for CSV format
func escapeCSVField(field string) string {
	// Escape double quotes by doubling them
	escaped := strings.ReplaceAll(field, "\"", "\"\"")
	escaped = strings.ReplaceAll(escaped, "\n", " ")
	return escaped
}

func formatItemForCSV(item *database.Item) csvRowData {
	return csvRowData{
		guest:    escapeCSVField(item.GuestName),
		item:     escapeCSVField(item.ItemName),
		category: escapeCSVField(string(item.Category)),
		added:    time.UnixMilli(item.CreatedAt).UTC().Format(time.RFC3339),
	}
}

// buildCSVRow creates a CSV line from row data
func buildCSVRow(row csvRowData) string {
	return fmt.Sprintf("\"%s\",\"%s\",\"%s\",\"%s\"\n", row.guest, row.item, row.category, row.added)
}

func csvFilename(event *database.Event) string {
	name := strings.Trim(unsafeFilenameChars.ReplaceAllString(strings.ToLower(event.Title), "-"), "-")
	if name == "" {
		name = "event"
	}
	return name + "-items.csv"
}

// writeCSVHeaders sets HTTP headers and writes CSV header row
func writeCSVHeaders(w http.ResponseWriter, filename string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)

	// Write UTF-8 BOM for Excel compatibility
	_, _ = w.Write([]byte{0xEF, 0xBB, 0xBF})

	_, _ = w.Write([]byte("Guest,Item,Category,Added\n"))
}

// HandleExportItems handles GET /api/events/:id/export and returns the item
// list as a spreadsheet-friendly CSV file.
func HandleExportItems(s Server) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		event, err := s.GetDB().GetEvent(ctx, c.Param("id"))
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

		items, err := s.GetDB().ListItems(ctx, event.ID)
		if err != nil {
			_ = c.Error(err)
			s.GetLogger().Error("Error fetching items", zap.String("event_id", event.ID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch items"})
			return
		}

		c.Status(http.StatusOK)
		writeCSVHeaders(c.Writer, csvFilename(event))
		for _, item := range items {
			_, _ = c.Writer.WriteString(buildCSVRow(formatItemForCSV(item)))
		}
	}
}
