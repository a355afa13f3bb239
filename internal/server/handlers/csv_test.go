package handlers

import (
	"testing"

	"github.com/AlexTLDR/bringwhat/internal/database"
)

func TestEscapeCSVField(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "Chips", "Chips"},
		{"quotes", `The "good" salsa`, `The ""good"" salsa`},
		{"newline", "Ice\nlots", "Ice lots"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := escapeCSVField(tt.input); got != tt.expected {
				t.Errorf("escapeCSVField(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestBuildCSVRow(t *testing.T) {
	tests := []struct {
		name     string
		item     *database.Item
		expected string
	}{
		{
			"quoted item",
			&database.Item{GuestName: "Bo", ItemName: `12" pizza`, Category: database.CategoryFood},
			"\"Bo\",\"12\"\" pizza\",\"food\",\"1970-01-01T00:00:00Z\"\n",
		},
		{
			"quoted category",
			&database.Item{GuestName: "Bo", ItemName: "Chips", Category: `snack "bar"`},
			"\"Bo\",\"Chips\",\"snack \"\"bar\"\"\",\"1970-01-01T00:00:00Z\"\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildCSVRow(formatItemForCSV(tt.item)); got != tt.expected {
				t.Errorf("buildCSVRow() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestCSVFilename(t *testing.T) {
	tests := []struct {
		title    string
		expected string
	}{
		{"BBQ", "bbq-items.csv"},
		{"Ana's Summer BBQ!", "ana-s-summer-bbq-items.csv"},
		{"!!!", "event-items.csv"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			if got := csvFilename(&database.Event{Title: tt.title}); got != tt.expected {
				t.Errorf("csvFilename(%q) = %q, expected %q", tt.title, got, tt.expected)
			}
		})
	}
}
