package database

import (
	"testing"
)

func TestRebind(t *testing.T) {
	tests := []struct {
		name     string
		style    BindStyle
		input    string
		expected string
	}{
		{
			name:     "three params to dollar",
			style:    BindDollar,
			input:    "INSERT INTO t (a, b, c) VALUES (?, ?, ?)",
			expected: "INSERT INTO t (a, b, c) VALUES ($1, $2, $3)",
		},
		{
			name:     "question style is untouched",
			style:    BindQuestion,
			input:    "SELECT * FROM items WHERE eventId = ? AND category = ?",
			expected: "SELECT * FROM items WHERE eventId = ? AND category = ?",
		},
		{
			name:     "no placeholders",
			style:    BindDollar,
			input:    "SELECT 1",
			expected: "SELECT 1",
		},
		{
			name:     "adjacent placeholders keep order",
			style:    BindDollar,
			input:    "SELECT ?,?,?",
			expected: "SELECT $1,$2,$3",
		},
		{
			name:     "question mark in string literal",
			style:    BindDollar,
			input:    "SELECT * FROM items WHERE itemName = 'what?' AND eventId = ?",
			expected: "SELECT * FROM items WHERE itemName = 'what?' AND eventId = $1",
		},
		{
			name:     "escaped quote inside literal",
			style:    BindDollar,
			input:    "SELECT 'it''s ?' , ?",
			expected: "SELECT 'it''s ?' , $1",
		},
		{
			name:     "quoted identifier",
			style:    BindDollar,
			input:    `SELECT "odd?name" FROM t WHERE id = ?`,
			expected: `SELECT "odd?name" FROM t WHERE id = $1`,
		},
		{
			name:     "line comment",
			style:    BindDollar,
			input:    "SELECT ? -- really?\nFROM t WHERE id = ?",
			expected: "SELECT $1 -- really?\nFROM t WHERE id = $2",
		},
		{
			name:     "block comment",
			style:    BindDollar,
			input:    "SELECT /* ? */ ? FROM t",
			expected: "SELECT /* ? */ $1 FROM t",
		},
		{
			name:     "unterminated literal",
			style:    BindDollar,
			input:    "SELECT ? WHERE a = 'oops?",
			expected: "SELECT $1 WHERE a = 'oops?",
		},
		{
			name:     "escape string with backslash quote",
			style:    BindDollar,
			input:    `SELECT E'it\'s ?' , ?`,
			expected: `SELECT E'it\'s ?' , $1`,
		},
		{
			name:     "backslash in standard literal",
			style:    BindDollar,
			input:    `SELECT * FROM t WHERE name ='a\' AND id = ?`,
			expected: `SELECT * FROM t WHERE name ='a\' AND id = $1`,
		},
		{
			name:     "dollar quoted body",
			style:    BindDollar,
			input:    "SELECT $$what?$$, ?",
			expected: "SELECT $$what?$$, $1",
		},
		{
			name:     "tagged dollar quote",
			style:    BindDollar,
			input:    "SELECT $body$ a $$ b? $body$ WHERE id = ?",
			expected: "SELECT $body$ a $$ b? $body$ WHERE id = $1",
		},
		{
			name:     "unterminated dollar quote",
			style:    BindDollar,
			input:    "SELECT ?, $$oops?",
			expected: "SELECT $1, $$oops?",
		},
		{
			name:     "ten params",
			style:    BindDollar,
			input:    "VALUES (?,?,?,?,?,?,?,?,?,?)",
			expected: "VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Rebind(tt.style, tt.input)
			if result != tt.expected {
				t.Errorf("Rebind(%q) = %q, expected %q", tt.input, result, tt.expected)
			}
		})
	}
}
