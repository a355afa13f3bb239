package database

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/multierr"
)

// AddItem stores a new item for an event. An empty category becomes "other".
func (db *DB) AddItem(ctx context.Context, eventID, guestName, itemName string, category Category) (*Item, error) {
	if category == "" {
		category = CategoryOther
	}

	id, err := GenerateID()
	if err != nil {
		return nil, err
	}

	item := &Item{
		ID:        id,
		EventID:   eventID,
		GuestName: guestName,
		ItemName:  itemName,
		Category:  category,
		CreatedAt: db.clock.Millis(),
	}

	_, err = db.Execute(ctx,
		`INSERT INTO items (id, eventId, guestName, itemName, category, createdAt)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		item.ID, item.EventID, item.GuestName, item.ItemName, string(item.Category), item.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add item: %w", err)
	}

	return item, nil
}

// ListItems returns the items of an event, oldest first. An unknown event
// simply has no items.
func (db *DB) ListItems(ctx context.Context, eventID string) (items []*Item, err error) {
	rows, err := db.FetchAll(ctx,
		`SELECT id, eventId, guestName, itemName, category, createdAt
		 FROM items WHERE eventId = ? ORDER BY createdAt ASC, id ASC`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	defer multierr.AppendInvoke(&err, multierr.Close(rows))

	items = []*Item{}
	for rows.Next() {
		item := &Item{}
		var guestName, itemName, category sql.NullString
		if err := rows.Scan(&item.ID, &item.EventID, &guestName, &itemName, &category, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		item.GuestName = guestName.String
		item.ItemName = itemName.String
		item.Category = Category(category.String)
		if item.Category == "" {
			item.Category = CategoryOther
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	return items, nil
}

// BackfillCategories sets category "other" on rows stored without one.
func (db *DB) BackfillCategories(ctx context.Context) (int64, error) {
	res, err := db.Execute(ctx,
		`UPDATE items SET category = ? WHERE category IS NULL OR category = ''`,
		string(CategoryOther),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to backfill categories: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return n, nil
}
