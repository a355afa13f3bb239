package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(s scanner) (*Event, error) {
	e := &Event{}
	var description, date, eventTime, hostName sql.NullString
	if err := s.Scan(&e.ID, &e.Title, &description, &date, &eventTime, &hostName, &e.CreatedAt); err != nil {
		return nil, err
	}
	e.Description = description.String
	e.Date = date.String
	e.Time = eventTime.String
	e.HostName = hostName.String
	return e, nil
}

// CreateEvent stores a new event with a generated id and creation time
func (db *DB) CreateEvent(ctx context.Context, title, description, date, eventTime, hostName string) (*Event, error) {
	id, err := GenerateID()
	if err != nil {
		return nil, err
	}

	event := &Event{
		ID:          id,
		Title:       title,
		Description: description,
		Date:        date,
		Time:        eventTime,
		HostName:    hostName,
		CreatedAt:   db.clock.Millis(),
	}

	_, err = db.Execute(ctx,
		`INSERT INTO events (id, title, description, date, time, hostName, createdAt)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		event.ID, event.Title, event.Description, event.Date, event.Time, event.HostName, event.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	return event, nil
}

// GetEvent retrieves an event by ID. It returns nil, nil if there is none.
func (db *DB) GetEvent(ctx context.Context, id string) (*Event, error) {
	event, err := scanEvent(db.FetchOne(ctx,
		`SELECT id, title, description, date, time, hostName, createdAt
		 FROM events WHERE id = ?`,
		id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return event, nil
}

// DeleteEvent removes an event; its items go with it through the foreign key.
func (db *DB) DeleteEvent(ctx context.Context, id string) (bool, error) {
	res, err := db.Execute(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete event: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to get affected rows: %w", err)
	}

	return n > 0, nil
}
