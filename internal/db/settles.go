package db

import (
	"fmt"
	"time"
)

// Settle is one recorded settle event.
type Settle struct {
	ID           int64     `json:"id"`
	Session      string    `json:"session"`
	Index        int       `json:"index"`
	Spec         string    `json:"spec"`
	OffsetY      float64   `json:"offset_y"`
	ScreenHeight float64   `json:"screen_height"`
	Dismissed    bool      `json:"dismissed"`
	CreatedAt    time.Time `json:"created_at"`
}

// RecordSettle stores s and sets its ID. A zero CreatedAt is set to now.
func (db *DB) RecordSettle(s *Settle) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now()
	}
	res, err := db.conn.Exec(`
		INSERT INTO settles (session, snap_index, spec, offset_y, screen_height, dismissed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.Session, s.Index, s.Spec, s.OffsetY, s.ScreenHeight, s.Dismissed, s.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("record settle: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("record settle: %w", err)
	}
	s.ID = id
	return nil
}

// ListOptions filter ListSettles.
type ListOptions struct {
	Session string
	Limit   int
}

// ListSettles returns settle events newest first.
func (db *DB) ListSettles(opts ListOptions) ([]Settle, error) {
	query := `SELECT id, session, snap_index, spec, offset_y, screen_height, dismissed, created_at
		FROM settles`
	var args []any
	if opts.Session != "" {
		query += " WHERE session = ?"
		args = append(args, opts.Session)
	}
	query += " ORDER BY created_at DESC, id DESC"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list settles: %w", err)
	}
	defer rows.Close()

	var settles []Settle
	for rows.Next() {
		var s Settle
		if err := rows.Scan(&s.ID, &s.Session, &s.Index, &s.Spec, &s.OffsetY,
			&s.ScreenHeight, &s.Dismissed, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan settle: %w", err)
		}
		settles = append(settles, s)
	}
	return settles, rows.Err()
}

// ClearSettles deletes all recorded events and returns how many were removed.
func (db *DB) ClearSettles() (int64, error) {
	res, err := db.conn.Exec("DELETE FROM settles")
	if err != nil {
		return 0, fmt.Errorf("clear settles: %w", err)
	}
	return res.RowsAffected()
}
