package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/roomboard/internal/model"
)

// CreateRoom appends a room after the existing ones.
func CreateRoom(ctx context.Context, db *sql.DB, title string) (*model.Room, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO rooms (title, position)
		 VALUES (?, (SELECT COALESCE(MAX(position) + 1, 0) FROM rooms))`,
		title,
	)
	if err != nil {
		return nil, fmt.Errorf("creating room: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting room id: %w", err)
	}

	return GetRoom(ctx, db, id)
}

// GetRoom returns a room by ID.
func GetRoom(ctx context.Context, db *sql.DB, id int64) (*model.Room, error) {
	r := &model.Room{}
	err := db.QueryRowContext(ctx,
		`SELECT id, title, position, created_at FROM rooms WHERE id = ?`, id,
	).Scan(&r.ID, &r.Title, &r.Position, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting room: %w", err)
	}
	return r, nil
}

// ListRooms returns all rooms in display order.
func ListRooms(ctx context.Context, db *sql.DB) ([]model.Room, error) {
	return listRooms(ctx, db)
}

func listRooms(ctx context.Context, q querier) ([]model.Room, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, title, position, created_at FROM rooms ORDER BY position, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing rooms: %w", err)
	}
	defer rows.Close()

	rooms := []model.Room{}
	for rows.Next() {
		var r model.Room
		if err := rows.Scan(&r.ID, &r.Title, &r.Position, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning room: %w", err)
		}
		rooms = append(rooms, r)
	}
	return rooms, rows.Err()
}

// UpdateRoom renames a room.
func UpdateRoom(ctx context.Context, db *sql.DB, id int64, title string) error {
	result, err := db.ExecContext(ctx, `UPDATE rooms SET title = ? WHERE id = ?`, title, id)
	if err != nil {
		return fmt.Errorf("updating room: %w", err)
	}
	return affected(result)
}

// ReorderRooms assigns positions 0..n-1 in the order of ids, which must list
// every room exactly once.
func ReorderRooms(ctx context.Context, db *sql.DB, ids []int64) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	rooms, err := listRooms(ctx, tx)
	if err != nil {
		return err
	}
	if len(rooms) != len(ids) {
		return ErrInvalidOrder
	}
	existing := make(map[int64]bool, len(rooms))
	for _, r := range rooms {
		existing[r.ID] = true
	}
	for _, id := range ids {
		if !existing[id] {
			return ErrInvalidOrder
		}
		delete(existing, id)
	}

	if err := renumber(ctx, tx, ids); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing room order: %w", err)
	}
	return nil
}

// DeleteRoom deletes a room and closes the gap in positions. Items in the
// room become unassigned. When the last room is removed an empty placeholder
// room is created and returned so the catalog always has one.
func DeleteRoom(ctx context.Context, db *sql.DB, id int64) (*model.Room, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM rooms WHERE id = ?`, id)
	if err != nil {
		return nil, fmt.Errorf("deleting room: %w", err)
	}
	if err := affected(result); err != nil {
		return nil, err
	}

	rooms, err := listRooms(ctx, tx)
	if err != nil {
		return nil, err
	}

	var placeholderID int64
	if len(rooms) == 0 {
		result, err := tx.ExecContext(ctx, `INSERT INTO rooms (title, position) VALUES ('', 0)`)
		if err != nil {
			return nil, fmt.Errorf("creating placeholder room: %w", err)
		}
		if placeholderID, err = result.LastInsertId(); err != nil {
			return nil, fmt.Errorf("getting room id: %w", err)
		}
	} else if err := renumber(ctx, tx, roomIDs(rooms)); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing room delete: %w", err)
	}

	if placeholderID == 0 {
		return nil, nil
	}
	return GetRoom(ctx, db, placeholderID)
}

// CompactRooms deletes rooms whose title is exactly empty and renumbers the
// remaining rooms densely. Whitespace-only titles are kept. It returns the number of rooms removed.
func CompactRooms(ctx context.Context, db *sql.DB) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `DELETE FROM rooms WHERE title = ''`)
	if err != nil {
		return 0, fmt.Errorf("deleting empty rooms: %w", err)
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted rooms: %w", err)
	}

	rooms, err := listRooms(ctx, tx)
	if err != nil {
		return 0, err
	}
	if err := renumber(ctx, tx, roomIDs(rooms)); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing room compaction: %w", err)
	}
	return int(removed), nil
}

// CountRooms returns the number of rooms.
func CountRooms(ctx context.Context, db *sql.DB) (int, error) {
	n, err := count(ctx, db, `SELECT COUNT(*) FROM rooms`)
	if err != nil {
		return 0, fmt.Errorf("counting rooms: %w", err)
	}
	return n, nil
}

func renumber(ctx context.Context, q querier, ids []int64) error {
	for i, id := range ids {
		if _, err := q.ExecContext(ctx, `UPDATE rooms SET position = ? WHERE id = ?`, i, id); err != nil {
			return fmt.Errorf("renumbering rooms: %w", err)
		}
	}
	return nil
}

func roomIDs(rooms []model.Room) []int64 {
	ids := make([]int64, len(rooms))
	for i, r := range rooms {
		ids[i] = r.ID
	}
	return ids
}
