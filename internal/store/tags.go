package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/erazemk/roomboard/internal/model"
)

// DefaultTags is the starter set installed on first run or on request.
var DefaultTags = []model.Tag{
	{Text: "Driving", Color: "#4F340A"},
	{Text: "Finance", Color: "#00F900"},
	{Text: "Personal", Color: "#0433FF"},
	{Text: "School", Color: "#F5B433"},
}

// CreateTag creates a tag. color must already be normalized.
func CreateTag(ctx context.Context, db *sql.DB, text, color string) (*model.Tag, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO tags (text, color) VALUES (?, ?)`, text, color,
	)
	if err != nil {
		return nil, fmt.Errorf("creating tag: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting tag id: %w", err)
	}

	return GetTag(ctx, db, id)
}

// GetTag returns a tag by ID.
func GetTag(ctx context.Context, db *sql.DB, id int64) (*model.Tag, error) {
	t := &model.Tag{}
	err := db.QueryRowContext(ctx,
		`SELECT id, text, color, created_at FROM tags WHERE id = ?`, id,
	).Scan(&t.ID, &t.Text, &t.Color, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting tag: %w", err)
	}
	return t, nil
}

// ListTags returns all tags ordered by text.
func ListTags(ctx context.Context, db *sql.DB) ([]model.Tag, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, text, color, created_at FROM tags ORDER BY text, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer rows.Close()

	tags := []model.Tag{}
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.Text, &t.Color, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// UpdateTag changes a tag's text and color.
func UpdateTag(ctx context.Context, db *sql.DB, id int64, text, color string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE tags SET text = ?, color = ? WHERE id = ?`, text, color, id,
	)
	if err != nil {
		return fmt.Errorf("updating tag: %w", err)
	}
	return affected(result)
}

// DeleteTag deletes a tag and removes it from every item.
func DeleteTag(ctx context.Context, db *sql.DB, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting tag: %w", err)
	}
	return affected(result)
}

// InstallDefaultTags replaces every existing tag with DefaultTags.
func InstallDefaultTags(ctx context.Context, db *sql.DB) ([]model.Tag, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM tags`); err != nil {
		return nil, fmt.Errorf("clearing tags: %w", err)
	}
	for _, t := range DefaultTags {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO tags (text, color) VALUES (?, ?)`, t.Text, t.Color,
		); err != nil {
			return nil, fmt.Errorf("installing tag %q: %w", t.Text, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing default tags: %w", err)
	}
	return ListTags(ctx, db)
}

// CountTags returns the number of tags.
func CountTags(ctx context.Context, db *sql.DB) (int, error) {
	n, err := count(ctx, db, `SELECT COUNT(*) FROM tags`)
	if err != nil {
		return 0, fmt.Errorf("counting tags: %w", err)
	}
	return n, nil
}
