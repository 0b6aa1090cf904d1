package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/erazemk/roomboard/internal/model"
)

// ItemParams holds the editable fields of an item. TagIDs is ordered; the
// order is preserved when the item is read back.
type ItemParams struct {
	Title  string
	Date   *time.Time
	Notes  string
	Value  string
	RoomID *int64
	TagIDs []int64
}

// Item sort keys accepted by ListItems.
const (
	SortByTitle = "title"
	SortByRoom  = "room"
	SortByDate  = "date"
)

func itemsQuery() sq.SelectBuilder {
	return sq.Select(
		"i.id", "i.title", "i.date", "i.notes", "i.value", "i.room_id",
		"i.image_mime", "i.image_orientation", "i.created_at", "i.updated_at",
		"r.title", "r.position", "r.created_at",
	).From("items i").LeftJoin("rooms r ON r.id = i.room_id")
}

// CreateItem creates a new item with its tags.
func CreateItem(ctx context.Context, db *sql.DB, p ItemParams) (*model.Item, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := checkRoom(ctx, tx, p.RoomID); err != nil {
		return nil, err
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO items (title, date, notes, value, room_id) VALUES (?, ?, ?, ?, ?)`,
		p.Title, p.Date, p.Notes, p.Value, p.RoomID,
	)
	if err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting item id: %w", err)
	}

	if err := setItemTags(ctx, tx, id, p.TagIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing item: %w", err)
	}

	return GetItem(ctx, db, id)
}

// GetItem returns an item by ID with its room and tags, or nil if it does
// not exist.
func GetItem(ctx context.Context, db *sql.DB, id int64) (*model.Item, error) {
	query, args, err := itemsQuery().Where(sq.Eq{"i.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building item query: %w", err)
	}

	items, err := queryItems(ctx, db, query, args...)
	if err != nil {
		return nil, fmt.Errorf("getting item: %w", err)
	}
	if len(items) == 0 {
		return nil, nil
	}
	if err := attachTags(ctx, db, items); err != nil {
		return nil, err
	}
	return &items[0], nil
}

// ListItems returns every item ordered ascending by sortKey (title, room or
// date; anything else means title).
func ListItems(ctx context.Context, db *sql.DB, sortKey string) ([]model.Item, error) {
	q := itemsQuery()
	switch sortKey {
	case SortByRoom:
		q = q.OrderBy("COALESCE(r.title, '')", "i.id")
	case SortByDate:
		q = q.OrderBy("i.date", "i.id")
	default:
		q = q.OrderBy("i.title", "i.id")
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building items query: %w", err)
	}

	items, err := queryItems(ctx, db, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	if err := attachTags(ctx, db, items); err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateItem replaces an item's fields and tag list.
func UpdateItem(ctx context.Context, db *sql.DB, id int64, p ItemParams) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := checkRoom(ctx, tx, p.RoomID); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE items SET title = ?, date = ?, notes = ?, value = ?, room_id = ?,
		        updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		p.Title, p.Date, p.Notes, p.Value, p.RoomID, id,
	)
	if err != nil {
		return fmt.Errorf("updating item: %w", err)
	}
	if err := affected(result); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM item_tags WHERE item_id = ?`, id); err != nil {
		return fmt.Errorf("clearing item tags: %w", err)
	}
	if err := setItemTags(ctx, tx, id, p.TagIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing item update: %w", err)
	}
	return nil
}

// DeleteItem deletes an item and its tag links.
func DeleteItem(ctx context.Context, db *sql.DB, id int64) error {
	result, err := db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting item: %w", err)
	}
	return affected(result)
}

// CountItems returns the number of items.
func CountItems(ctx context.Context, db *sql.DB) (int, error) {
	n, err := count(ctx, db, `SELECT COUNT(*) FROM items`)
	if err != nil {
		return 0, fmt.Errorf("counting items: %w", err)
	}
	return n, nil
}

// SetItemImage sets an item's photo and its orientation correction.
func SetItemImage(ctx context.Context, db *sql.DB, id int64, image []byte, mime string, orientation int) error {
	result, err := db.ExecContext(ctx,
		`UPDATE items SET image = ?, image_mime = ?, image_orientation = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		image, mime, orientation, id,
	)
	if err != nil {
		return fmt.Errorf("setting item image: %w", err)
	}
	return affected(result)
}

// GetItemImage returns an item's photo, MIME type and orientation. data is
// nil when the item has no photo.
func GetItemImage(ctx context.Context, db *sql.DB, id int64) (data []byte, mime string, orientation int, err error) {
	var m sql.NullString
	err = db.QueryRowContext(ctx,
		`SELECT image, image_mime, image_orientation FROM items WHERE id = ?`, id,
	).Scan(&data, &m, &orientation)
	if err == sql.ErrNoRows {
		return nil, "", 0, nil
	}
	if err != nil {
		return nil, "", 0, fmt.Errorf("getting item image: %w", err)
	}
	return data, m.String, orientation, nil
}

func checkRoom(ctx context.Context, q querier, roomID *int64) error {
	if roomID == nil {
		return nil
	}
	n, err := count(ctx, q, `SELECT COUNT(*) FROM rooms WHERE id = ?`, *roomID)
	if err != nil {
		return fmt.Errorf("checking room: %w", err)
	}
	if n == 0 {
		return ErrUnknownRoom
	}
	return nil
}

// setItemTags links tags to an item in order. Repeated IDs keep their first
// position.
func setItemTags(ctx context.Context, q querier, itemID int64, tagIDs []int64) error {
	seen := make(map[int64]bool, len(tagIDs))
	position := 0
	for _, tagID := range tagIDs {
		if seen[tagID] {
			continue
		}
		seen[tagID] = true

		n, err := count(ctx, q, `SELECT COUNT(*) FROM tags WHERE id = ?`, tagID)
		if err != nil {
			return fmt.Errorf("checking tag: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("tag %d: %w", tagID, ErrUnknownTag)
		}

		if _, err := q.ExecContext(ctx,
			`INSERT INTO item_tags (item_id, tag_id, position) VALUES (?, ?, ?)`,
			itemID, tagID, position,
		); err != nil {
			return fmt.Errorf("linking tag: %w", err)
		}
		position++
	}
	return nil
}

// queryItems runs an itemsQuery and closes its rows before returning, so the
// single pooled connection is free for follow-up queries.
func queryItems(ctx context.Context, q querier, query string, args ...any) ([]model.Item, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.Item{}
	for rows.Next() {
		var item model.Item
		var imageMime, roomTitle sql.NullString
		var roomPosition sql.NullInt64
		var roomCreatedAt *time.Time
		if err := rows.Scan(
			&item.ID, &item.Title, &item.Date, &item.Notes, &item.Value, &item.RoomID,
			&imageMime, &item.ImageOrientation, &item.CreatedAt, &item.UpdatedAt,
			&roomTitle, &roomPosition, &roomCreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning item: %w", err)
		}
		item.ImageMime = imageMime.String
		item.Tags = []model.Tag{}
		if item.RoomID != nil {
			item.Room = &model.Room{
				ID:       *item.RoomID,
				Title:    roomTitle.String,
				Position: int(roomPosition.Int64),
			}
			if roomCreatedAt != nil {
				item.Room.CreatedAt = *roomCreatedAt
			}
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// attachTags loads the ordered tag lists for items in one query.
func attachTags(ctx context.Context, q querier, items []model.Item) error {
	if len(items) == 0 {
		return nil
	}

	byID := make(map[int64]*model.Item, len(items))
	ids := make([]int64, len(items))
	for i := range items {
		byID[items[i].ID] = &items[i]
		ids[i] = items[i].ID
	}

	query, args, err := sq.Select("it.item_id", "t.id", "t.text", "t.color", "t.created_at").
		From("item_tags it").
		Join("tags t ON t.id = it.tag_id").
		Where(sq.Eq{"it.item_id": ids}).
		OrderBy("it.item_id", "it.position").
		ToSql()
	if err != nil {
		return fmt.Errorf("building item tags query: %w", err)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("listing item tags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var itemID int64
		var tag model.Tag
		if err := rows.Scan(&itemID, &tag.ID, &tag.Text, &tag.Color, &tag.CreatedAt); err != nil {
			return fmt.Errorf("scanning item tag: %w", err)
		}
		if item := byID[itemID]; item != nil {
			item.Tags = append(item.Tags, tag)
		}
	}
	return rows.Err()
}
