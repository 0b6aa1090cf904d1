package model

import "time"

// Item is one cataloged belonging.
type Item struct {
	ID               int64      `json:"id"`
	Title            string     `json:"title"`
	Date             *time.Time `json:"date,omitempty"`
	Notes            string     `json:"notes,omitempty"`
	Value            string     `json:"value,omitempty"`
	RoomID           *int64     `json:"room_id,omitempty"`
	ImageMime        string     `json:"image_mime,omitempty"`
	ImageOrientation int        `json:"image_orientation"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	// Joined fields (not always populated).
	Room *Room `json:"room,omitempty"`
	Tags []Tag `json:"tags"`
}

// RoomTitle returns the owning room's title, or "" when the item has no room.
func (i *Item) RoomTitle() string {
	if i.Room == nil {
		return ""
	}
	return i.Room.Title
}

// HasImage reports whether a photo is attached.
func (i *Item) HasImage() bool {
	return i.ImageMime != ""
}
