package model

import "time"

// Room is a named location. Position defines the manual ordering.
type Room struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}
