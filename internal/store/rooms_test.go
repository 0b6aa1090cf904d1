package store

import (
	"context"
	"errors"
	"testing"

	"github.com/erazemk/roomboard/internal/db"
)

func TestCreateRoomAppends(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	for i, title := range []string{"Kitchen", "Bedroom", "Office"} {
		room, err := CreateRoom(ctx, database, title)
		if err != nil {
			t.Fatalf("CreateRoom: %v", err)
		}
		if room.Position != i {
			t.Errorf("expected position %d for %q, got %d", i, title, room.Position)
		}
	}

	rooms, _ := ListRooms(ctx, database)
	if len(rooms) != 3 || rooms[0].Title != "Kitchen" || rooms[2].Title != "Office" {
		t.Errorf("unexpected rooms: %+v", rooms)
	}
}

func TestReorderRooms(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	a, _ := CreateRoom(ctx, database, "A")
	b, _ := CreateRoom(ctx, database, "B")
	c, _ := CreateRoom(ctx, database, "C")

	if err := ReorderRooms(ctx, database, []int64{c.ID, a.ID, b.ID}); err != nil {
		t.Fatalf("ReorderRooms: %v", err)
	}

	rooms, _ := ListRooms(ctx, database)
	want := []string{"C", "A", "B"}
	for i, r := range rooms {
		if r.Title != want[i] || r.Position != i {
			t.Errorf("rooms[%d] = %q@%d, want %q@%d", i, r.Title, r.Position, want[i], i)
		}
	}

	for _, ids := range [][]int64{
		{a.ID, b.ID},
		{a.ID, b.ID, b.ID},
		{a.ID, b.ID, 999},
	} {
		if err := ReorderRooms(ctx, database, ids); !errors.Is(err, ErrInvalidOrder) {
			t.Errorf("ReorderRooms(%v): expected ErrInvalidOrder, got %v", ids, err)
		}
	}
}

func TestDeleteRoomRenumbers(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateRoom(ctx, database, "A")
	b, _ := CreateRoom(ctx, database, "B")
	CreateRoom(ctx, database, "C")

	placeholder, err := DeleteRoom(ctx, database, b.ID)
	if err != nil {
		t.Fatalf("DeleteRoom: %v", err)
	}
	if placeholder != nil {
		t.Errorf("expected no placeholder, got %+v", placeholder)
	}

	rooms, _ := ListRooms(ctx, database)
	if len(rooms) != 2 || rooms[1].Title != "C" || rooms[1].Position != 1 {
		t.Errorf("unexpected rooms after delete: %+v", rooms)
	}

	if _, err := DeleteRoom(ctx, database, b.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteLastRoomCreatesPlaceholder(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	only, _ := CreateRoom(ctx, database, "Only")

	placeholder, err := DeleteRoom(ctx, database, only.ID)
	if err != nil {
		t.Fatalf("DeleteRoom: %v", err)
	}
	if placeholder == nil {
		t.Fatal("expected placeholder room")
	}
	if placeholder.Title != "" || placeholder.Position != 0 {
		t.Errorf("unexpected placeholder: %+v", placeholder)
	}

	if n, _ := CountRooms(ctx, database); n != 1 {
		t.Errorf("expected 1 room, got %d", n)
	}
}

func TestCompactRooms(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateRoom(ctx, database, "")
	CreateRoom(ctx, database, "Kitchen")
	CreateRoom(ctx, database, "  ")
	CreateRoom(ctx, database, "Office")

	removed, err := CompactRooms(ctx, database)
	if err != nil {
		t.Fatalf("CompactRooms: %v", err)
	}
	if removed != 1 {
		t.Errorf("expected 1 removed, got %d", removed)
	}

	rooms, _ := ListRooms(ctx, database)
	want := []string{"Kitchen", "  ", "Office"}
	if len(rooms) != len(want) {
		t.Fatalf("expected %d rooms, got %d", len(want), len(rooms))
	}
	for i, room := range rooms {
		if room.Title != want[i] || room.Position != i {
			t.Errorf("room %d = %q at %d, want %q at %d", i, room.Title, room.Position, want[i], i)
		}
	}
}

func TestUpdateRoom(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	room, _ := CreateRoom(ctx, database, "")
	if err := UpdateRoom(ctx, database, room.ID, "Hall"); err != nil {
		t.Fatalf("UpdateRoom: %v", err)
	}
	got, _ := GetRoom(ctx, database, room.ID)
	if got.Title != "Hall" {
		t.Errorf("expected 'Hall', got %q", got.Title)
	}
	if err := UpdateRoom(ctx, database, 999, "x"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
