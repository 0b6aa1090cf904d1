package store

import (
	"context"
	"errors"
	"testing"

	"github.com/erazemk/roomboard/internal/db"
)

func TestCreateAndListTags(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateTag(ctx, database, "Zebra", "#000000")
	tag, err := CreateTag(ctx, database, "Apple", "#FF0000")
	if err != nil {
		t.Fatalf("CreateTag: %v", err)
	}
	if tag.Color != "#FF0000" {
		t.Errorf("expected color '#FF0000', got %q", tag.Color)
	}

	tags, err := ListTags(ctx, database)
	if err != nil {
		t.Fatalf("ListTags: %v", err)
	}
	if len(tags) != 2 || tags[0].Text != "Apple" || tags[1].Text != "Zebra" {
		t.Errorf("expected tags sorted by text, got %+v", tags)
	}
}

func TestUpdateAndDeleteTag(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	tag, _ := CreateTag(ctx, database, "Old", "#000000")
	item, _ := CreateItem(ctx, database, ItemParams{Title: "Box", TagIDs: []int64{tag.ID}})

	if err := UpdateTag(ctx, database, tag.ID, "New", "#FFFFFF"); err != nil {
		t.Fatalf("UpdateTag: %v", err)
	}
	got, _ := GetItem(ctx, database, item.ID)
	if len(got.Tags) != 1 || got.Tags[0].Text != "New" {
		t.Errorf("expected item to see renamed tag, got %+v", got.Tags)
	}

	if err := DeleteTag(ctx, database, tag.ID); err != nil {
		t.Fatalf("DeleteTag: %v", err)
	}
	got, _ = GetItem(ctx, database, item.ID)
	if len(got.Tags) != 0 {
		t.Errorf("expected tag removed from item, got %+v", got.Tags)
	}

	if err := DeleteTag(ctx, database, tag.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestInstallDefaultTags(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	CreateTag(ctx, database, "Custom", "#123456")

	tags, err := InstallDefaultTags(ctx, database)
	if err != nil {
		t.Fatalf("InstallDefaultTags: %v", err)
	}
	if len(tags) != len(DefaultTags) {
		t.Fatalf("expected %d tags, got %d", len(DefaultTags), len(tags))
	}
	for i, want := range DefaultTags {
		if tags[i].Text != want.Text || tags[i].Color != want.Color {
			t.Errorf("tags[%d] = %s %s, want %s %s", i, tags[i].Text, tags[i].Color, want.Text, want.Color)
		}
	}
}
