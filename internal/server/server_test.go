package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/roomboard/internal/config"
	"github.com/erazemk/roomboard/internal/db"
	"github.com/erazemk/roomboard/internal/prefs"
	"github.com/erazemk/roomboard/internal/store"
)

func TestInitAccount(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	password, err := InitAccount(ctx, database, "keeper")
	require.NoError(t, err)
	assert.Len(t, password, 16)

	user, err := store.GetUserByUsername(ctx, database, "keeper")
	require.NoError(t, err)
	require.NotNil(t, user)

	_, err = InitAccount(ctx, database, "other")
	assert.ErrorIs(t, err, ErrAlreadyInitialized)
}

func TestInstallDefaultTagsOnce(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	p := &store.Preferences{DB: database}

	require.NoError(t, InstallDefaultTagsOnce(ctx, database, p))
	n, err := store.CountTags(ctx, database)
	require.NoError(t, err)
	assert.Equal(t, len(store.DefaultTags), n)

	installed, err := p.Bool(ctx, prefs.KeyInstalledDefaultTags)
	require.NoError(t, err)
	assert.True(t, installed)

	// Deleted defaults are not reinstalled.
	tags, _ := store.ListTags(ctx, database)
	require.NoError(t, store.DeleteTag(ctx, database, tags[0].ID))
	require.NoError(t, InstallDefaultTagsOnce(ctx, database, p))
	n, _ = store.CountTags(ctx, database)
	assert.Equal(t, len(store.DefaultTags)-1, n)
}

func TestGeneratePassword(t *testing.T) {
	a, err := GeneratePassword(24)
	require.NoError(t, err)
	b, err := GeneratePassword(24)
	require.NoError(t, err)
	assert.Len(t, a, 24)
	assert.NotEqual(t, a, b)
}

func TestServerRunAndShutdown(t *testing.T) {
	database := db.NewTestDB(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	password, err := InitAccount(ctx, database, "admin")
	require.NoError(t, err)

	cfg := config.Default()
	srv, err := New(ctx, &cfg, database)
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx, ln) }()

	body, _ := json.Marshal(map[string]string{"username": "admin", "password": password})
	resp, err := http.Post("http://"+ln.Addr().String()+"/api/auth/login", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
