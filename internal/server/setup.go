package server

import (
	"context"
	"crypto/rand"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/erazemk/roomboard/internal/auth"
	"github.com/erazemk/roomboard/internal/prefs"
	"github.com/erazemk/roomboard/internal/store"
)

// ErrAlreadyInitialized is returned by InitAccount when an account exists.
var ErrAlreadyInitialized = errors.New("account already exists")

// InitAccount creates the single account with a random password and returns
// the password.
func InitAccount(ctx context.Context, db *sql.DB, username string) (string, error) {
	n, err := store.CountUsers(ctx, db)
	if err != nil {
		return "", err
	}
	if n > 0 {
		return "", ErrAlreadyInitialized
	}

	password, err := GeneratePassword(16)
	if err != nil {
		return "", fmt.Errorf("generating password: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", err
	}

	if _, err := store.CreateUser(ctx, db, username, hash); err != nil {
		return "", fmt.Errorf("creating account: %w", err)
	}
	return password, nil
}

// InstallDefaultTagsOnce installs the starter tags on first run and records
// that it did, so deleting them later sticks.
func InstallDefaultTagsOnce(ctx context.Context, db *sql.DB, p prefs.Store) error {
	installed, err := p.Bool(ctx, prefs.KeyInstalledDefaultTags)
	if err != nil {
		return fmt.Errorf("reading default tags flag: %w", err)
	}
	if installed {
		return nil
	}

	tags, err := store.InstallDefaultTags(ctx, db)
	if err != nil {
		return err
	}
	if err := p.SetBool(ctx, prefs.KeyInstalledDefaultTags, true); err != nil {
		return fmt.Errorf("recording default tags: %w", err)
	}

	slog.Info("installed default tags", "count", len(tags))
	return nil
}

// GeneratePassword creates a random password of the given length.
func GeneratePassword(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%&*"
	result := make([]byte, length)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		result[i] = charset[n.Int64()]
	}
	return string(result), nil
}
