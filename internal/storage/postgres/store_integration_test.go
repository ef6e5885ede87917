package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/bookshop-be/internal/models"
	"github.com/hongminglow/bookshop-be/internal/storage"
)

// TestStoreIntegration exercises the user store against a live database.
func TestStoreIntegration(t *testing.T) {
	if os.Getenv("RUN_STORE_INTEGRATION") != "true" {
		t.Skip("set RUN_STORE_INTEGRATION=true to run this integration test")
	}

	loadDotEnv()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()
	store, err := NewUserStore(ctx, dbURL)
	require.NoError(t, err)
	defer store.Close()

	now := time.Now()
	email := fmt.Sprintf("storetest_%d@example.com", now.UnixNano())
	created, err := store.CreateUser(ctx, models.User{ID: now.UnixMilli(), Email: email, PasswordHash: "hash"})
	require.NoError(t, err)
	assert.Equal(t, email, created.Email)

	found, err := store.FindByEmail(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, "hash", found.PasswordHash)

	_, err = store.CreateUser(ctx, models.User{ID: created.ID, Email: email, PasswordHash: "other"})
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)

	_, err = store.FindByEmail(ctx, "missing_"+email)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func loadDotEnv() {
	paths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}
	for _, path := range paths {
		_ = godotenv.Overload(path)
	}
}
