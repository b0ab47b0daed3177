package service

import (
	"context"
	"io"
	"strings"
	"testing"

	"campus_lms_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageProviderRoundTrip(t *testing.T) {
	provider := &LocalStorageProvider{Config: &config.StorageConfig{LocalPath: t.TempDir()}}
	ctx := context.Background()

	body := "User,Campus\nAna,North\n"
	key, err := provider.Upload(ctx, "exports/test.csv", strings.NewReader(body), int64(len(body)), "text/csv")
	require.NoError(t, err)
	assert.Equal(t, "exports/test.csv", key)

	reader, err := provider.Download(ctx, key)
	require.NoError(t, err)
	defer reader.Close()

	got, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, body, string(got))

	require.NoError(t, provider.Delete(ctx, key))
	_, err = provider.Download(ctx, key)
	assert.Error(t, err)
}

func TestNewStorageProviderDefaultsToLocal(t *testing.T) {
	provider, err := NewStorageProvider(&config.Config{})
	require.NoError(t, err)
	assert.IsType(t, &LocalStorageProvider{}, provider)

	_, err = NewStorageProvider(&config.Config{Storage: config.StorageConfig{Type: "carrier-pigeon"}})
	assert.Error(t, err)
}
