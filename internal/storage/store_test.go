package storage

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProofKey(t *testing.T) {
	now := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	key := NewProofKey(now, "image/png")
	assert.True(t, strings.HasPrefix(key, "payment-proofs/2026/03/"))
	assert.True(t, strings.HasSuffix(key, ".png"))
	assert.True(t, strings.HasSuffix(NewProofKey(now, "image/x-unknown"), ".img"))
	assert.NotEqual(t, key, NewProofKey(now, "image/png"))
}

func TestLocalStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	key := "payment-proofs/2026/03/a.png"
	require.NoError(t, store.Save(ctx, key, "image/png", bytes.NewReader([]byte("png-bytes")), 9))

	rc, err := store.Open(ctx, key)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, store.Delete(ctx, key))
	_, err = store.Open(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, store.Delete(ctx, key))
}

func TestLocalStoreRejectsTraversal(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	err = store.Save(context.Background(), "../../etc/passwd", "image/png", strings.NewReader("x"), 1)
	assert.Error(t, err)
}
