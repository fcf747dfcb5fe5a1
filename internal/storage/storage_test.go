package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStore(t *testing.T) Store {
	t.Helper()
	s, err := NewFSStore(t.TempDir(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return s
}

func TestPutAndOpenBlob(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	content := "pdf bytes here"

	blob, err := s.Put(ctx, "Match CSMF.PDF", strings.NewReader(content))
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(blob.Key, ".pdf"), "key %q should keep a lowercased extension", blob.Key)
	assert.True(t, strings.HasPrefix(blob.URL, "file://"))
	assert.Equal(t, int64(len(content)), blob.Size)

	sum := sha256.Sum256([]byte(content))
	assert.Equal(t, hex.EncodeToString(sum[:]), blob.SHA256Hex)

	rc, err := s.Open(ctx, blob.Key)
	require.NoError(t, err)
	defer rc.Close()
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, content, string(got))
}

func TestPutSameFilenameTwice(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	a, err := s.Put(ctx, "match.pdf", strings.NewReader("first"))
	require.NoError(t, err)
	b, err := s.Put(ctx, "match.pdf", strings.NewReader("second"))
	require.NoError(t, err)

	assert.NotEqual(t, a.Key, b.Key)
}

func TestDeleteBlob(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	blob, err := s.Put(ctx, "match.xlsx", strings.NewReader("rows"))
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, blob.Key))
	_, err = s.Open(ctx, blob.Key)
	assert.Error(t, err)
}
