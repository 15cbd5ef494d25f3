package deepzoom

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		if r.URL.Path != "/image.jpg" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte("pixels"))
	}))
	defer ts.Close()

	ctx := context.Background()
	file := filepath.Join(t.TempDir(), "image.jpg")

	fetched, err := Fetch(ctx, ts.Client(), discard, ts.URL+"/image.jpg", file)
	require.NoError(t, err)
	assert.True(t, fetched)

	b, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "pixels", string(b))

	// Second fetch reuses the file
	fetched, err = Fetch(ctx, ts.Client(), discard, ts.URL+"/image.jpg", file)
	require.NoError(t, err)
	assert.False(t, fetched)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestFetchNotFound(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	dir := t.TempDir()
	file := filepath.Join(dir, "image.jpg")

	_, err := Fetch(context.Background(), nil, discard, ts.URL+"/missing.jpg", file)
	assert.Error(t, err)

	_, err = os.Stat(file)
	assert.True(t, os.IsNotExist(err))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
