package deepzoom

import (
	"context"
	"io/ioutil"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bodgit/deepzoom/sink"
	"github.com/bodgit/deepzoom/tile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler(t *testing.T) {
	dir := t.TempDir()
	s, err := sink.NewDir(dir)
	require.NoError(t, err)

	tiler, err := New(s, discard, Options{Name: "andromeda", TileSize: tile.DefaultSize})
	require.NoError(t, err)
	_, err = tiler.GenerateImage(context.Background(), testImage(20, 10))
	require.NoError(t, err)

	ts := httptest.NewServer(NewHandler(dir, []string{"https://viewer.example.com"}))
	defer ts.Close()

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/andromeda.dzi", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://viewer.example.com")

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "https://viewer.example.com", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Content-Type"), "xml")

	b, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)
	want, err := os.ReadFile(filepath.Join(dir, "andromeda.dzi"))
	require.NoError(t, err)
	assert.Equal(t, want, b)

	resp, err = ts.Client().Get(ts.URL + "/andromeda_files/5/0_0.jpg")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/jpeg", resp.Header.Get("Content-Type"))
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestServe(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	l.Close()

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		errc <- Serve(ctx, discard, addr, NewHandler(t.TempDir(), nil))
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/missing")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusNotFound
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	assert.NoError(t, <-errc)
}
