package deepzoom

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
)

// Fetch downloads url to file unless file already exists. It reports
// whether a download took place. The download is written to a temporary
// file alongside file and renamed into place once complete.
func Fetch(ctx context.Context, client *http.Client, logger *log.Logger, url, file string) (bool, error) {
	if _, err := os.Stat(file); err == nil {
		logger.Printf("%q already exists, skipping download\n", file)
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, err
	}

	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}

	logger.Printf("Downloading %s\n", url)
	resp, err := client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("fetch %s: %s", url, resp.Status)
	}

	f, err := os.CreateTemp(filepath.Dir(file), "."+filepath.Base(file)+".*")
	if err != nil {
		return false, err
	}
	defer os.Remove(f.Name())

	n, err := io.Copy(f, resp.Body)
	if err != nil {
		f.Close()
		return false, err
	}
	if err := f.Close(); err != nil {
		return false, err
	}

	if err := os.Rename(f.Name(), file); err != nil {
		return false, err
	}
	logger.Printf("Download complete, %s\n", humanize.Bytes(uint64(n)))

	return true, nil
}
