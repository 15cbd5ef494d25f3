/*
Package sink implements the destinations a tile pyramid can be written to.

A Sink is a flat key-value store where keys are slash-separated paths such
as "andromeda_files/10/3_2.jpg". Implementations must allow concurrent Puts
to distinct keys. Writing a key that already exists replaces it.
*/
package sink

import (
	"context"
	"errors"
	"io"
	"strings"
)

// Sink is a destination for pyramid artifacts.
type Sink interface {
	Put(ctx context.Context, key string, b []byte) error
	io.Closer
}

var errBadKey = errors.New("sink: invalid key")

// ValidKey reports whether key is a clean, relative, slash-separated path.
func ValidKey(key string) bool {
	if key == "" || strings.HasPrefix(key, "/") {
		return false
	}
	for _, p := range strings.Split(key, "/") {
		if p == "" || p == "." || p == ".." {
			return false
		}
	}
	return true
}

// Open returns a Sink for ref. Anything that looks like a URL, such as
// mem://, file:///tmp/out, s3://bucket or gs://bucket, is opened as a blob
// bucket, otherwise ref is treated as a local directory.
func Open(ctx context.Context, ref string) (Sink, error) {
	if strings.Contains(ref, "://") {
		return OpenBucket(ctx, ref)
	}
	return NewDir(ref)
}
