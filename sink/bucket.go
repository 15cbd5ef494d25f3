package sink

import (
	"context"
	"mime"
	"path"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // file:// URLs
	_ "gocloud.dev/blob/gcsblob"  // gs:// URLs
	_ "gocloud.dev/blob/memblob"  // mem:// URLs
	_ "gocloud.dev/blob/s3blob"   // s3:// URLs
)

// Bucket writes artifacts to a gocloud.dev blob bucket.
type Bucket struct {
	bucket *blob.Bucket
}

// NewBucket wraps an already opened bucket. Closing the Sink closes the
// bucket.
func NewBucket(b *blob.Bucket) *Bucket {
	return &Bucket{bucket: b}
}

// OpenBucket opens the bucket at url, for example "mem://" or
// "s3://bucket?region=us-east-2".
func OpenBucket(ctx context.Context, url string) (*Bucket, error) {
	b, err := blob.OpenBucket(ctx, url)
	if err != nil {
		return nil, err
	}
	return NewBucket(b), nil
}

// Bucket returns the underlying bucket.
func (b *Bucket) Bucket() *blob.Bucket {
	return b.bucket
}

// Put writes data to key, replacing any existing object.
func (b *Bucket) Put(ctx context.Context, key string, data []byte) error {
	if !ValidKey(key) {
		return errBadKey
	}
	return b.bucket.WriteAll(ctx, key, data, &blob.WriterOptions{
		ContentType: mime.TypeByExtension(path.Ext(key)),
	})
}

// Close closes the underlying bucket.
func (b *Bucket) Close() error {
	return b.bucket.Close()
}
