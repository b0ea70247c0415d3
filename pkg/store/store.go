package store

import (
	"context"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/vango-dev/mkdom/internal/errors"
)

// Store reads and writes documents by key.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

// Location is a parsed document location.
type Location struct {
	// Bucket is set for s3:// locations.
	Bucket string
	// Key is the object key for s3 and the file name for local paths.
	Key string
	// Dir is the directory of a local path.
	Dir string
}

// IsS3 reports whether the location names an S3 object.
func (l Location) IsS3() bool {
	return l.Bucket != ""
}

// String returns the location in the form Parse accepts.
func (l Location) String() string {
	if l.IsS3() {
		return "s3://" + l.Bucket + "/" + l.Key
	}
	return filepath.Join(l.Dir, l.Key)
}

// Parse splits loc into a bucket and key for s3:// URLs or a directory and
// file name for local paths.
func Parse(loc string) (Location, error) {
	if loc == "" {
		return Location{}, errors.New("E182").WithDetail("empty location")
	}
	if !strings.HasPrefix(loc, "s3://") {
		dir, file := filepath.Split(filepath.Clean(loc))
		if file == "" || file == "." || file == string(filepath.Separator) {
			return Location{}, errors.New("E182").WithDetailf("%q is not a file path", loc)
		}
		if dir == "" {
			dir = "."
		}
		return Location{Dir: dir, Key: file}, nil
	}

	u, err := url.Parse(loc)
	if err != nil {
		return Location{}, errors.New("E182").WithDetailf("%q", loc).Wrap(err)
	}
	key := strings.TrimPrefix(u.Path, "/")
	if u.Host == "" || key == "" {
		return Location{}, errors.New("E182").
			WithDetailf("%q needs a bucket and a key", loc).
			WithSuggestion("Use s3://bucket/path/to/page.html")
	}
	return Location{Bucket: u.Host, Key: key}, nil
}

// Open parses loc and returns a store for it along with the key to use.
func Open(ctx context.Context, loc string, s3cfg S3Config) (Store, string, error) {
	l, err := Parse(loc)
	if err != nil {
		return nil, "", err
	}
	if l.IsS3() {
		client, err := NewS3Client(ctx, s3cfg)
		if err != nil {
			return nil, "", err
		}
		return NewS3Store(client, l.Bucket, ""), l.Key, nil
	}
	st, err := NewDiskStore(l.Dir)
	if err != nil {
		return nil, "", err
	}
	return st, l.Key, nil
}
