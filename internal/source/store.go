package source

import (
	"context"
	"errors"
	"strings"

	"github.com/nicolagi/orgdiff/internal/config"
)

var ErrNotFound = errors.New("not found")

// Store fetches the raw contents of a document given its path.
type Store interface {
	Get(ctx context.Context, path string) ([]byte, error)
}

const s3Scheme = "s3://"

// Router sends s3:// paths to the S3 store and everything else to the
// local store.
type Router struct {
	Local Store
	S3    Store
}

var _ Store = (*Router)(nil)

// NewStore returns a router reading local paths relative to the working
// directory and s3:// paths with the configured region and profile. No
// AWS session is created until an s3:// path is requested.
func NewStore(c *config.C) *Router {
	return &Router{
		Local: NewDiskStore(""),
		S3:    newS3Store(c.S3Region, c.S3Profile),
	}
}

func (r *Router) Get(ctx context.Context, path string) ([]byte, error) {
	if strings.HasPrefix(path, s3Scheme) {
		if r.S3 == nil {
			return nil, errorf("Router.Get", "%q: no S3 store", path)
		}
		return r.S3.Get(ctx, path)
	}
	if r.Local == nil {
		return nil, errorf("Router.Get", "%q: no local store", path)
	}
	return r.Local.Get(ctx, path)
}
