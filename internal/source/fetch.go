package source

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// FetchAll gets the documents at the given paths concurrently. The
// contents are returned in the order of the paths. The first error
// cancels the remaining fetches and is returned.
func FetchAll(ctx context.Context, s Store, paths ...string) ([][]byte, error) {
	contents := make([][]byte, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			start := time.Now()
			b, err := s.Get(ctx, path)
			if err != nil {
				return err
			}
			log.WithFields(log.Fields{
				"path":    path,
				"bytes":   len(b),
				"elapsed": time.Since(start),
			}).Debug("Fetched document")
			contents[i] = b
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return contents, nil
}
