package source

import (
	"context"
	"fmt"
	"sync"
)

// InMemory implements Store, meant to be used in unit tests in other packages.
type InMemory struct {
	sync.Mutex
	m map[string][]byte
}

func (s *InMemory) Get(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.Lock()
	defer s.Unlock()
	v, ok := s.m[path]
	if !ok {
		return nil, fmt.Errorf("%q: %w", path, ErrNotFound)
	}
	return v, nil
}

func (s *InMemory) Put(path string, contents []byte) {
	s.Lock()
	defer s.Unlock()
	if s.m == nil {
		s.m = make(map[string][]byte)
	}
	s.m[path] = contents
}
