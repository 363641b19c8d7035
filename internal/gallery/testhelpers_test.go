package gallery

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"sync"
	"testing"
	"time"

	"djazair-backend/internal/cache"
	"djazair-backend/internal/db/dbtest"

	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

type memContent struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
}

func newMemContent() *memContent {
	return &memContent{objects: make(map[string][]byte)}
}

func (m *memContent) Put(_ context.Context, key string, data []byte, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = append([]byte(nil), data...)
	return nil
}

func (m *memContent) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[key]
	if !ok {
		return nil, ErrContentNotFound
	}
	return data, nil
}

func (m *memContent) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	m.deleted = append(m.deleted, key)
	return nil
}

// newTestService returns a service on a fresh database whose clock advances
// one second per call, so listing order is deterministic.
func newTestService(t *testing.T, content ContentStore, c cache.Cache) *Service {
	t.Helper()
	svc := NewService(NewRepository(dbtest.Open(t)), content, c, time.Minute, nil)
	clock := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	return svc
}
