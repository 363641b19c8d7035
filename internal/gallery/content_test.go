package gallery

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 serves path-style object requests for a single bucket from memory.
type fakeS3 struct {
	mu      sync.Mutex
	bucket  string
	objects map[string][]byte
	types   map[string]string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/")
	bucket, key, _ := strings.Cut(path, "/")
	if bucket != f.bucket {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	switch {
	case r.Method == http.MethodHead && key == "":
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.objects[key] = body
		f.types[key] = r.Header.Get("Content-Type")
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodGet:
		body, ok := f.objects[key]
		if !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>missing</Message></Error>`)
			return
		}
		w.Header().Set("Content-Type", f.types[key])
		_, _ = w.Write(body)
	case r.Method == http.MethodDelete:
		delete(f.objects, key)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newFakeS3(t *testing.T) (*fakeS3, *S3Content) {
	t.Helper()
	fake := &fakeS3{bucket: "gallery", objects: map[string][]byte{}, types: map[string]string{}}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	store, err := NewS3Content(context.Background(), S3Config{
		Endpoint:  srv.URL,
		Region:    "us-east-1",
		Bucket:    "gallery",
		AccessKey: "test",
		SecretKey: "test",
	})
	require.NoError(t, err)
	return fake, store
}

func TestS3ContentRoundTrip(t *testing.T) {
	ctx := context.Background()
	fake, store := newFakeS3(t)

	require.NoError(t, store.Ping(ctx))

	data := []byte("\x89PNG fake")
	key := NewContentKey()
	assert.True(t, strings.HasPrefix(key, "images/"))
	assert.NotEqual(t, key, NewContentKey())

	require.NoError(t, store.Put(ctx, key, data, "image/png"))
	assert.Equal(t, data, fake.objects[key])
	assert.Equal(t, "image/png", fake.types[key])

	got, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	require.NoError(t, store.Delete(ctx, key))
	_, err = store.Get(ctx, key)
	assert.ErrorIs(t, err, ErrContentNotFound)
}

func TestServiceWithS3Content(t *testing.T) {
	ctx := context.Background()
	fake, store := newFakeS3(t)
	svc := newTestService(t, store, nil)
	data := pngBytes(t, 2, 2)

	item, err := svc.Create(ctx, Upload{Data: data, Mime: "image/png"})
	require.NoError(t, err)
	img, err := svc.repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Contains(t, fake.objects, img.StorageKey)

	blob, err := svc.Fetch(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, data, blob.Data)

	require.NoError(t, svc.Delete(ctx, 1))
	assert.Empty(t, fake.objects)
	assert.Equal(t, "1", item.PublicID)
}
