package storage

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

// fakeS3 serves path-style GetObject and PutObject for a single bucket
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch r.Method {
	case http.MethodGet:
		body, ok := f.objects[r.URL.Path]
		if !ok {
			w.Header().Set("Content-Type", "application/xml")
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>missing</Message></Error>`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	case http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.objects[r.URL.Path] = body
		w.WriteHeader(http.StatusOK)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func newTestS3(t *testing.T) (*S3KV, *fakeS3) {
	t.Helper()
	fake := &fakeS3{objects: map[string][]byte{
		"/snapshots/snap/students.json": []byte(`[{"id":"student_1"}]`),
	}}
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	kv := NewS3(S3Options{
		Bucket:          "snapshots",
		Endpoint:        server.URL,
		Region:          "us-east-1",
		AccessKeyID:     "test",
		SecretAccessKey: "test",
		Prefix:          "snap/",
	})
	return kv, fake
}

func TestS3KV_Get(t *testing.T) {
	kv, _ := newTestS3(t)

	value, err := kv.Get(context.Background(), "students")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"student_1"}]`, string(value))
}

func TestS3KV_GetMissing(t *testing.T) {
	kv, _ := newTestS3(t)

	_, err := kv.Get(context.Background(), "events")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestS3KV_Put(t *testing.T) {
	kv, fake := newTestS3(t)

	require.NoError(t, kv.Put(context.Background(), "events", []byte(`[]`)))

	fake.mu.Lock()
	defer fake.mu.Unlock()
	stored, ok := fake.objects["/snapshots/snap/events.json"]
	require.True(t, ok)
	assert.True(t, strings.Contains(string(stored), `[]`))
}
