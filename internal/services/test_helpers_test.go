package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/codeelevater/alumni-connect/config"
	"github.com/codeelevater/alumni-connect/internal/cache"
	"github.com/codeelevater/alumni-connect/internal/repository"
	"github.com/codeelevater/alumni-connect/internal/storage"
	"github.com/codeelevater/alumni-connect/pkg/httpclient"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// toggleKV wraps a KV and rejects writes while failing is set
type toggleKV struct {
	storage.KV
	failing bool
}

func (k *toggleKV) Put(ctx context.Context, key string, value []byte) error {
	if k.failing {
		return errors.New("backend unavailable")
	}
	return k.KV.Put(ctx, key, value)
}

type fixture struct {
	kv        *toggleKV
	store     *repository.Store
	requested *cache.RequestedCache
	config    *config.Config
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	kv := &toggleKV{KV: storage.NewMemory()}
	store := repository.New(kv, repository.WithClock(func() time.Time { return testNow }))
	require.NoError(t, store.Load(context.Background()))

	return &fixture{
		kv:        kv,
		store:     store,
		requested: cache.NewRequestedCache(time.Minute),
		config:    &config.Config{},
	}
}

func (f *fixture) httpClient() httpclient.Client {
	return httpclient.NewStandardClient()
}
