package storage

import (
	"context"
	"errors"

	"github.com/codeelevater/alumni-connect/pkg/retry"
)

type retrying struct {
	next KV
	cfg  retry.Config
}

// WithRetry retries transient failures of a remote backend. A missing key is
// reported immediately.
func WithRetry(kv KV, cfg retry.Config) KV {
	return &retrying{next: kv, cfg: cfg}
}

func (r *retrying) Name() string { return r.next.Name() }

func (r *retrying) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := retry.DoWithResult(ctx, r.cfg, r.next.Name()+".get", func() ([]byte, error) {
		value, err := r.next.Get(ctx, key)
		if errors.Is(err, ErrNotFound) {
			return nil, retry.Permanent(err)
		}
		return value, err
	})
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNotFound
	}
	return value, err
}

func (r *retrying) Put(ctx context.Context, key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	return retry.Do(ctx, r.cfg, r.next.Name()+".put", func() error {
		return r.next.Put(ctx, key, value)
	})
}
