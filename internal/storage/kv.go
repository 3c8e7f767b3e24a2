// Package storage persists collection snapshots under string keys.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/codeelevater/alumni-connect/pkg/logger"
	"github.com/codeelevater/alumni-connect/pkg/metrics"
	"go.uber.org/zap"
)

// ErrNotFound is returned by Get when no value is stored under the key
var ErrNotFound = errors.New("snapshot not found")

// KV is a durable string-keyed byte store. Values are whole JSON documents.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Name() string
}

func validateKey(key string) error {
	if key == "" {
		return fmt.Errorf("snapshot key must not be empty")
	}
	if strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return fmt.Errorf("snapshot key %q contains path characters", key)
	}
	return nil
}

type instrumented struct {
	next KV
}

// Instrument records metrics and logs for every call on kv
func Instrument(kv KV) KV {
	return &instrumented{next: kv}
}

func (i *instrumented) Name() string { return i.next.Name() }

func (i *instrumented) Get(ctx context.Context, key string) ([]byte, error) {
	start := time.Now()
	value, err := i.next.Get(ctx, key)

	status := "success"
	switch {
	case errors.Is(err, ErrNotFound):
		status = "miss"
	case err != nil:
		status = "error"
	}
	i.observe("get", key, status, start, err, zap.Int("size_bytes", len(value)))

	return value, err
}

func (i *instrumented) Put(ctx context.Context, key string, value []byte) error {
	start := time.Now()
	err := i.next.Put(ctx, key, value)

	status := "success"
	if err != nil {
		status = "error"
	}
	i.observe("put", key, status, start, err, zap.Int("size_bytes", len(value)))

	return err
}

func (i *instrumented) observe(operation, key, status string, start time.Time, err error, fields ...zap.Field) {
	duration := metrics.MeasureDuration(start)
	backend := i.next.Name()

	metrics.StorageOperationDuration.WithLabelValues(backend, operation, status).Observe(duration)
	metrics.StorageOperationTotal.WithLabelValues(backend, operation, status).Inc()

	if err != nil && status == "error" {
		fields = append(fields, zap.Error(err))
	}
	logger.LogStorageCall(backend, operation, key, status, duration, fields...)
}
