package trigger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/codeelevater/alumni-connect/pkg/circuitbreaker"
	"github.com/codeelevater/alumni-connect/pkg/httpclient"
	"github.com/codeelevater/alumni-connect/pkg/logger"
	"github.com/codeelevater/alumni-connect/pkg/retry"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// Timeout bounds a single asynchronous trigger delivery including retries
const Timeout = 30 * time.Second

// breaker is shared by all background deliveries so a dead endpoint stops
// accumulating retrying goroutines
var breaker = circuitbreaker.NewCircuitBreaker(circuitbreaker.DefaultConfig("event-trigger"))

// Post sends payload as JSON to triggerURL, retrying transient failures.
// A 4xx response is not retried.
func Post(ctx context.Context, triggerURL string, payload any, httpClient httpclient.Client, cfg retry.Config) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode trigger payload: %w", err)
	}

	return retry.Do(ctx, cfg, "trigger", func() error {
		resp, err := httpClient.Post(triggerURL, "application/json", bytes.NewReader(body))
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			return nil
		case resp.StatusCode >= 400 && resp.StatusCode < 500:
			return retry.Permanent(fmt.Errorf("trigger returned status %d", resp.StatusCode))
		default:
			return fmt.Errorf("trigger returned status %d", resp.StatusCode)
		}
	})
}

// Deliver is Post guarded by cb. An open breaker fails fast without a request.
func Deliver(ctx context.Context, cb *gobreaker.CircuitBreaker, triggerURL string, payload any, httpClient httpclient.Client, cfg retry.Config) error {
	_, err := circuitbreaker.Execute(cb, func() (struct{}, error) {
		return struct{}{}, Post(ctx, triggerURL, payload, httpClient, cfg)
	})
	return err
}

// CallAsync posts payload to triggerURL in the background.
// Failures are logged but don't block the caller.
func CallAsync(triggerURL, recordID string, payload any, httpClient httpclient.Client) {
	if triggerURL == "" {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), Timeout)
		defer cancel()

		if err := Deliver(ctx, breaker, triggerURL, payload, httpClient, retry.WebhookConfig()); err != nil {
			logger.Error("Failed to call trigger URL",
				zap.Error(err),
				zap.String("url", triggerURL),
				zap.String("record_id", recordID))
			return
		}

		logger.Info("Trigger URL called successfully",
			zap.String("url", triggerURL),
			zap.String("record_id", recordID))
	}()
}
