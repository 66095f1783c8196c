// posthog_client.go wraps posthog.Client so callers need not care whether analytics is configured.
package utils

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

// PosthogClientWrapper forwards wizard analytics events to PostHog.
type PosthogClientWrapper struct {
	posthogClient posthog.Client
	logger        *slog.Logger
}

// InitializePosthogClient returns a wrapper; with an empty key every call is a no-op.
func InitializePosthogClient(apiKey, endpoint string, logger *slog.Logger) *PosthogClientWrapper {
	if apiKey == "" {
		logger.Warn("Posthog API key is empty, analytics disabled")
		return &PosthogClientWrapper{}
	}
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: endpoint})
	if err != nil {
		logger.Error("Failed to initialize posthog client", slog.String("error", err.Error()))
		return &PosthogClientWrapper{}
	}
	return &PosthogClientWrapper{posthogClient: client, logger: logger}
}

func (w *PosthogClientWrapper) IsInitialized() bool {
	return w != nil && w.posthogClient != nil
}

// Enqueue queues one event for asynchronous delivery.
func (w *PosthogClientWrapper) Enqueue(distinctID string, event string, properties map[string]any) {
	if !w.IsInitialized() {
		return
	}
	w.logger.Debug("Enqueueing analytics event", slog.String("distinct_id", distinctID), slog.String("event", event))
	if err := w.posthogClient.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: properties,
	}); err != nil {
		w.logger.Warn("Failed to enqueue analytics event", slog.String("event", event), slog.String("error", err.Error()))
	}
}

func (w *PosthogClientWrapper) Close() {
	if !w.IsInitialized() {
		return
	}
	_ = w.posthogClient.Close()
}
