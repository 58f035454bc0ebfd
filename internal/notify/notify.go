// Package notify selects the failure notifier configured for the deployment.
package notify

import (
	"fmt"

	"exportbridge/internal/config"
	"exportbridge/internal/notify/noop"
	"exportbridge/internal/notify/ses"
	"exportbridge/internal/port"
)

// New returns the notifier for cfg.Provider ("noop" or "ses").
func New(cfg *config.NotifyConfig) (port.FailureNotifier, error) {
	switch cfg.Provider {
	case "", "noop":
		return noop.NewNoopNotifier(), nil
	case "ses":
		return ses.NewSESNotifier(cfg)
	default:
		return nil, fmt.Errorf("unknown notify provider: %s", cfg.Provider)
	}
}
