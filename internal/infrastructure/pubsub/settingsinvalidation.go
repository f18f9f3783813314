// Package pubsub carries cross-instance cache invalidations over redis.
package pubsub

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"galerie/internal/shared/logger"
)

const settingsInvalidationChannel = "galerie:settings:invalidate"

// SettingsInvalidator publishes and consumes settings-cache invalidation
// messages so one instance's write evicts the other instances' cached copy
// before the TTL runs out.
type SettingsInvalidator struct {
	client *redis.Client
	log    logger.Interface
}

func NewSettingsInvalidator(client *redis.Client, log logger.Interface) *SettingsInvalidator {
	return &SettingsInvalidator{
		client: client,
		log:    log.With("component", "pubsub.settings"),
	}
}

// PublishInvalidation broadcasts that (key, tenant) changed.
func (s *SettingsInvalidator) PublishInvalidation(ctx context.Context, tenantID uint, key string) error {
	payload := fmt.Sprintf("%d:%s", tenantID, key)
	if err := s.client.Publish(ctx, settingsInvalidationChannel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish invalidation: %w", err)
	}
	return nil
}

// Subscribe consumes invalidations until ctx is cancelled, calling
// invalidate for every message. Run it in its own goroutine.
func (s *SettingsInvalidator) Subscribe(ctx context.Context, invalidate func(tenantID uint, key string)) {
	sub := s.client.Subscribe(ctx, settingsInvalidationChannel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			tenantID, key, err := parseInvalidation(msg.Payload)
			if err != nil {
				s.log.Warnw("invalid invalidation payload", "payload", msg.Payload, "error", err)
				continue
			}
			invalidate(tenantID, key)
		}
	}
}

func parseInvalidation(payload string) (uint, string, error) {
	parts := strings.SplitN(payload, ":", 2)
	if len(parts) != 2 {
		return 0, "", fmt.Errorf("malformed payload %q", payload)
	}
	id, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return 0, "", fmt.Errorf("malformed tenant id %q", parts[0])
	}
	return uint(id), parts[1], nil
}
