package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const guardTTL = 10 * time.Minute

// DispatchGuard serialises ticket dispatch per participation record so that
// overlapping dispatch runs cannot send the same ticket twice.
// Key format: ticket-dispatch:<participation_id>
type DispatchGuard struct {
	client *redis.Client
}

// NewDispatchGuard creates a DispatchGuard wrapping the given Redis client.
func NewDispatchGuard(client *redis.Client) *DispatchGuard {
	return &DispatchGuard{client: client}
}

// Acquire attempts to claim the dispatch slot for a participation record.
// It returns false when another worker already holds it. The claim expires
// after guardTTL so a crashed worker cannot block dispatch forever.
func (g *DispatchGuard) Acquire(ctx context.Context, participationID string) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(participationID), "1", guardTTL).Result()
	if err != nil {
		return false, fmt.Errorf("dispatch guard acquire: %w", err)
	}
	return ok, nil
}

// Release frees the dispatch slot so a later run may retry the record.
func (g *DispatchGuard) Release(ctx context.Context, participationID string) error {
	if err := g.client.Del(ctx, g.key(participationID)).Err(); err != nil {
		return fmt.Errorf("dispatch guard release: %w", err)
	}
	return nil
}

func (g *DispatchGuard) key(participationID string) string {
	return fmt.Sprintf("ticket-dispatch:%s", participationID)
}
