package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = 24 * time.Hour

// PaymentDedup provides idempotency checks for payment confirmations backed
// by Redis. Key format: payment:seen:<payment_id>
type PaymentDedup struct {
	client *redis.Client
}

// NewPaymentDedup creates a PaymentDedup wrapping the given Redis client.
func NewPaymentDedup(client *redis.Client) *PaymentDedup {
	return &PaymentDedup{client: client}
}

// IsDuplicate reports whether this payment id has already been confirmed.
func (d *PaymentDedup) IsDuplicate(ctx context.Context, paymentID string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(paymentID)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this payment id has been confirmed (expires after dedupTTL).
func (d *PaymentDedup) Mark(ctx context.Context, paymentID string) error {
	return d.client.Set(ctx, d.key(paymentID), "1", dedupTTL).Err()
}

func (d *PaymentDedup) key(paymentID string) string {
	return "payment:seen:" + paymentID
}
