// Package redisstore persists users, sessions, carts, bookings and sold
// seats in Redis as JSON records under fixed keys.
package redisstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"luxetickets/internal/status"
)

const (
	usersKey         = "luxetickets:users"
	usersIndexKey    = "luxetickets:users:index"
	userVersionFn    = "luxetickets:users:version:%s"
	sessionPrefix    = "luxetickets:session:"
	cartPrefix       = "luxetickets:cart:"
	bookingsKey      = "luxetickets:bookings"
	bookingVersionFn = "luxetickets:bookings:version:%s"
	userBookingsFn   = "luxetickets:bookings:user:%s"
	seatKeyFn        = "seat:%s"

	maxTxRetries = 5
)

// Records share one hash, so writers bump a per-record version key and
// transactions WATCH that key instead of the whole hash.
func bookingVersionKey(id string) string {
	return fmt.Sprintf(bookingVersionFn, id)
}

func userVersionKey(id string) string {
	return fmt.Sprintf(userVersionFn, id)
}

// watchWithRetry runs fn in an optimistic transaction over keys, retrying
// while another client modifies a watched key.
func watchWithRetry(ctx context.Context, client *redis.Client, fn func(tx *redis.Tx) error, keys ...string) error {
	for attempt := 0; attempt < maxTxRetries; attempt++ {
		err := client.Watch(ctx, fn, keys...)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", status.ErrConcurrentUpdate, keys)
}
