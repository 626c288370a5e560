package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"luxetickets/internal/services"
	"luxetickets/internal/status"
	"luxetickets/models"
)

type BookingStore struct {
	redis *redis.Client
}

func NewBookingStore(client *redis.Client) *BookingStore {
	return &BookingStore{redis: client}
}

func userBookingsKey(userID string) string {
	return fmt.Sprintf(userBookingsFn, userID)
}

// Insert writes the booking and its user index entry in one MULTI. A
// reused id is rejected.
func (s *BookingStore) Insert(ctx context.Context, booking models.Booking) error {
	data, err := json.Marshal(booking)
	if err != nil {
		return fmt.Errorf("encode booking: %w", err)
	}

	version := bookingVersionKey(booking.ID)
	return watchWithRetry(ctx, s.redis, func(tx *redis.Tx) error {
		exists, err := tx.HExists(ctx, bookingsKey, booking.ID).Result()
		if err != nil {
			return fmt.Errorf("insert booking: %w", err)
		}
		if exists {
			return status.ErrBookingIDConflict
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, bookingsKey, booking.ID, string(data))
			pipe.RPush(ctx, userBookingsKey(booking.UserID), booking.ID)
			pipe.Incr(ctx, version)
			return nil
		})
		return err
	}, version)
}

func (s *BookingStore) Get(ctx context.Context, id string) (models.Booking, error) {
	return readBooking(ctx, s.redis, id)
}

func readBooking(ctx context.Context, c redis.Cmdable, id string) (models.Booking, error) {
	raw, err := c.HGet(ctx, bookingsKey, id).Result()
	if errors.Is(err, redis.Nil) {
		return models.Booking{}, status.ErrBookingNotFound
	}
	if err != nil {
		return models.Booking{}, fmt.Errorf("read booking: %w", err)
	}

	var booking models.Booking
	if err := json.Unmarshal([]byte(raw), &booking); err != nil {
		return models.Booking{}, fmt.Errorf("decode booking: %w", err)
	}
	return booking, nil
}

func (s *BookingStore) Update(ctx context.Context, id string, fn services.BookingMutation) (models.Booking, error) {
	var result models.Booking
	version := bookingVersionKey(id)

	err := watchWithRetry(ctx, s.redis, func(tx *redis.Tx) error {
		booking, err := readBooking(ctx, tx, id)
		if err != nil {
			return err
		}
		updated, err := fn(booking)
		if err != nil {
			return err
		}

		data, err := json.Marshal(updated)
		if err != nil {
			return fmt.Errorf("encode booking: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, bookingsKey, id, string(data))
			pipe.Incr(ctx, version)
			return nil
		})
		if err != nil {
			return err
		}

		result = updated
		return nil
	}, version)
	if err != nil {
		return models.Booking{}, err
	}
	return result, nil
}

func (s *BookingStore) ListByUser(ctx context.Context, userID string) ([]models.Booking, error) {
	ids, err := s.redis.LRange(ctx, userBookingsKey(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	if len(ids) == 0 {
		return []models.Booking{}, nil
	}

	values, err := s.redis.HMGet(ctx, bookingsKey, ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("load bookings: %w", err)
	}

	bookings := make([]models.Booking, 0, len(values))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var booking models.Booking
		if err := json.Unmarshal([]byte(raw), &booking); err != nil {
			return nil, fmt.Errorf("decode booking %s: %w", ids[i], err)
		}
		bookings = append(bookings, booking)
	}
	return bookings, nil
}
