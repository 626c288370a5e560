package redisstore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"luxetickets/internal/status"
	"luxetickets/models"
)

// SeatStore keeps one hash per show mapping sold seat to booking id.
type SeatStore struct {
	redis *redis.Client
}

func NewSeatStore(client *redis.Client) *SeatStore {
	return &SeatStore{redis: client}
}

func seatKey(show models.ShowKey) string {
	return fmt.Sprintf(seatKeyFn, show)
}

func seatKeys(holds []models.SeatHold) []string {
	keys := make([]string, 0, len(holds))
	seen := make(map[string]bool)
	for _, hold := range holds {
		key := seatKey(hold.Show)
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	return keys
}

func (s *SeatStore) Sold(ctx context.Context, show models.ShowKey) (map[string]string, error) {
	sold, err := s.redis.HGetAll(ctx, seatKey(show)).Result()
	if err != nil {
		return nil, fmt.Errorf("read seats: %w", err)
	}
	return sold, nil
}

// Reserve watches every show hash involved, checks all seats are free and
// claims them in one MULTI.
func (s *SeatStore) Reserve(ctx context.Context, bookingID string, holds []models.SeatHold) error {
	if len(holds) == 0 {
		return nil
	}

	err := watchWithRetry(ctx, s.redis, func(tx *redis.Tx) error {
		claims := make(map[string]map[string]any)
		for _, hold := range holds {
			key := seatKey(hold.Show)
			if claims[key] == nil {
				claims[key] = make(map[string]any)
			}

			current, err := tx.HMGet(ctx, key, hold.Seats...).Result()
			if err != nil {
				return err
			}
			for i, seatID := range hold.Seats {
				if _, dup := claims[key][seatID]; current[i] != nil || dup {
					return fmt.Errorf("%w: %s for %s", status.ErrSeatUnavailable, seatID, hold.Show)
				}
				claims[key][seatID] = bookingID
			}
		}

		_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for key, fields := range claims {
				pipe.HSet(ctx, key, fields)
			}
			return nil
		})
		return err
	}, seatKeys(holds)...)
	if err != nil {
		slog.Warn("Failed to reserve seats", "error", err, "booking_id", bookingID)
		return err
	}
	return nil
}

// Release deletes only seats still owned by bookingID.
func (s *SeatStore) Release(ctx context.Context, bookingID string, holds []models.SeatHold) error {
	if len(holds) == 0 {
		return nil
	}

	return watchWithRetry(ctx, s.redis, func(tx *redis.Tx) error {
		owned := make(map[string][]string)
		for _, hold := range holds {
			key := seatKey(hold.Show)
			current, err := tx.HMGet(ctx, key, hold.Seats...).Result()
			if err != nil {
				return err
			}
			for i, seatID := range hold.Seats {
				if holder, _ := current[i].(string); holder == bookingID {
					owned[key] = append(owned[key], seatID)
				}
			}
		}
		if len(owned) == 0 {
			return nil
		}

		_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for key, seats := range owned {
				pipe.HDel(ctx, key, seats...)
			}
			return nil
		})
		return err
	}, seatKeys(holds)...)
}
