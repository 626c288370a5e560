package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"luxetickets/internal/services"
	"luxetickets/models"
)

type CartStore struct {
	redis *redis.Client
}

func NewCartStore(client *redis.Client) *CartStore {
	return &CartStore{redis: client}
}

func cartKey(userID string) string {
	return cartPrefix + userID
}

func (s *CartStore) Get(ctx context.Context, userID string) ([]models.CartItem, error) {
	return readCart(ctx, s.redis, cartKey(userID))
}

func readCart(ctx context.Context, c redis.Cmdable, key string) ([]models.CartItem, error) {
	raw, err := c.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cart: %w", err)
	}

	var items []models.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return items, nil
}

// Update is a WATCH/MULTI read-modify-write of the cart.
func (s *CartStore) Update(ctx context.Context, userID string, fn services.CartMutation) ([]models.CartItem, error) {
	key := cartKey(userID)
	var result []models.CartItem

	err := watchWithRetry(ctx, s.redis, func(tx *redis.Tx) error {
		items, err := readCart(ctx, tx, key)
		if err != nil {
			return err
		}
		updated, err := fn(items)
		if err != nil {
			return err
		}

		var data []byte
		if len(updated) > 0 {
			if data, err = json.Marshal(updated); err != nil {
				return fmt.Errorf("encode cart: %w", err)
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if len(updated) == 0 {
				pipe.Del(ctx, key)
				return nil
			}
			pipe.Set(ctx, key, string(data), 0)
			return nil
		})
		if err != nil {
			return err
		}

		result = updated
		return nil
	}, key)
	if err != nil {
		return nil, err
	}
	if result == nil {
		result = []models.CartItem{}
	}
	return result, nil
}

func (s *CartStore) Clear(ctx context.Context, userID string) error {
	return s.redis.Del(ctx, cartKey(userID)).Err()
}
