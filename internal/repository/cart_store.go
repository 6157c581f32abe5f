package repository

import (
	"context"
	"time"

	"nedpos/internal/checkout"
	"nedpos/internal/infra"

	"github.com/redis/go-redis/v9"
)

// CartStore keeps one open cart per cashier between requests.
type CartStore interface {
	// Load returns the cashier's cart, or an empty one when none is stored.
	Load(ctx context.Context, cashier string) (*checkout.Cart, error)
	Save(ctx context.Context, cashier string, cart *checkout.Cart) error
	Delete(ctx context.Context, cashier string) error
}

type redisCartStore struct{ cache *infra.JSONCache }

// NewCartStore stores carts as JSON under cart:<cashier>. The TTL is refreshed
// on every save so abandoned carts expire on their own.
func NewCartStore(rdb *redis.Client, ttl time.Duration) CartStore {
	return &redisCartStore{cache: infra.NewJSONCache(rdb, "cart:", ttl)}
}

func (s *redisCartStore) Load(ctx context.Context, cashier string) (*checkout.Cart, error) {
	cart := &checkout.Cart{}
	if _, err := s.cache.Get(ctx, cashier, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *redisCartStore) Save(ctx context.Context, cashier string, cart *checkout.Cart) error {
	if cart.IsEmpty() {
		return s.Delete(ctx, cashier)
	}
	return s.cache.Set(ctx, cashier, cart)
}

func (s *redisCartStore) Delete(ctx context.Context, cashier string) error {
	return s.cache.Delete(ctx, cashier)
}
