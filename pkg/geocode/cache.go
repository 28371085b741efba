package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/travigo/airroute/pkg/ctdf"
)

const cacheExpiration = 90 * time.Minute

// Cached remembers successful lookups. Failures are never cached.
type Cached struct {
	Geocoder Geocoder
	Cache    *cache.Cache[string]
}

func NewRedisCached(geocoder Geocoder, client *redis.Client) *Cached {
	redisStore := redisstore.NewRedis(client, store.WithExpiration(cacheExpiration))

	return &Cached{
		Geocoder: geocoder,
		Cache:    cache.New[string](redisStore),
	}
}

func (c *Cached) Geocode(ctx context.Context, address string) (ctdf.Coordinates, error) {
	key := cacheKey(address)

	if cached, err := c.Cache.Get(ctx, key); err == nil && cached != "" {
		var coordinates ctdf.Coordinates
		if err := json.Unmarshal([]byte(cached), &coordinates); err == nil {
			return coordinates, nil
		}
	}

	coordinates, err := c.Geocoder.Geocode(ctx, address)
	if err != nil {
		return ctdf.Coordinates{}, err
	}

	encoded, err := json.Marshal(coordinates)
	if err == nil {
		err = c.Cache.Set(ctx, key, string(encoded))
	}
	if err != nil {
		log.Error().Err(err).Str("address", address).Msg("Failed to cache geocode result")
	}

	return coordinates, nil
}

func cacheKey(address string) string {
	return fmt.Sprintf("airroute:geocode:%s", strings.ToLower(strings.Join(strings.Fields(address), " ")))
}
