package classifycache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/mech-ai/internal/intent"
	"github.com/BruksfildServices01/mech-ai/internal/metrics"
	"github.com/BruksfildServices01/mech-ai/internal/timezone"
)

const keyPrefix = "mechai:classify:"

// Cache memoizes classifier output per utterance and calendar day. Redis
// failures fall through to the wrapped classifier.
type Cache struct {
	next     intent.RawClassifier
	rdb      *redis.Client
	ttl      time.Duration
	timezone string
	log      *zap.Logger
	now      func() time.Time
}

func New(
	next intent.RawClassifier,
	rdb *redis.Client,
	ttl time.Duration,
	tz string,
	log *zap.Logger,
) *Cache {
	return &Cache{
		next:     next,
		rdb:      rdb,
		ttl:      ttl,
		timezone: tz,
		log:      log.Named("classify_cache"),
		now:      time.Now,
	}
}

// NewRedisClient parses a redis:// URL.
func NewRedisClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	return redis.NewClient(opts), nil
}

func (c *Cache) ClassifyRaw(ctx context.Context, utterance string) (string, error) {
	key := c.key(utterance)

	cached, err := c.rdb.Get(ctx, key).Result()
	switch {
	case err == nil:
		metrics.ClassifyCache.WithLabelValues(metrics.CacheHit).Inc()
		return cached, nil
	case !errors.Is(err, redis.Nil):
		c.log.Warn("cache read failed", zap.Error(err))
	}
	metrics.ClassifyCache.WithLabelValues(metrics.CacheMiss).Inc()

	out, err := c.next.ClassifyRaw(ctx, utterance)
	if err != nil {
		return "", err
	}

	// só guarda envelopes válidos
	if _, perr := intent.Parse([]byte(out)); perr == nil {
		if err := c.rdb.Set(ctx, key, out, c.ttl).Err(); err != nil {
			c.log.Warn("cache write failed", zap.Error(err))
		}
	}

	return out, nil
}

func (c *Cache) key(utterance string) string {
	day := c.now().In(timezone.Location(c.timezone)).Format(timezone.DateLayout)
	// só espaços: a caixa das palavras vai para os nomes extraídos
	norm := strings.Join(strings.Fields(utterance), " ")

	sum := sha256.Sum256([]byte(day + "|" + norm))
	return keyPrefix + hex.EncodeToString(sum[:])
}

var _ intent.RawClassifier = (*Cache)(nil)
