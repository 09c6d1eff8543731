package chatbot

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// ReplyCache memoizes chatbot replies keyed by the normalized question
type ReplyCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewReplyCache(client *redis.Client, ttl time.Duration) *ReplyCache {
	return &ReplyCache{client: client, ttl: ttl}
}

func cacheKey(question string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(question))))
	return "chatbot:reply:" + hex.EncodeToString(sum[:])
}

// Get returns the cached reply for a question, or false on a miss
func (c *ReplyCache) Get(ctx context.Context, question string) (string, bool, error) {
	reply, err := c.client.Get(ctx, cacheKey(question)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return reply, true, nil
}

// Set stores a reply for a question with the configured TTL
func (c *ReplyCache) Set(ctx context.Context, question, reply string) error {
	return c.client.Set(ctx, cacheKey(question), reply, c.ttl).Err()
}
