package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/BradenHooton/heavyprofile/internal/models"
	"github.com/redis/go-redis/v9"
)

const attemptKeyPrefix = "heavyprofile:login_attempts:"

// recordFailureScript increments the attempt hash in one server-side step.
// Fields are epoch milliseconds; blocked is 0 while the record is not locked out.
// Returns {count, first, blocked, transitioned}.
var recordFailureScript = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local max = tonumber(ARGV[2])
local lockout = tonumber(ARGV[3])
local window = tonumber(ARGV[4])

local vals = redis.call('HMGET', key, 'count', 'first', 'blocked')
local count = tonumber(vals[1])
local first = tonumber(vals[2])
local blocked = tonumber(vals[3]) or 0

local expired = (count == nil) or (first == nil)
if not expired then
  if blocked > 0 then
    expired = now >= blocked
  else
    expired = (now - first) > window
  end
end
if expired then
  count = 0
  first = now
  blocked = 0
end

count = count + 1
local transitioned = 0
if blocked == 0 and count >= max then
  blocked = now + lockout
  transitioned = 1
end

redis.call('HSET', key, 'count', count, 'first', first, 'blocked', blocked)
if blocked > 0 then
  redis.call('PEXPIREAT', key, blocked)
else
  redis.call('PEXPIREAT', key, first + window + 1)
end
return {count, first, blocked, transitioned}
`)

// RedisAttemptStore shares attempt state between server instances.
// Keys expire on their own when the record becomes logically expired.
type RedisAttemptStore struct {
	client redis.UniversalClient
	policy models.LockoutPolicy
}

func NewRedisAttemptStore(client redis.UniversalClient, policy models.LockoutPolicy) *RedisAttemptStore {
	return &RedisAttemptStore{client: client, policy: policy}
}

func (s *RedisAttemptStore) key(id string) string {
	return attemptKeyPrefix + id
}

func (s *RedisAttemptStore) Get(ctx context.Context, id string, now time.Time) (*models.AttemptRecord, error) {
	vals, err := s.client.HMGet(ctx, s.key(id), "count", "first", "blocked").Result()
	if err != nil {
		return nil, storeUnavailable(err)
	}

	count, ok1 := parseRedisInt(vals[0])
	first, ok2 := parseRedisInt(vals[1])
	if !ok1 || !ok2 {
		return nil, nil
	}
	blocked, _ := parseRedisInt(vals[2])

	rec := buildRecord(count, first, blocked)
	// Expired records are left for the key TTL or the next RecordFailure to replace.
	if s.policy.IsExpired(rec, now) {
		return nil, nil
	}
	return rec, nil
}

func (s *RedisAttemptStore) RecordFailure(ctx context.Context, id string, now time.Time) (*models.AttemptRecord, bool, error) {
	res, err := recordFailureScript.Run(ctx, s.client, []string{s.key(id)},
		now.UnixMilli(),
		s.policy.MaxAttempts,
		s.policy.LockoutDuration.Milliseconds(),
		s.policy.AttemptWindow.Milliseconds(),
	).Int64Slice()
	if err != nil {
		return nil, false, storeUnavailable(err)
	}
	if len(res) != 4 {
		return nil, false, storeUnavailable(fmt.Errorf("unexpected script reply of length %d", len(res)))
	}

	return buildRecord(res[0], res[1], res[2]), res[3] == 1, nil
}

func (s *RedisAttemptStore) Reset(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return storeUnavailable(err)
	}
	return nil
}

// SweepExpired is a no-op: Redis evicts keys at their PEXPIREAT deadline.
func (s *RedisAttemptStore) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	return 0, nil
}

// Ping reports whether the Redis server is reachable.
func (s *RedisAttemptStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func buildRecord(count, firstMs, blockedMs int64) *models.AttemptRecord {
	rec := &models.AttemptRecord{
		Count:        int(count),
		FirstAttempt: time.UnixMilli(firstMs),
	}
	if blockedMs > 0 {
		until := time.UnixMilli(blockedMs)
		rec.BlockedUntil = &until
	}
	return rec
}

func parseRedisInt(v interface{}) (int64, bool) {
	switch val := v.(type) {
	case string:
		n, err := strconv.ParseInt(val, 10, 64)
		return n, err == nil
	case int64:
		return val, true
	}
	return 0, false
}

func storeUnavailable(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %v", models.ErrAttemptStoreUnavailable, err)
}

var _ AttemptStore = (*RedisAttemptStore)(nil)
