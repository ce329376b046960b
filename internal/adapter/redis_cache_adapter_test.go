package adapter

import (
	"context"
	"errors"
	"testing"
	"time"

	"studyquiz/internal/domain"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestRedisCacheAdapter_Get(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cacheAdapter := NewRedisCacheAdapter(db)
	ctx := context.Background()

	key := "studyquiz:quiz:generated:abc"

	t.Run("Success", func(t *testing.T) {
		mock.ExpectGet(key).SetVal(`[]`)
		val, err := cacheAdapter.Get(ctx, key)
		assert.NoError(t, err)
		assert.Equal(t, `[]`, val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CacheMiss", func(t *testing.T) {
		mock.ExpectGet(key).SetErr(redis.Nil)
		val, err := cacheAdapter.Get(ctx, key)
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
		assert.Empty(t, val)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RedisError", func(t *testing.T) {
		redisErr := errors.New("connection lost")
		mock.ExpectGet(key).SetErr(redisErr)
		_, err := cacheAdapter.Get(ctx, key)
		assert.ErrorIs(t, err, redisErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisCacheAdapter_Set(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cacheAdapter := NewRedisCacheAdapter(db)
	ctx := context.Background()

	key := "studyquiz:quiz:generated:abc"
	value := `[{"question":"q"}]`
	ttl := time.Hour

	t.Run("Success", func(t *testing.T) {
		mock.ExpectSet(key, value, ttl).SetVal("OK")
		assert.NoError(t, cacheAdapter.Set(ctx, key, value, ttl))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RedisError", func(t *testing.T) {
		redisErr := errors.New("connection lost")
		mock.ExpectSet(key, value, ttl).SetErr(redisErr)
		assert.ErrorIs(t, cacheAdapter.Set(ctx, key, value, ttl), redisErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisCacheAdapter_Delete(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cacheAdapter := NewRedisCacheAdapter(db)
	ctx := context.Background()

	key := "studyquiz:quiz:generated:abc"

	t.Run("Success", func(t *testing.T) {
		mock.ExpectDel(key).SetVal(1)
		assert.NoError(t, cacheAdapter.Delete(ctx, key))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("KeyNotFound", func(t *testing.T) {
		mock.ExpectDel(key).SetVal(0)
		assert.NoError(t, cacheAdapter.Delete(ctx, key))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRedisCacheAdapter_Ping(t *testing.T) {
	db, mock := redismock.NewClientMock()
	cacheAdapter := NewRedisCacheAdapter(db)
	ctx := context.Background()

	mock.ExpectPing().SetVal("PONG")
	assert.NoError(t, cacheAdapter.Ping(ctx))
	assert.NoError(t, mock.ExpectationsWereMet())
}
