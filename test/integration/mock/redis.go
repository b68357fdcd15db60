package mock

import (
	"context"
	"sync"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

var redisConnOnce sync.Once
var redisConn *redis.Client
var redisServer *miniredis.Miniredis

func NewRedis() *redis.Client {
	redisConnOnce.Do(
		func() {
			redisConn = openRedisConn()
		},
	)

	return redisConn
}

func openRedisConn() *redis.Client {
	var err error
	redisServer, err = miniredis.Run()
	if err != nil {
		panic(err)
	}

	conn := redis.NewClient(
		&redis.Options{
			Addr: redisServer.Addr(),
		},
	)

	return conn
}

// RedisKeys lists the keys currently stored that match the pattern.
func RedisKeys(pattern string) ([]string, error) {
	return NewRedis().Keys(context.TODO(), pattern).Result()
}

func ClearRedis(redis *redis.Client) error {
	return redis.FlushAll(context.TODO()).Err()
}
