package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrCacheMiss is returned when no reply is cached for the prompt.
var ErrCacheMiss = redis.Nil

type IRedis interface {
	SetCachedReply(ctx context.Context, key string, reply string, expiration time.Duration) error
	GetCachedReply(ctx context.Context, key string) (string, error)
}

type redisClient struct {
	client *redis.Client
	log    *logrus.Logger
}

func New(addr, password string, db int, log *logrus.Logger) IRedis {
	log.Info(fmt.Sprintf("Connecting to Redis at %s...", addr))

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		log.Info("Successfully connected to Redis")
	}

	return &redisClient{client: client, log: log}
}

func (r *redisClient) SetCachedReply(ctx context.Context, key string, reply string, expiration time.Duration) error {
	if err := r.client.Set(ctx, key, reply, expiration).Err(); err != nil {
		r.log.Error(fmt.Sprintf("Error caching reply for key %s: %v", key, err))
		return err
	}
	return nil
}

func (r *redisClient) GetCachedReply(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", err
	} else if err != nil {
		r.log.Error(fmt.Sprintf("Error getting cached reply for key %s: %v", key, err))
		return "", err
	}
	return val, nil
}
