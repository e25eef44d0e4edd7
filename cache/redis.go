package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

type Options struct {
	Addr     string
	Password string
	DB       int
}

/*
* Create the redis client and ping it
* An unreachable redis fails startup instead of silently disabling the cache
 */
func Connect(ctx context.Context, opts Options) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", opts.Addr, err)
	}
	log.WithField("addr", opts.Addr).Println("Connected to Redis")
	return client, nil
}
