package database

import (
	"context"
	"fmt"
	"mindcare_backend/internal/config"
	"time"

	"github.com/go-redis/redis/v8"

	applog "mindcare_backend/pkg/logger"
)

func InitRedis(cfg *config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     20,
		MinIdleConns: 2,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, err
	}

	applog.Log.Info("Redis connection established")
	return rdb, nil
}

// RedisLocker 基于 SETNX 的分布式锁，多副本部署时保证同一定时任务只执行一次
type RedisLocker struct {
	rdb   *redis.Client
	owner string
}

func NewRedisLocker(rdb *redis.Client, owner string) *RedisLocker {
	return &RedisLocker{rdb: rdb, owner: owner}
}

// TryLock 成功返回 true。锁不主动释放，靠 TTL 过期，防止同一时间槽被重复执行
func (l *RedisLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return l.rdb.SetNX(ctx, "mindcare:lock:"+key, l.owner, ttl).Result()
}
