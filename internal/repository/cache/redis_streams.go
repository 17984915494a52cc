package cache

import (
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/rangeguard-service/internal/config"
)

// NewRedisStreams создаёт отдельный клиент под Redis Streams.
// Воркеры держат своё соединение, чтобы блокирующий XREADGROUP
// не конкурировал с кешем за коннект.
func NewRedisStreams(cfg *config.RedisConfig, logger *zap.Logger) (*redis.Client, error) {
	client, err := dial(cfg)
	if err != nil {
		return nil, err
	}

	logger.Info("Redis Streams connected",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
	)
	return client, nil
}
