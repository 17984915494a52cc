package repository

import (
	"context"
	"time"

	"github.com/rangeguard-service/internal/domain"
)

// CacheRepository - байтовый кеш (Redis) для буферизованных полигонов и статистики.
// Записи буферов идемпотентны: пересчёт по тому же версионированному ключу
// кладёт равное значение, поэтому гонки конкурентных построек отчётов безопасны.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error

	// GetStats / SetStats - короткоживущий кеш публичной статистики
	GetStats(ctx context.Context) (*domain.Statistics, error)
	SetStats(ctx context.Context, stats *domain.Statistics, ttl time.Duration) error
}
