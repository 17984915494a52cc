package worker

import "context"

// Worker - фоновый потребитель событий из Redis Streams.
// Start блокирует до отмены контекста или вызова Stop.
type Worker interface {
	Start(ctx context.Context) error
	Stop() error
	Name() string
}
