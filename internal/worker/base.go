package worker

import (
	"sync"

	"go.uber.org/zap"
)

// BaseWorker - общий каркас воркера: имя, consumer group и сигнал остановки.
// Конкретные воркеры встраивают его и реализуют только Start.
type BaseWorker struct {
	name          string
	consumerGroup string
	logger        *zap.Logger

	stopOnce sync.Once
	stopChan chan struct{}
}

// NewBaseWorker создаёт каркас воркера.
// name используется и как consumer name внутри consumer group.
func NewBaseWorker(name, consumerGroup string, logger *zap.Logger) *BaseWorker {
	return &BaseWorker{
		name:          name,
		consumerGroup: consumerGroup,
		logger:        logger.With(zap.String("worker", name)),
		stopChan:      make(chan struct{}),
	}
}

func (w *BaseWorker) Name() string {
	return w.name
}

func (w *BaseWorker) ConsumerGroup() string {
	return w.consumerGroup
}

func (w *BaseWorker) Logger() *zap.Logger {
	return w.logger
}

// StopChan закрывается при остановке; цикл воркера слушает его в select
func (w *BaseWorker) StopChan() <-chan struct{} {
	return w.stopChan
}

// Stop сигнализирует воркеру о завершении. Повторные вызовы безопасны.
func (w *BaseWorker) Stop() error {
	w.stopOnce.Do(func() {
		w.logger.Info("Stopping worker")
		close(w.stopChan)
	})
	return nil
}
