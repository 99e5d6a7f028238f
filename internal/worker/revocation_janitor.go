package worker

import (
	"context"
	"time"

	"github.com/GhofranWarrakia/Task-Management-API/internal/logger"

	"go.uber.org/zap"
)

type RevocationPruner interface {
	PruneRevoked() int
}

// RevocationJanitor периодически чистит чёрный список токенов:
// запись о logout не нужна после естественного истечения токена
type RevocationJanitor struct {
	pruner   RevocationPruner
	interval time.Duration
}

func NewRevocationJanitor(pruner RevocationPruner, interval *time.Duration) *RevocationJanitor {
	intervalToSet := 10 * time.Minute
	if interval != nil {
		intervalToSet = *interval
	}
	return &RevocationJanitor{
		pruner:   pruner,
		interval: intervalToSet,
	}
}

func (j *RevocationJanitor) Start(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pruned := j.pruner.PruneRevoked()
			if pruned > 0 {
				logger.Info("Worker: Чёрный список токенов почищен", zap.Int("pruned", pruned))
			}
		case <-ctx.Done():
			logger.Info("Worker: Чистка чёрного списка останавливается")
			return
		}
	}
}
