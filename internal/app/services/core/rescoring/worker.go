package rescoring

import (
	"context"
	"time"

	"mindscreen-service/internal/app/config"
	"mindscreen-service/internal/app/contracts"
	"mindscreen-service/internal/pkg/constvars"
	"mindscreen-service/internal/pkg/utils"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const fallbackCronSpec = "@every 10m"

type rescorer interface {
	RescoreCompletedResponses(ctx context.Context, limit int) (int, error)
}

// Worker periodically retries scoring for responses left in completed. Only
// the instance holding the leader lock runs a batch.
type Worker struct {
	log      *zap.Logger
	cfg      *config.InternalConfig
	locker   contracts.LockerService
	rescorer rescorer
	cron     *cron.Cron
	runCtx   context.Context
	cancel   context.CancelFunc
}

func NewWorker(log *zap.Logger, cfg *config.InternalConfig, lockerSvc contracts.LockerService, responseUsecase contracts.ResponseUsecase) *Worker {
	return &Worker{log: log, cfg: cfg, locker: lockerSvc, rescorer: responseUsecase}
}

func (w *Worker) Start(ctx context.Context) {
	w.runCtx, w.cancel = context.WithCancel(ctx)

	c := cron.New()
	spec := w.cfg.Scoring.RescoreCronSpec
	if _, err := c.AddFunc(spec, func() { w.runOnce(w.runCtx) }); err != nil {
		w.log.Warn("rescoring.worker: invalid cron spec, falling back",
			zap.String(constvars.LoggingCronSpecKey, spec),
			zap.Error(err),
		)
		c = cron.New()
		_, _ = c.AddFunc(fallbackCronSpec, func() { w.runOnce(w.runCtx) })
		spec = fallbackCronSpec
	}
	c.Start()
	w.cron = c

	w.log.Info("rescoring.worker: started", zap.String(constvars.LoggingCronSpecKey, spec))
}

// Stop cancels the in-flight batch and waits for it to return.
func (w *Worker) Stop() {
	if w.cancel != nil {
		w.cancel()
	}
	if w.cron != nil {
		<-w.cron.Stop().Done()
	}
}

func (w *Worker) runOnce(ctx context.Context) {
	requestID := utils.GenerateRequestID()
	ctx = context.WithValue(ctx, constvars.CONTEXT_REQUEST_ID_KEY, requestID)

	ttl := time.Duration(w.cfg.Scoring.RescoreLeaderLockTTLInSecond) * time.Second
	acquired, token, err := w.locker.TryLock(ctx, constvars.RedisKeyRescoringLeader, ttl)
	if err != nil {
		w.log.Warn("rescoring.worker: leader lock attempt failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return
	}
	if !acquired {
		w.log.Info("rescoring.worker: leader lock held by another instance",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return
	}
	defer func() {
		// the run context may already be cancelled on shutdown
		if err := w.locker.Unlock(context.WithoutCancel(ctx), constvars.RedisKeyRescoringLeader, token); err != nil {
			w.log.Warn("rescoring.worker: failed to release leader lock", zap.Error(err))
		}
	}()

	refreshCtx, cancelRefresh := context.WithCancel(ctx)
	defer cancelRefresh()
	go w.refreshLeaderLock(refreshCtx, token, ttl)

	scored, err := w.rescorer.RescoreCompletedResponses(ctx, w.cfg.Scoring.RescoreBatchSize)
	if err != nil {
		w.log.Warn("rescoring.worker: batch stopped early",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingResponseCountKey, scored),
			zap.Error(err),
		)
		return
	}

	w.log.Info("rescoring.worker: batch finished",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseCountKey, scored),
	)
}

func (w *Worker) refreshLeaderLock(ctx context.Context, token string, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	tick := time.NewTicker(ttl / 2)
	defer tick.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			if err := w.locker.Refresh(ctx, constvars.RedisKeyRescoringLeader, token, ttl); err != nil {
				w.log.Warn("rescoring.worker: failed to refresh leader lock", zap.Error(err))
			}
		}
	}
}
