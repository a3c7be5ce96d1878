package rescoring

import (
	"context"
	"errors"
	"testing"
	"time"

	"mindscreen-service/internal/app/config"
	"mindscreen-service/internal/app/contracts/mocks"
	"mindscreen-service/internal/pkg/constvars"
	"mindscreen-service/internal/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type fakeRescorer struct {
	calls  int
	limit  int
	scored int
	err    error
	seenID string
}

func (f *fakeRescorer) RescoreCompletedResponses(ctx context.Context, limit int) (int, error) {
	f.calls++
	f.limit = limit
	f.seenID = utils.GetRequestID(ctx)
	return f.scored, f.err
}

func newTestWorker(locker *mocks.LockerService, rescorer *fakeRescorer) *Worker {
	cfg := &config.InternalConfig{
		Scoring: config.AppScoring{
			RescoreCronSpec:              "@every 1h",
			RescoreBatchSize:             25,
			RescoreLeaderLockTTLInSecond: 120,
		},
	}
	return &Worker{log: zap.NewNop(), cfg: cfg, locker: locker, rescorer: rescorer}
}

func TestWorker_RunOnce(t *testing.T) {
	t.Run("leader runs a batch and releases the lock", func(t *testing.T) {
		locker := new(mocks.LockerService)
		locker.On("TryLock", mock.Anything, constvars.RedisKeyRescoringLeader, 120*time.Second).Return(true, "token-1", nil)
		locker.On("Unlock", mock.Anything, constvars.RedisKeyRescoringLeader, "token-1").Return(nil)
		rescorer := &fakeRescorer{scored: 3}

		newTestWorker(locker, rescorer).runOnce(context.Background())

		assert.Equal(t, 1, rescorer.calls)
		assert.Equal(t, 25, rescorer.limit)
		assert.NotEmpty(t, rescorer.seenID)
		locker.AssertExpectations(t)
	})

	t.Run("follower skips the batch", func(t *testing.T) {
		locker := new(mocks.LockerService)
		locker.On("TryLock", mock.Anything, constvars.RedisKeyRescoringLeader, mock.Anything).Return(false, "", nil)
		rescorer := &fakeRescorer{}

		newTestWorker(locker, rescorer).runOnce(context.Background())

		assert.Zero(t, rescorer.calls)
		locker.AssertNotCalled(t, "Unlock", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("lock failure skips the batch", func(t *testing.T) {
		locker := new(mocks.LockerService)
		locker.On("TryLock", mock.Anything, constvars.RedisKeyRescoringLeader, mock.Anything).Return(false, "", errors.New("redis down"))
		rescorer := &fakeRescorer{}

		newTestWorker(locker, rescorer).runOnce(context.Background())

		assert.Zero(t, rescorer.calls)
	})

	t.Run("batch error still releases the lock", func(t *testing.T) {
		locker := new(mocks.LockerService)
		locker.On("TryLock", mock.Anything, constvars.RedisKeyRescoringLeader, mock.Anything).Return(true, "token-2", nil)
		locker.On("Unlock", mock.Anything, constvars.RedisKeyRescoringLeader, "token-2").Return(nil)
		rescorer := &fakeRescorer{err: context.Canceled}

		newTestWorker(locker, rescorer).runOnce(context.Background())

		locker.AssertCalled(t, "Unlock", mock.Anything, constvars.RedisKeyRescoringLeader, "token-2")
	})
}

func TestWorker_StartAndStop(t *testing.T) {
	worker := newTestWorker(new(mocks.LockerService), &fakeRescorer{})
	worker.cfg.Scoring.RescoreCronSpec = "not a cron spec"

	worker.Start(context.Background())
	assert.NotNil(t, worker.cron)
	assert.Len(t, worker.cron.Entries(), 1)
	worker.Stop()
}
