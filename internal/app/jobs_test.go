package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prperemyshlev/task-manager/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type expiringTokens struct {
	before time.Time
	count  int64
	err    error
}

func (e *expiringTokens) Upsert(context.Context, string, string, time.Time) error { return nil }

func (e *expiringTokens) GetByTokenHash(context.Context, string) (*domain.RefreshSession, error) {
	return nil, nil
}

func (e *expiringTokens) DeleteByTokenHash(context.Context, string) (int64, error) { return 0, nil }

func (e *expiringTokens) DeleteExpired(_ context.Context, before time.Time) (int64, error) {
	e.before = before
	return e.count, e.err
}

func TestExpiredSessionCleanup(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	tokens := &expiringTokens{count: 3}
	core, logs := observer.New(zapcore.InfoLevel)

	job := expiredSessionCleanup(tokens, 7*24*time.Hour, func() time.Time { return now }, zap.New(core))
	require.NoError(t, job(context.Background()))

	assert.Equal(t, now.Add(-7*24*time.Hour), tokens.before)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, int64(3), logs.All()[0].ContextMap()["count"])
}

func TestExpiredSessionCleanup_Error(t *testing.T) {
	tokens := &expiringTokens{err: errors.New("db down")}

	job := expiredSessionCleanup(tokens, time.Hour, time.Now, zap.NewNop())
	assert.Error(t, job(context.Background()))
}

func TestScheduler_Register(t *testing.T) {
	s := NewScheduler(zap.NewNop())
	noop := func(context.Context) error { return nil }

	assert.NoError(t, s.Register("hourly", "@hourly", noop))
	assert.NoError(t, s.Register("cron", "*/5 * * * *", noop))
	assert.NoError(t, s.Register("disabled", "", noop))
	assert.Error(t, s.Register("broken", "every tuesday", noop))
	assert.Len(t, s.cron.Entries(), 2)
}

func TestScheduler_RunLogsFailures(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	s := NewScheduler(zap.New(core))

	s.run("ok", func(context.Context) error { return nil })
	s.run("bad", func(context.Context) error { return errors.New("boom") })

	failures := logs.FilterMessage("Job failed").All()
	require.Len(t, failures, 1)
	assert.Equal(t, "bad", failures[0].ContextMap()["job"])
}

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler(zap.NewNop())
	s.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, s.Stop(ctx))
}
