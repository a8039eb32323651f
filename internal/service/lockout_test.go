package service

import (
	"testing"
	"time"

	"github.com/prperemyshlev/task-manager/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestLockoutPolicy_Check(t *testing.T) {
	last := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	policy := DefaultLockoutPolicy

	tests := []struct {
		name   string
		record *domain.FailedAttempt
		now    time.Time
		want   LockDecision
	}{
		{
			name: "no record",
			now:  last,
			want: LockDecision{State: LockAllowed},
		},
		{
			name:   "below threshold",
			record: &domain.FailedAttempt{Attempts: 4, UpdatedAt: last},
			now:    last.Add(time.Minute),
			want:   LockDecision{State: LockAllowed},
		},
		{
			name:   "at threshold inside window",
			record: &domain.FailedAttempt{Attempts: 5, UpdatedAt: last},
			now:    last.Add(59 * time.Minute),
			want:   LockDecision{State: LockActive, Until: last.Add(time.Hour)},
		},
		{
			name:   "above threshold inside window",
			record: &domain.FailedAttempt{Attempts: 7, UpdatedAt: last},
			now:    last,
			want:   LockDecision{State: LockActive, Until: last.Add(time.Hour)},
		},
		{
			name:   "exactly at unlock time",
			record: &domain.FailedAttempt{Attempts: 5, UpdatedAt: last},
			now:    last.Add(time.Hour),
			want:   LockDecision{State: LockExpired},
		},
		{
			name:   "after window",
			record: &domain.FailedAttempt{Attempts: 5, UpdatedAt: last},
			now:    last.Add(2 * time.Hour),
			want:   LockDecision{State: LockExpired},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.Check(tt.record, tt.now))
		})
	}
}

func TestLockoutPolicy_CustomThreshold(t *testing.T) {
	last := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	policy := LockoutPolicy{Threshold: 2, Window: 10 * time.Minute}

	decision := policy.Check(&domain.FailedAttempt{Attempts: 2, UpdatedAt: last}, last.Add(5*time.Minute))
	assert.Equal(t, LockActive, decision.State)
	assert.Equal(t, last.Add(10*time.Minute), decision.Until)
}
