package service

import (
	"time"

	"github.com/prperemyshlev/task-manager/internal/domain"
)

// LockState is the verdict of a lockout check
type LockState int

const (
	// LockAllowed means the attempt may proceed and the record is kept
	LockAllowed LockState = iota
	// LockActive means the account is locked until LockDecision.Until
	LockActive
	// LockExpired means the cooldown elapsed; the record must be deleted and the attempt allowed
	LockExpired
)

// LockDecision is returned by LockoutPolicy.Check
type LockDecision struct {
	State LockState
	Until time.Time
}

// LockoutPolicy locks an account for Window after Threshold consecutive wrong passwords.
// The window is measured from the last recorded failure.
type LockoutPolicy struct {
	Threshold int
	Window    time.Duration
}

// DefaultLockoutPolicy is five failures and a one hour cooldown
var DefaultLockoutPolicy = LockoutPolicy{Threshold: 5, Window: time.Hour}

// Check evaluates record at time now. A nil record is always allowed.
func (p LockoutPolicy) Check(record *domain.FailedAttempt, now time.Time) LockDecision {
	if record == nil || record.Attempts < p.Threshold {
		return LockDecision{State: LockAllowed}
	}

	until := record.UpdatedAt.Add(p.Window)
	if now.Before(until) {
		return LockDecision{State: LockActive, Until: until}
	}

	return LockDecision{State: LockExpired}
}
