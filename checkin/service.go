package checkin

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrUserNotFound means the user record is absent from the store.
	ErrUserNotFound = errors.New("user not found")
	// ErrAlreadyCheckedIn means a check-in already exists for today's UTC date.
	ErrAlreadyCheckedIn = errors.New("already checked in today")
)

// UserState is the check-in slice of a user record as seen by the engine.
// A brand-new user yields the zero value: no last date, no streak, no coins.
type UserState struct {
	ID              uint
	LastCheckinDate string
	ConsecutiveDays int
	Coins           int
}

// Store is the persistent user-record collaborator. Implementations must
// make ApplyCheckin atomic: either all four field changes land or none do,
// and a concurrent duplicate for the same date must fail with
// ErrAlreadyCheckedIn rather than double-applying the reward.
type Store interface {
	// FindUser returns the user's check-in state or ErrUserNotFound.
	FindUser(ctx context.Context, userID uint) (UserState, error)
	// History returns every recorded check-in date in ascending order.
	History(ctx context.Context, userID uint) ([]string, error)
	// ApplyCheckin appends date to the history, sets the denormalized
	// last-date/streak fields, increments coins by reward and returns the
	// updated coin balance.
	ApplyCheckin(ctx context.Context, userID uint, date string, streakDay, reward int) (int, error)
}

// Result is the outcome of a successful check-in.
type Result struct {
	Date            string
	Reward          int
	ConsecutiveDays int
	NewCoins        int
}

// Status is the read-only view returned by the status query.
type Status struct {
	HasCheckedInToday bool
	ConsecutiveDays   int
	NextReward        int
	History           []string
}

// Service orchestrates check-in attempts: idempotency per UTC calendar day,
// streak computation, reward computation and the atomic store update.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService builds a Service on the real clock.
func NewService(store Store) *Service {
	return NewServiceWithClock(store, time.Now)
}

// NewServiceWithClock builds a Service with an injectable clock.
func NewServiceWithClock(store Store, now func() time.Time) *Service {
	return &Service{store: store, now: now}
}

// CheckIn performs today's check-in for the user. It returns
// ErrAlreadyCheckedIn when today's date is already recorded and
// ErrUserNotFound when the record is absent. Transient store errors are
// returned as-is; the service never retries.
func (s *Service) CheckIn(ctx context.Context, userID uint) (*Result, error) {
	user, err := s.store.FindUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := Today(s.now())
	if user.LastCheckinDate == today {
		return nil, ErrAlreadyCheckedIn
	}

	// A gap of exactly one day continues the streak; anything else, or a
	// first-ever check-in, starts over at day 1. The streak is recomputed
	// from the full history rather than trusted from the cached counter.
	newStreak := 1
	if user.LastCheckinDate != "" && DaysBetween(user.LastCheckinDate, today) == 1 {
		history, err := s.store.History(ctx, userID)
		if err != nil {
			return nil, err
		}
		newStreak = Streak(history, user.LastCheckinDate) + 1
	}

	reward := Reward(newStreak)
	newCoins, err := s.store.ApplyCheckin(ctx, userID, today, newStreak, reward)
	if err != nil {
		return nil, err
	}

	return &Result{
		Date:            today,
		Reward:          reward,
		ConsecutiveDays: newStreak,
		NewCoins:        newCoins,
	}, nil
}

// Status reports the user's current check-in state without mutating it.
// ConsecutiveDays is the streak as of the most recent check-in; it never
// advances for today until the check-in is actually made. NextReward is the
// reward the next check-in would earn.
func (s *Service) Status(ctx context.Context, userID uint) (*Status, error) {
	user, err := s.store.FindUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	history, err := s.store.History(ctx, userID)
	if err != nil {
		return nil, err
	}

	today := Today(s.now())
	checkedToday := user.LastCheckinDate != "" && user.LastCheckinDate == today

	streak := 0
	if user.LastCheckinDate != "" {
		streak = Streak(history, user.LastCheckinDate)
	}

	nextStreak := 1
	if checkedToday || (user.LastCheckinDate != "" && DaysBetween(user.LastCheckinDate, today) == 1) {
		nextStreak = streak + 1
	}

	recent := history
	if len(recent) > 7 {
		recent = recent[len(recent)-7:]
	}

	return &Status{
		HasCheckedInToday: checkedToday,
		ConsecutiveDays:   streak,
		NextReward:        Reward(nextStreak),
		History:           recent,
	}, nil
}
