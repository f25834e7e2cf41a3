package checkin_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/playgrid/playgrid/checkin"
	"github.com/playgrid/playgrid/models"
)

// Each test gets its own named in-memory database so tests stay isolated
// while the gorm pool can open multiple connections to it.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Discard,
	})
	if err != nil {
		t.Fatalf("open in-memory database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.CheckinRecord{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestService(t *testing.T, db *gorm.DB, now *time.Time) *checkin.Service {
	t.Helper()
	return checkin.NewServiceWithClock(checkin.NewGormStore(db), func() time.Time { return *now })
}

func createUser(t *testing.T, db *gorm.DB, username string) uint {
	t.Helper()
	user := models.User{Username: username}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user.ID
}

func TestCheckInFirstTime(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := newTestService(t, db, &now)
	userID := createUser(t, db, "alice")

	result, err := svc.CheckIn(context.Background(), userID)
	if err != nil {
		t.Fatalf("check-in failed: %v", err)
	}
	if result.Reward != 15 || result.ConsecutiveDays != 1 || result.NewCoins != 15 {
		t.Fatalf("got reward=%d days=%d coins=%d, want 15/1/15", result.Reward, result.ConsecutiveDays, result.NewCoins)
	}
	if result.Date != "2025-03-10" {
		t.Fatalf("got date %s, want 2025-03-10", result.Date)
	}

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if user.Coins != 15 || user.LastCheckinDate != "2025-03-10" || user.ConsecutiveCheckinDays != 1 {
		t.Fatalf("user record not updated: coins=%d last=%s days=%d", user.Coins, user.LastCheckinDate, user.ConsecutiveCheckinDays)
	}
}

func TestCheckInIdempotentPerDay(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := newTestService(t, db, &now)
	userID := createUser(t, db, "bob")

	if _, err := svc.CheckIn(context.Background(), userID); err != nil {
		t.Fatalf("first check-in failed: %v", err)
	}

	// Later the same day, even near midnight.
	now = time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC)
	_, err := svc.CheckIn(context.Background(), userID)
	if !errors.Is(err, checkin.ErrAlreadyCheckedIn) {
		t.Fatalf("second check-in: got err=%v, want ErrAlreadyCheckedIn", err)
	}

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if user.Coins != 15 {
		t.Fatalf("coins incremented more than once: %d", user.Coins)
	}
	var count int64
	db.Model(&models.CheckinRecord{}).Where("user_id = ?", userID).Count(&count)
	if count != 1 {
		t.Fatalf("want exactly one history record, got %d", count)
	}
}

func TestStreakContinuation(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := newTestService(t, db, &now)
	userID := createUser(t, db, "carol")

	wantRewards := []int{15, 20, 25}
	wantDays := []int{1, 2, 3}
	for i := 0; i < 3; i++ {
		result, err := svc.CheckIn(context.Background(), userID)
		if err != nil {
			t.Fatalf("day %d check-in failed: %v", i+1, err)
		}
		if result.Reward != wantRewards[i] || result.ConsecutiveDays != wantDays[i] {
			t.Fatalf("day %d: got reward=%d days=%d, want %d/%d",
				i+1, result.Reward, result.ConsecutiveDays, wantRewards[i], wantDays[i])
		}
		now = now.AddDate(0, 0, 1)
	}

	var user models.User
	db.First(&user, userID)
	if user.Coins != 15+20+25 {
		t.Fatalf("total coins = %d, want 60", user.Coins)
	}
}

func TestStreakResetAfterGap(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := newTestService(t, db, &now)
	userID := createUser(t, db, "dave")

	if _, err := svc.CheckIn(context.Background(), userID); err != nil {
		t.Fatalf("day 1 check-in failed: %v", err)
	}

	// Skip day 2 entirely.
	now = now.AddDate(0, 0, 2)
	result, err := svc.CheckIn(context.Background(), userID)
	if err != nil {
		t.Fatalf("day 3 check-in failed: %v", err)
	}
	if result.ConsecutiveDays != 1 {
		t.Fatalf("streak after gap = %d, want 1", result.ConsecutiveDays)
	}
	if result.Reward != 15 {
		t.Fatalf("reward after gap = %d, want 15", result.Reward)
	}
}

func TestRewardCapOnLongStreak(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2025, 3, 20, 9, 0, 0, 0, time.UTC)
	svc := newTestService(t, db, &now)
	userID := createUser(t, db, "erin")

	// Ten consecutive days ending yesterday.
	for i := 10; i >= 1; i-- {
		date := now.AddDate(0, 0, -i).Format(checkin.DateLayout)
		rec := models.CheckinRecord{UserID: userID, CheckinDate: date, Reward: 10, StreakDay: 11 - i}
		if err := db.Create(&rec).Error; err != nil {
			t.Fatalf("seed record: %v", err)
		}
	}
	yesterday := now.AddDate(0, 0, -1).Format(checkin.DateLayout)
	db.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{"last_checkin_date": yesterday, "consecutive_checkin_days": 10})

	result, err := svc.CheckIn(context.Background(), userID)
	if err != nil {
		t.Fatalf("check-in failed: %v", err)
	}
	if result.ConsecutiveDays != 11 {
		t.Fatalf("streak = %d, want 11", result.ConsecutiveDays)
	}
	if result.Reward != 50 {
		t.Fatalf("reward = %d, want capped 50", result.Reward)
	}
}

func TestCheckInUserNotFound(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := newTestService(t, db, &now)

	_, err := svc.CheckIn(context.Background(), 12345)
	if !errors.Is(err, checkin.ErrUserNotFound) {
		t.Fatalf("got err=%v, want ErrUserNotFound", err)
	}
	if _, err := svc.Status(context.Background(), 12345); !errors.Is(err, checkin.ErrUserNotFound) {
		t.Fatalf("status: got err=%v, want ErrUserNotFound", err)
	}
}

func TestStatusNeverMutatesAndNeverCountsToday(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := newTestService(t, db, &now)
	userID := createUser(t, db, "frank")

	status, err := svc.Status(context.Background(), userID)
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if status.HasCheckedInToday || status.ConsecutiveDays != 0 || status.NextReward != 15 {
		t.Fatalf("new user status = %+v, want not-checked/0/15", status)
	}

	if _, err := svc.CheckIn(context.Background(), userID); err != nil {
		t.Fatalf("check-in failed: %v", err)
	}

	status, err = svc.Status(context.Background(), userID)
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if !status.HasCheckedInToday || status.ConsecutiveDays != 1 || status.NextReward != 20 {
		t.Fatalf("status after check-in = %+v, want checked/1/20", status)
	}

	// Next morning: streak still reads 1 (yesterday's), next reward projects
	// the continuation, today is not counted until the POST happens.
	now = now.AddDate(0, 0, 1)
	status, err = svc.Status(context.Background(), userID)
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if status.HasCheckedInToday || status.ConsecutiveDays != 1 || status.NextReward != 20 {
		t.Fatalf("next-day status = %+v, want not-checked/1/20", status)
	}

	var count int64
	db.Model(&models.CheckinRecord{}).Count(&count)
	if count != 1 {
		t.Fatalf("status query mutated history: %d records", count)
	}
}

func TestStatusHistoryKeepsLastSeven(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2025, 3, 20, 9, 0, 0, 0, time.UTC)
	svc := newTestService(t, db, &now)
	userID := createUser(t, db, "grace")

	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 10; i++ {
		date := start.AddDate(0, 0, i).Format(checkin.DateLayout)
		rec := models.CheckinRecord{UserID: userID, CheckinDate: date}
		if err := db.Create(&rec).Error; err != nil {
			t.Fatalf("seed record: %v", err)
		}
	}
	db.Model(&models.User{}).Where("id = ?", userID).
		Update("last_checkin_date", "2025-03-19")

	status, err := svc.Status(context.Background(), userID)
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
	if len(status.History) != 7 {
		t.Fatalf("history length = %d, want 7", len(status.History))
	}
	if status.History[0] != "2025-03-13" || status.History[6] != "2025-03-19" {
		t.Fatalf("history window = %v, want 2025-03-13..2025-03-19", status.History)
	}
}

func TestApplyCheckinDuplicateDateRejected(t *testing.T) {
	db := newTestDB(t)
	store := checkin.NewGormStore(db)
	userID := createUser(t, db, "heidi")

	if _, err := store.ApplyCheckin(context.Background(), userID, "2025-03-10", 1, 15); err != nil {
		t.Fatalf("first apply failed: %v", err)
	}
	// A concurrent duplicate submission lands on the unique index.
	_, err := store.ApplyCheckin(context.Background(), userID, "2025-03-10", 1, 15)
	if !errors.Is(err, checkin.ErrAlreadyCheckedIn) {
		t.Fatalf("duplicate apply: got err=%v, want ErrAlreadyCheckedIn", err)
	}

	var user models.User
	db.First(&user, userID)
	if user.Coins != 15 {
		t.Fatalf("coins double-applied: %d", user.Coins)
	}
}
