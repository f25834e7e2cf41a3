package checkin

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/playgrid/playgrid/models"
)

// GormStore implements Store on top of the relational schema: the
// checkin_records table is the history, users carries the denormalized
// last-date/streak/coins fields.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps a gorm handle as a check-in Store.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// FindUser loads the check-in slice of a user record. A user that has never
// checked in simply carries the zero values for the check-in fields.
func (s *GormStore) FindUser(ctx context.Context, userID uint) (UserState, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserState{}, ErrUserNotFound
		}
		return UserState{}, err
	}
	return UserState{
		ID:              user.ID,
		LastCheckinDate: user.LastCheckinDate,
		ConsecutiveDays: user.ConsecutiveCheckinDays,
		Coins:           user.Coins,
	}, nil
}

// History returns every check-in date for the user in ascending order.
func (s *GormStore) History(ctx context.Context, userID uint) ([]string, error) {
	var dates []string
	err := s.db.WithContext(ctx).
		Model(&models.CheckinRecord{}).
		Where("user_id = ?", userID).
		Order("checkin_date ASC").
		Pluck("checkin_date", &dates).Error
	if err != nil {
		return nil, err
	}
	return dates, nil
}

// ApplyCheckin lands the whole check-in in a single transaction. The insert
// goes first: the unique (user_id, checkin_date) index turns a concurrent
// duplicate submission into a duplicate-key error instead of a double
// reward, and the coin increment is a SQL expression so it never applies a
// stale read-back value.
func (s *GormStore) ApplyCheckin(ctx context.Context, userID uint, date string, streakDay, reward int) (int, error) {
	var newCoins int
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record := models.CheckinRecord{
			UserID:      userID,
			CheckinDate: date,
			Reward:      reward,
			StreakDay:   streakDay,
		}
		if err := tx.Create(&record).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrAlreadyCheckedIn
			}
			return err
		}

		res := tx.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
			"coins":                    gorm.Expr("coins + ?", reward),
			"last_checkin_date":        date,
			"consecutive_checkin_days": streakDay,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrUserNotFound
		}

		var user models.User
		if err := tx.Select("coins").First(&user, userID).Error; err != nil {
			return err
		}
		newCoins = user.Coins
		return nil
	})
	if err != nil {
		return 0, err
	}
	return newCoins, nil
}
