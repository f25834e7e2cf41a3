package controllers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/playgrid/playgrid/checkin"
	"github.com/playgrid/playgrid/models"
	"github.com/playgrid/playgrid/utils"
)

// StatsController provides aggregate platform statistics.
type StatsController struct {
	db *gorm.DB
}

// NewStatsController creates a StatsController.
func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{db: db}
}

// GetStats returns platform-wide counters. Individual failures fall back to
// zero instead of failing the whole endpoint.
func (s *StatsController) GetStats(ctx *gin.Context) {
	var userCount int64
	var postCount int64
	var checkinsToday int64
	var trafficToday int64

	if err := s.db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		userCount = 0
	}
	if err := s.db.Model(&models.Post{}).Count(&postCount).Error; err != nil {
		postCount = 0
	}

	today := checkin.Today(time.Now())
	if err := s.db.Model(&models.CheckinRecord{}).
		Where("checkin_date = ?", today).
		Count(&checkinsToday).Error; err != nil {
		checkinsToday = 0
	}
	if err := s.db.Model(&models.PageView{}).
		Where("date = ?", today).
		Select("COALESCE(SUM(count),0)").
		Scan(&trafficToday).Error; err != nil {
		trafficToday = 0
	}

	utils.Success(ctx, gin.H{
		"user_count":     userCount,
		"post_count":     postCount,
		"checkins_today": checkinsToday,
		"traffic_today":  trafficToday,
	})
}
