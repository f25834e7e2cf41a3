package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/playgrid/playgrid/models"
	"github.com/playgrid/playgrid/utils"
)

// Leaderboard pages are cached briefly; balances change on every check-in
// and purchase, so a short TTL keeps the board fresh enough.
const leaderboardCacheTTL = time.Minute

// LeaderboardController serves the coin leaderboard.
type LeaderboardController struct {
	db *gorm.DB
}

// NewLeaderboardController creates a LeaderboardController.
func NewLeaderboardController(db *gorm.DB) *LeaderboardController {
	return &LeaderboardController{db: db}
}

type leaderboardEntry struct {
	Rank            int    `json:"rank"`
	UserID          uint   `json:"user_id"`
	Username        string `json:"username"`
	AvatarURL       string `json:"avatar_url"`
	Coins           int    `json:"coins"`
	ConsecutiveDays int    `json:"consecutive_checkin_days"`
}

// GetLeaderboard returns users ranked by coin balance, paginated.
func (l *LeaderboardController) GetLeaderboard(ctx *gin.Context) {
	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))

	cacheKey := fmt.Sprintf("cache:leaderboard:%d:%d", page, pageSize)
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	var total int64
	if err := l.db.Model(&models.User{}).Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50040, "failed to count users")
		return
	}

	var users []models.User
	if err := l.db.
		Order("coins DESC, id ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&users).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50041, "failed to load leaderboard")
		return
	}

	entries := make([]leaderboardEntry, 0, len(users))
	for i, u := range users {
		entries = append(entries, leaderboardEntry{
			Rank:            (page-1)*pageSize + i + 1,
			UserID:          u.ID,
			Username:        u.Username,
			AvatarURL:       u.AvatarURL,
			Coins:           u.Coins,
			ConsecutiveDays: u.ConsecutiveCheckinDays,
		})
	}

	payload := gin.H{
		"items": entries,
		"pagination": gin.H{
			"page":        page,
			"page_size":   pageSize,
			"total":       total,
			"total_pages": int((total + int64(pageSize) - 1) / int64(pageSize)),
		},
	}
	utils.CacheSetJSON(cacheKey, utils.JSONResponse{Code: 0, Message: "success", Data: payload}, leaderboardCacheTTL)
	utils.Success(ctx, payload)
}
