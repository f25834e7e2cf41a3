package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/playgrid/playgrid/checkin"
	"github.com/playgrid/playgrid/utils"
)

// CheckinController exposes the daily check-in engine over HTTP.
type CheckinController struct {
	svc *checkin.Service
}

// NewCheckinController wires the engine to a database-backed store.
func NewCheckinController(db *gorm.DB) *CheckinController {
	return &CheckinController{svc: checkin.NewService(checkin.NewGormStore(db))}
}

// NewCheckinControllerWithService allows injecting a preconfigured service,
// e.g. one with a fixed clock.
func NewCheckinControllerWithService(svc *checkin.Service) *CheckinController {
	return &CheckinController{svc: svc}
}

// The check-in endpoints keep the platform's original camelCase wire format.
type checkinStatusResponse struct {
	HasCheckedInToday bool     `json:"hasCheckedInToday"`
	ConsecutiveDays   int      `json:"consecutiveDays"`
	NextReward        int      `json:"nextReward"`
	CheckinHistory    []string `json:"checkinHistory"`
}

type checkinResultResponse struct {
	Success         bool   `json:"success"`
	Reward          int    `json:"reward"`
	ConsecutiveDays int    `json:"consecutiveDays"`
	NewCoins        int    `json:"newCoins"`
	Message         string `json:"message"`
}

// Status returns today's check-in state without mutating anything.
func (cc *CheckinController) Status(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	status, err := cc.svc.Status(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, checkin.ErrUserNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40420, "user not found")
			return
		}
		utils.Sugar.Errorf("check-in status failed for user %d: %v", userID, err)
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to load check-in status")
		return
	}

	history := status.History
	if history == nil {
		history = []string{}
	}
	utils.Success(ctx, checkinStatusResponse{
		HasCheckedInToday: status.HasCheckedInToday,
		ConsecutiveDays:   status.ConsecutiveDays,
		NextReward:        status.NextReward,
		CheckinHistory:    history,
	})
}

// CheckIn performs today's check-in and awards coins.
func (cc *CheckinController) CheckIn(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	result, err := cc.svc.CheckIn(ctx.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, checkin.ErrAlreadyCheckedIn):
			utils.Error(ctx, http.StatusBadRequest, 40021, "already checked in today")
		case errors.Is(err, checkin.ErrUserNotFound):
			utils.Error(ctx, http.StatusNotFound, 40420, "user not found")
		default:
			utils.Sugar.Errorf("check-in failed for user %d: %v", userID, err)
			utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to record check-in")
		}
		return
	}

	utils.Success(ctx, checkinResultResponse{
		Success:         true,
		Reward:          result.Reward,
		ConsecutiveDays: result.ConsecutiveDays,
		NewCoins:        result.NewCoins,
		Message:         "check-in successful",
	})
}
