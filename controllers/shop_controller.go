package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/playgrid/playgrid/models"
	"github.com/playgrid/playgrid/utils"
)

var errInsufficientCoins = errors.New("insufficient coins")

// ShopController serves the in-app shop: item catalog and purchases.
type ShopController struct {
	db *gorm.DB
}

// NewShopController creates a ShopController.
func NewShopController(db *gorm.DB) *ShopController {
	return &ShopController{db: db}
}

// ListItems returns all available shop items, cached in Redis.
func (s *ShopController) ListItems(ctx *gin.Context) {
	const cacheKey = "cache:shop:items"
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	var items []models.ShopItem
	if err := s.db.Where("available = ?", true).Order("price ASC").Find(&items).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50060, "failed to load shop items")
		return
	}

	utils.CacheSetJSON(cacheKey, utils.JSONResponse{Code: 0, Message: "success", Data: items}, time.Hour)
	utils.Success(ctx, items)
}

// Purchase buys an item. The coin deduction is a conditional UPDATE
// (coins >= price) so a concurrent double-spend can never drive the balance
// negative.
func (s *ShopController) Purchase(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	type request struct {
		ItemID uint `json:"item_id" binding:"required"`
	}
	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	var item models.ShopItem
	if err := s.db.First(&item, req.ItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40430, "item not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50061, "failed to load item")
		return
	}
	if !item.Available {
		utils.Error(ctx, http.StatusBadRequest, 40061, "item not available")
		return
	}

	purchase := models.Purchase{
		OrderNo:   uuid.NewString(),
		UserID:    userID,
		ItemID:    item.ID,
		PricePaid: item.Price,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).
			Where("id = ? AND coins >= ?", userID, item.Price).
			Update("coins", gorm.Expr("coins - ?", item.Price))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errInsufficientCoins
		}
		return tx.Create(&purchase).Error
	})
	if err != nil {
		if errors.Is(err, errInsufficientCoins) {
			utils.Error(ctx, http.StatusBadRequest, 40060, "insufficient coins")
			return
		}
		utils.Sugar.Errorf("purchase failed for user %d item %d: %v", userID, item.ID, err)
		utils.Error(ctx, http.StatusInternalServerError, 50062, "failed to complete purchase")
		return
	}

	var user models.User
	if err := s.db.Select("coins").First(&user, userID).Error; err == nil {
		utils.Success(ctx, gin.H{
			"order_no":  purchase.OrderNo,
			"item":      item,
			"new_coins": user.Coins,
		})
		return
	}
	utils.Success(ctx, gin.H{
		"order_no": purchase.OrderNo,
		"item":     item,
	})
}

// ListPurchases returns the authenticated user's purchase history.
func (s *ShopController) ListPurchases(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var purchases []models.Purchase
	if err := s.db.Where("user_id = ?", userID).Preload("Item").Order("created_at DESC").Find(&purchases).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50063, "failed to load purchases")
		return
	}
	utils.Success(ctx, purchases)
}

// SeedShopItems inserts the default catalog when the table is empty.
func SeedShopItems(db *gorm.DB) {
	var count int64
	if err := db.Model(&models.ShopItem{}).Count(&count).Error; err != nil || count > 0 {
		return
	}
	items := []models.ShopItem{
		{Name: "Avatar Frame", Description: "Golden frame around your avatar", Icon: "frame", Price: 100, Available: true},
		{Name: "Name Color", Description: "Colored username on the leaderboard", Icon: "palette", Price: 150, Available: true},
		{Name: "Streak Shield", Description: "Cosmetic badge for check-in devotees", Icon: "shield", Price: 300, Available: true},
	}
	if err := db.Create(&items).Error; err != nil && utils.Sugar != nil {
		utils.Sugar.Warnf("seeding shop items failed: %v", err)
	}
}
