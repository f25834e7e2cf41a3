package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/playgrid/playgrid/models"
	"github.com/playgrid/playgrid/utils"
)

// PostController handles forum posts and comments.
type PostController struct {
	db *gorm.DB
}

// NewPostController creates a PostController.
func NewPostController(db *gorm.DB) *PostController {
	return &PostController{db: db}
}

// ListPosts returns posts ordered by recency, paginated, optionally
// filtered by category.
func (p *PostController) ListPosts(ctx *gin.Context) {
	page, pageSize := parsePagination(ctx.Query("page"), ctx.Query("page_size"))

	q := p.db.Model(&models.Post{})
	if category := strings.TrimSpace(ctx.Query("category")); category != "" {
		q = q.Where("category = ?", category)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50070, "failed to count posts")
		return
	}

	var posts []models.Post
	if err := q.Preload("User").
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&posts).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50071, "failed to load posts")
		return
	}

	utils.Success(ctx, gin.H{
		"items": posts,
		"pagination": gin.H{
			"page":        page,
			"page_size":   pageSize,
			"total":       total,
			"total_pages": int((total + int64(pageSize) - 1) / int64(pageSize)),
		},
	})
}

// GetPost returns a single post with its comments.
func (p *PostController) GetPost(ctx *gin.Context) {
	var post models.Post
	err := p.db.Preload("User").Preload("Comments.User").First(&post, ctx.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40440, "post not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50072, "failed to load post")
		return
	}
	utils.Success(ctx, post)
}

// CreatePost creates a new forum post owned by the authenticated user.
func (p *PostController) CreatePost(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	type request struct {
		Title    string `json:"title" binding:"required,max=255"`
		Content  string `json:"content" binding:"required"`
		Category string `json:"category"`
	}
	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	title := strings.TrimSpace(utils.Sanitize(req.Title))
	content := strings.TrimSpace(utils.Sanitize(req.Content))
	if title == "" || content == "" {
		utils.Error(ctx, http.StatusBadRequest, 40070, "title and content must not be empty")
		return
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = "general"
	}

	post := models.Post{
		UserID:   userID,
		Title:    title,
		Content:  content,
		Category: category,
	}
	if err := p.db.Create(&post).Error; err != nil {
		utils.Sugar.Errorf("create post failed: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50073, "failed to create post")
		return
	}

	utils.Success(ctx, post)
}

// DeletePost removes a post; only the owner may delete it.
func (p *PostController) DeletePost(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var post models.Post
	if err := p.db.First(&post, ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40440, "post not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50072, "failed to load post")
		return
	}
	if post.UserID != userID {
		utils.Error(ctx, http.StatusForbidden, 40310, "not the post owner")
		return
	}

	if err := p.db.Select("Comments").Delete(&post).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50074, "failed to delete post")
		return
	}
	utils.Success(ctx, gin.H{"message": "post deleted"})
}

// CreateComment adds a comment to a post.
func (p *PostController) CreateComment(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var post models.Post
	if err := p.db.First(&post, ctx.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40440, "post not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50072, "failed to load post")
		return
	}

	type request struct {
		Content string `json:"content" binding:"required"`
	}
	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	content := strings.TrimSpace(utils.Sanitize(req.Content))
	if content == "" {
		utils.Error(ctx, http.StatusBadRequest, 40071, "comment must not be empty")
		return
	}

	comment := models.Comment{
		PostID:  post.ID,
		UserID:  userID,
		Content: content,
	}
	if err := p.db.Create(&comment).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50075, "failed to create comment")
		return
	}

	utils.Success(ctx, comment)
}

// DeleteComment removes a comment; only the author may delete it.
func (p *PostController) DeleteComment(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var comment models.Comment
	if err := p.db.First(&comment, ctx.Param("commentId")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40441, "comment not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50076, "failed to load comment")
		return
	}
	if comment.UserID != userID {
		utils.Error(ctx, http.StatusForbidden, 40311, "not the comment author")
		return
	}

	if err := p.db.Delete(&comment).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50077, "failed to delete comment")
		return
	}
	utils.Success(ctx, gin.H{"message": "comment deleted"})
}
