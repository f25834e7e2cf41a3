package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/playgrid/playgrid/checkin"
	"github.com/playgrid/playgrid/models"
)

// TrafficRecorder counts successful GET requests per UTC day and path. The
// counters feed the public stats endpoint.
func TrafficRecorder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method != "GET" {
			return
		}
		status := c.Writer.Status()
		if status < 200 || status >= 400 {
			return
		}

		path := c.Request.URL.Path
		// Health probes and the stats endpoint itself would skew the numbers.
		if path == "/health" || strings.HasPrefix(path, "/api/stats") {
			return
		}

		today := checkin.Today(time.Now())

		// Atomic upsert to avoid duplicate key errors under concurrency.
		_ = db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "date"}, {Name: "path"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"count": gorm.Expr("count + 1"), "updated_at": time.Now()}),
		}).Create(&models.PageView{Date: today, Path: path, Count: 1}).Error
	}
}
