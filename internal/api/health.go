package api

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
	"gorm.io/gorm"                 // GORM ORM library
)

// HealthHandler reports whether the database and cache are reachable
func HealthHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(ctx)
		}
		if err != nil {
			logrus.WithError(err).Error("Database health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"message": "database unavailable"})
			return
		}
		cache := "disabled"
		if rdb != nil {
			cache = "ok"
			if err := rdb.Ping(ctx).Err(); err != nil {
				logrus.WithError(err).Warn("Redis health check failed")
				cache = "unavailable" // Requests still work without the cache
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "cache": cache})
	}
}
