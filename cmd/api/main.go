package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/trimlylabs/trimly-api/internal/config"
	dbpkg "github.com/trimlylabs/trimly-api/internal/db"
	"github.com/trimlylabs/trimly-api/internal/logger"
	"github.com/trimlylabs/trimly-api/internal/routes"
)

func main() {

	cfg := config.Load()

	log := logger.New(cfg.Env)
	defer log.Sync()

	db := dbpkg.NewDB(cfg)

	// Rate limiting degrades to a no-op without redis.
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, log, rdb)

	log.Info("server starting",
		zap.String("addr", cfg.Addr()),
		zap.String("env", cfg.Env),
		zap.String("timezone", cfg.Timezone),
	)

	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
