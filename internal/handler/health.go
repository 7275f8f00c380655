package handler

import (
	"context"
	"net/http"
	"time"

	"istorepro/internal/infra"
	"istorepro/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type healthReport struct {
	OK    bool             `json:"ok"`
	DB    string           `json:"db"`
	Redis string           `json:"redis"`
	CEP   string           `json:"cep,omitempty"`
	DLQ   map[string]int64 `json:"dlq,omitempty"`
}

// Health pings Postgres and Redis. The CEP breaker state and the dead letter
// backlog are informational and never fail the check.
//
// @Summary  Health check
// @Tags     infra
// @Produce  json
// @Success  200 {object} healthReport
// @Failure  503 {object} healthReport
// @Router   /health [get]
func Health(db *gorm.DB, rdb *redis.Client, cepBreaker *infra.CircuitBreaker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		rep := healthReport{DB: "connected", Redis: "connected"}
		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
			rep.DB = "error"
		}
		if rdb.Ping(ctx).Err() != nil {
			rep.Redis = "error"
		} else {
			rep.DLQ = make(map[string]int64, 2)
			for _, q := range []string{worker.QueueRecibo, worker.QueueEmail} {
				if n, err := worker.DLQLength(ctx, rdb, q); err == nil {
					rep.DLQ[q] = n
				}
			}
		}
		if cepBreaker != nil {
			rep.CEP = cepBreaker.State().String()
		}

		rep.OK = rep.DB == "connected" && rep.Redis == "connected"
		status := http.StatusOK
		if !rep.OK {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, rep)
	}
}
