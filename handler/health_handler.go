package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"syntora/utils"
)

var startTime = time.Now()

type HealthHandler struct {
	mongo *mongo.Client
}

func NewHealthHandler(client *mongo.Client) *HealthHandler {
	return &HealthHandler{mongo: client}
}

func (h *HealthHandler) Check(c *gin.Context) {
	status := "healthy"
	code := http.StatusOK

	dbStatus := "up"
	if h.mongo != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.mongo.Ping(ctx, readpref.Primary()); err != nil {
			dbStatus = "down"
			status = "degraded"
			code = http.StatusServiceUnavailable
		}
	}

	c.JSON(code, gin.H{
		"status":         status,
		"database":       dbStatus,
		"uptime":         time.Since(startTime).String(),
		"cpu_percent":    utils.GetCPUUsage(),
		"memory_percent": utils.GetMemoryUsage(),
	})
}
