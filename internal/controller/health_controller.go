package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	DB        *gorm.DB
	StartedAt time.Time
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{DB: db, StartedAt: time.Now()}
}

// @Summary Liveness and database health
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (c *HealthController) Check(ctx *gin.Context) {
	status := "ok"
	code := http.StatusOK

	sqlDB, err := c.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx.Request.Context())
	}
	if err != nil {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	ctx.JSON(code, gin.H{
		"status": status,
		"uptime": time.Since(c.StartedAt).String(),
		"time":   time.Now().Format(time.RFC3339),
	})
}
