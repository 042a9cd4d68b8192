package handlers

import (
	"net/http"
	"time"

	"evalyze_backend/internal/config"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthHandler reports liveness. db is nil in mock mode.
type HealthHandler struct {
	cfg *config.Config
	db  *gorm.DB
}

func NewHealthHandler(cfg *config.Config, db *gorm.DB) *HealthHandler {
	return &HealthHandler{cfg: cfg, db: db}
}

func (h *HealthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
	rg.GET("/health/detailed", h.DetailedHealth)
}

func (h *HealthHandler) mode() string {
	if h.cfg.MockMode() {
		return "mock"
	}
	return "real"
}

func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"mode":      h.mode(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *HealthHandler) DetailedHealth(c *gin.Context) {
	response := gin.H{
		"status":    "ok",
		"mode":      h.mode(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"webhooks": gin.H{
			"analyzeCompetencies": h.cfg.Webhooks.AnalyzeCompetencies != "",
			"assignJobRole":       h.cfg.Webhooks.AssignJobRole != "",
			"generateAiProfile":   h.cfg.Webhooks.GenerateAIProfile != "",
		},
	}

	if h.db != nil {
		sqlDB, err := h.db.DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err != nil {
			response["status"] = "degraded"
			response["database"] = "unreachable"
			c.JSON(http.StatusServiceUnavailable, response)
			return
		}
		response["database"] = "ok"
	} else {
		response["database"] = "mock"
	}

	c.JSON(http.StatusOK, response)
}
