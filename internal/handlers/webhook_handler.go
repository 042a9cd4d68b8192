package handlers

import (
	"net/http"

	"evalyze_backend/internal/dto"
	"evalyze_backend/internal/middleware"
	"evalyze_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// WebhookHandler exposes the dispatcher directly: configuration inspection,
// connectivity tests and manual event triggers.
type WebhookHandler struct {
	*BaseHandler
	webhooks services.WebhookDispatcher
}

func NewWebhookHandler(base *BaseHandler, webhooks services.WebhookDispatcher) *WebhookHandler {
	return &WebhookHandler{
		BaseHandler: base,
		webhooks:    webhooks,
	}
}

func (h *WebhookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	hooks := rg.Group("/webhooks")
	hooks.Use(middleware.AuthMiddleware())
	{
		hooks.GET("/config", h.Config)
		hooks.POST("/test", h.Test)
		hooks.POST("/test-all", h.TestAll)
		hooks.POST("/analyze-competencies", h.AnalyzeCompetencies)
		hooks.POST("/assign-job-role", h.AssignJobRole)
		hooks.POST("/generate-ai-profile", h.GenerateAIProfile)
	}
}

func (h *WebhookHandler) Config(c *gin.Context) {
	c.JSON(http.StatusOK, h.webhooks.Config())
}

func (h *WebhookHandler) Test(c *gin.Context) {
	var req dto.TestWebhookRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result := h.webhooks.Test(c.Request.Context(), req.WebhookURL)
	c.JSON(http.StatusOK, result)
}

func (h *WebhookHandler) TestAll(c *gin.Context) {
	results := h.webhooks.TestAll(c.Request.Context())
	c.JSON(http.StatusOK, results)
}

func (h *WebhookHandler) AnalyzeCompetencies(c *gin.Context) {
	var req dto.CompetencyAnalysisRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.webhooks.SendCompetencyAnalysis(c.Request.Context(), &services.CompetencyAnalysisEvent{
		UserEmail:   req.UserEmail,
		UserName:    req.UserName,
		ProfileData: req.ProfileData,
		CompanyName: req.CompanyName,
	})
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Webhook dispatched", "webhookResponse": response})
}

func (h *WebhookHandler) AssignJobRole(c *gin.Context) {
	var req dto.JobRoleAssignmentWebhookRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.webhooks.SendJobRoleAssignment(c.Request.Context(), &services.JobRoleAssignmentEvent{
		UserEmail:          req.UserEmail,
		UserName:           req.UserName,
		ActivationCode:     req.ActivationCode,
		JobRoleID:          req.JobRoleID,
		JobRoleTitle:       req.JobRoleTitle,
		JobRoleDescription: req.JobRoleDescription,
		ProfileData:        req.ProfileData,
		CompanyName:        req.CompanyName,
	})
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Webhook dispatched", "webhookResponse": response})
}

func (h *WebhookHandler) GenerateAIProfile(c *gin.Context) {
	var req dto.AIProfileWebhookRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.webhooks.SendAIProfileGeneration(c.Request.Context(), &services.AIProfileEvent{
		UserEmail:      req.UserEmail,
		UserName:       req.UserName,
		ProfileData:    req.ProfileData,
		CompanyName:    req.CompanyName,
		ActivationCode: req.ActivationCode,
		TelegramChatID: req.TelegramChatID,
		Status:         req.Status,
	})
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Webhook dispatched", "webhookResponse": response})
}
