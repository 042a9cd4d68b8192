package handlers

import (
	"net/http"

	"evalyze_backend/internal/dto"
	"evalyze_backend/internal/middleware"
	"evalyze_backend/internal/models"
	"evalyze_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	*BaseHandler
	profileService services.ProfileService
}

func NewProfileHandler(base *BaseHandler, profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    base,
		profileService: profileService,
	}
}

func (h *ProfileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	// Public profile endpoints used by invitation flows and the demo page.
	public := rg.Group("/profile")
	{
		public.GET("/email/:email", h.GetProfileByEmail)
		public.POST("/analyze-competencies", h.AnalyzeCompetencies)
	}

	profile := rg.Group("/profile")
	profile.Use(middleware.AuthMiddleware())
	{
		profile.POST("", h.UpsertMyProfile)
		profile.GET("/me", h.GetMyProfile)
		profile.GET("/user/:userId", h.GetProfileByUserID)
		profile.GET("/all", h.GetAllProfiles)
		profile.GET("/company/:companyId", h.GetCompanyProfiles)
		profile.PUT("/:userId/status", h.UpdateProfileStatus)
		profile.POST("/employee", h.CreateEmployeeProfile)
		profile.POST("/assign-job-role-flexible", h.AssignJobRoleFlexible)
		profile.POST("/:userId/assign-job-role", h.AssignJobRole)
		profile.POST("/:userId/generate-ai", h.GenerateAIProfile)
	}
}

func (h *ProfileHandler) UpsertMyProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.profileService.CreateOrUpdateProfile(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetProfileByUserID(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) GetProfileByUserID(c *gin.Context) {
	profile, err := h.profileService.GetProfileByUserID(c.Param("userId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) GetAllProfiles(c *gin.Context) {
	profiles, err := h.profileService.GetAllProfiles()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profiles": profiles, "count": len(profiles)})
}

func (h *ProfileHandler) GetCompanyProfiles(c *gin.Context) {
	profiles, err := h.profileService.GetCompanyProfiles(c.Param("companyId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profiles": profiles, "count": len(profiles)})
}

func (h *ProfileHandler) GetProfileByEmail(c *gin.Context) {
	profile, err := h.profileService.FindProfileByEmail(c.Param("email"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) UpdateProfileStatus(c *gin.Context) {
	var req dto.UpdateProfileStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.profileService.UpdateProfileStatus(c.Param("userId"), models.ProfileStatus(req.Status))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) CreateEmployeeProfile(c *gin.Context) {
	var req dto.CreateEmployeeProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.profileService.CreateEmployeeProfile(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

func (h *ProfileHandler) AssignJobRole(c *gin.Context) {
	var req dto.AssignJobRoleRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.profileService.AssignJobRole(c.Param("userId"), req.JobRoleID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ProfileHandler) AssignJobRoleFlexible(c *gin.Context) {
	var req dto.AssignJobRoleFlexibleRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.profileService.AssignJobRoleFlexible(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ProfileHandler) GenerateAIProfile(c *gin.Context) {
	response, err := h.profileService.GenerateAIProfile(c.Param("userId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *ProfileHandler) AnalyzeCompetencies(c *gin.Context) {
	var req dto.CompetencyAnalysisRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.profileService.AnalyzeCompetencies(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Competency analysis triggered", "webhookResponse": response})
}
