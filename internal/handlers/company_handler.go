package handlers

import (
	"net/http"

	"evalyze_backend/internal/dto"
	"evalyze_backend/internal/middleware"
	"evalyze_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type CompanyHandler struct {
	*BaseHandler
	companyService services.CompanyService
}

func NewCompanyHandler(base *BaseHandler, companyService services.CompanyService) *CompanyHandler {
	return &CompanyHandler{
		BaseHandler:    base,
		companyService: companyService,
	}
}

func (h *CompanyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	companies := rg.Group("/companies")
	companies.Use(middleware.AuthMiddleware())
	{
		companies.GET("", h.ListCompanies)
		companies.POST("", h.CreateCompany)
		companies.GET("/:id", h.GetCompany)
		companies.PUT("/:id", h.UpdateCompany)
		companies.DELETE("/:id", h.DeleteCompany)
		companies.GET("/:id/job-roles", h.ListCompanyJobRoles)
		companies.POST("/:id/job-roles", h.CreateJobRole)
	}

	jobRoles := rg.Group("/job-roles")
	jobRoles.Use(middleware.AuthMiddleware())
	{
		jobRoles.GET("", h.ListJobRoles)
		jobRoles.GET("/:id", h.GetJobRole)
		jobRoles.PUT("/:id", h.UpdateJobRole)
		jobRoles.DELETE("/:id", h.DeleteJobRole)
	}
}

func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	companies, err := h.companyService.GetAllCompanies()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"companies": companies, "count": len(companies)})
}

func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	var req dto.CreateCompanyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	company, err := h.companyService.CreateCompany(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, company)
}

func (h *CompanyHandler) GetCompany(c *gin.Context) {
	company, err := h.companyService.GetCompanyByID(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

func (h *CompanyHandler) UpdateCompany(c *gin.Context) {
	var req dto.UpdateCompanyRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	company, err := h.companyService.UpdateCompany(c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

func (h *CompanyHandler) DeleteCompany(c *gin.Context) {
	if err := h.companyService.DeleteCompany(c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Company deleted"})
}

func (h *CompanyHandler) ListCompanyJobRoles(c *gin.Context) {
	roles, err := h.companyService.GetCompanyJobRoles(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobRoles": roles, "count": len(roles)})
}

func (h *CompanyHandler) CreateJobRole(c *gin.Context) {
	var req dto.CreateJobRoleRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	role, err := h.companyService.CreateJobRole(c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, role)
}

func (h *CompanyHandler) ListJobRoles(c *gin.Context) {
	roles, err := h.companyService.GetAllJobRoles()
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobRoles": roles, "count": len(roles)})
}

func (h *CompanyHandler) GetJobRole(c *gin.Context) {
	role, err := h.companyService.GetJobRoleByID(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, role)
}

func (h *CompanyHandler) UpdateJobRole(c *gin.Context) {
	var req dto.UpdateJobRoleRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	role, err := h.companyService.UpdateJobRole(c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, role)
}

func (h *CompanyHandler) DeleteJobRole(c *gin.Context) {
	if err := h.companyService.DeleteJobRole(c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job role deleted"})
}
