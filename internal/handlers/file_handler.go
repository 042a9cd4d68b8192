package handlers

import (
	"net/http"

	"evalyze_backend/internal/dto"
	"evalyze_backend/internal/middleware"
	"evalyze_backend/internal/services"
	"evalyze_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type FileHandler struct {
	*BaseHandler
	uploadService services.UploadService
}

func NewFileHandler(base *BaseHandler, uploadService services.UploadService) *FileHandler {
	return &FileHandler{
		BaseHandler:   base,
		uploadService: uploadService,
	}
}

func (h *FileHandler) RegisterRoutes(rg *gin.RouterGroup) {
	files := rg.Group("/files")
	files.Use(middleware.AuthMiddleware())
	{
		files.POST("/upload", h.Upload)
		files.GET("/my-files", h.MyFiles)
		files.GET("/storage-stats", h.StorageStats)
		files.GET("/:fileId", h.FileInfo)
		files.GET("/:fileId/download", h.Download)
		files.DELETE("/:fileId", h.Delete)
		files.POST("/cleanup", h.Cleanup)
	}
}

func (h *FileHandler) Upload(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid multipart form: "+err.Error()))
		return
	}

	files := form.File["files"]
	responses, err := h.uploadService.UploadFiles(c.Request.Context(), userID, files)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Files uploaded successfully",
		"files":   responses,
		"count":   len(responses),
	})
}

func (h *FileHandler) MyFiles(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	files, err := h.uploadService.GetUserFiles(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"files": files, "count": len(files)})
}

func (h *FileHandler) StorageStats(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	stats, err := h.uploadService.GetStorageStats(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *FileHandler) FileInfo(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	info, err := h.uploadService.GetFileInfo(c.Param("fileId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

func (h *FileHandler) Download(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	record, reader, err := h.uploadService.OpenFile(c.Request.Context(), c.Param("fileId"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", `attachment; filename="`+record.OriginalName+`"`)
	c.DataFromReader(http.StatusOK, record.FileSize, record.MimeType, reader, nil)
}

func (h *FileHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.uploadService.DeleteFile(c.Request.Context(), c.Param("fileId"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "File deleted successfully"})
}

func (h *FileHandler) Cleanup(c *gin.Context) {
	// Body is optional; without it the configured retention applies.
	var req dto.CleanupRequest
	if c.Request.ContentLength > 0 && !h.BindAndValidate_JSON(c, &req) {
		return
	}

	response, err := h.uploadService.CleanupOldFiles(c.Request.Context(), req.DaysOld)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}
