package dto

import (
	"time"

	"evalyze_backend/internal/models"
)

type FileUploadResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	FileName     string    `json:"fileName"`
	OriginalName string    `json:"originalName"`
	FileSize     int64     `json:"fileSize"`
	MimeType     string    `json:"mimeType"`
	FilePath     string    `json:"filePath"`
	UploadedAt   time.Time `json:"uploadedAt"`
}

func NewFileUploadResponse(f *models.FileUpload) *FileUploadResponse {
	return &FileUploadResponse{
		ID:           f.ID,
		UserID:       f.UserID,
		FileName:     f.FileName,
		OriginalName: f.OriginalName,
		FileSize:     f.FileSize,
		MimeType:     f.MimeType,
		FilePath:     f.FilePath,
		UploadedAt:   f.UploadedAt,
	}
}

type StorageStatsResponse struct {
	FileCount   int64   `json:"fileCount"`
	TotalSize   int64   `json:"totalSize"`
	TotalSizeMB float64 `json:"totalSizeMB"`
}

type CleanupRequest struct {
	DaysOld int `json:"daysOld" validate:"omitempty,min=1"`
}

type CleanupResponse struct {
	Message       string `json:"message"`
	DeletedCount  int    `json:"deletedCount"`
	TotalOldFiles int    `json:"totalOldFiles"`
}
