package models

import "time"

// FileUpload records an uploaded file. FilePath points at the physical
// object; its lifecycle is tied to this row best-effort.
type FileUpload struct {
	BaseModel
	UserID       string    `gorm:"type:uuid;not null;index" json:"userId"`
	FileName     string    `gorm:"not null" json:"fileName"`
	OriginalName string    `json:"originalName"`
	FileSize     int64     `json:"fileSize"`
	MimeType     string    `json:"mimeType"`
	FilePath     string    `gorm:"not null" json:"filePath"`
	UploadedAt   time.Time `gorm:"default:now()" json:"uploadedAt"`
}
