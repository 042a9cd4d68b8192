package services

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"time"

	"evalyze_backend/internal/config"
	"evalyze_backend/internal/dto"
	"evalyze_backend/internal/logger"
	"evalyze_backend/internal/models"
	"evalyze_backend/internal/repositories"
	"evalyze_backend/internal/storage"
	"evalyze_backend/pkg/apperrors"
)

type UploadService interface {
	UploadFiles(ctx context.Context, userID string, files []*multipart.FileHeader) ([]dto.FileUploadResponse, error)
	GetUserFiles(userID string) ([]dto.FileUploadResponse, error)
	GetFileInfo(fileID, userID string) (*dto.FileUploadResponse, error)
	OpenFile(ctx context.Context, fileID, userID string) (*models.FileUpload, io.ReadCloser, error)
	DeleteFile(ctx context.Context, fileID, userID string) error
	GetStorageStats(userID string) (*dto.StorageStatsResponse, error)
	CleanupOldFiles(ctx context.Context, daysOld int) (*dto.CleanupResponse, error)
	RetentionDays() int
}

type UploadServiceImpl struct {
	fileRepo repositories.FileUploadRepository
	store    storage.Storage
	cfg      *config.Config
}

func NewUploadService(
	fileRepo repositories.FileUploadRepository,
	store storage.Storage,
	cfg *config.Config,
) UploadService {
	return &UploadServiceImpl{
		fileRepo: fileRepo,
		store:    store,
		cfg:      cfg,
	}
}

// UploadFiles validates and stores a batch of files for the user. The
// batch is not atomic: files already stored stay stored when a later one
// fails.
func (s *UploadServiceImpl) UploadFiles(ctx context.Context, userID string, files []*multipart.FileHeader) ([]dto.FileUploadResponse, error) {
	if len(files) == 0 {
		return nil, apperrors.NewBadRequestError("No files uploaded")
	}
	if max := s.cfg.Upload.MaxFilesPerCall; max > 0 && len(files) > max {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("Too many files: maximum %d per request", max))
	}

	responses := make([]dto.FileUploadResponse, 0, len(files))
	for _, header := range files {
		record, err := s.saveOne(ctx, userID, header)
		if err != nil {
			return nil, err
		}
		responses = append(responses, *dto.NewFileUploadResponse(record))
	}
	return responses, nil
}

func (s *UploadServiceImpl) saveOne(ctx context.Context, userID string, header *multipart.FileHeader) (*models.FileUpload, error) {
	if err := s.validateFile(header); err != nil {
		return nil, err
	}

	src, err := header.Open()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	defer src.Close()

	fileName := generateFileName(header.Filename)
	path := filepath.ToSlash(filepath.Join(userID, fileName))
	contentType := header.Header.Get("Content-Type")

	if err := s.store.Save(ctx, path, src, contentType); err != nil {
		return nil, apperrors.InternalError(err)
	}

	record := &models.FileUpload{
		UserID:       userID,
		FileName:     fileName,
		OriginalName: header.Filename,
		FileSize:     header.Size,
		MimeType:     contentType,
		FilePath:     path,
		UploadedAt:   time.Now(),
	}
	if err := s.fileRepo.Create(record); err != nil {
		// Keep storage and the table consistent: drop the orphaned object.
		if delErr := s.store.Delete(ctx, path); delErr != nil {
			logger.Error("failed to remove orphaned upload", "path", path, "error", delErr)
		}
		return nil, apperrors.InternalError(err)
	}

	return record, nil
}

func (s *UploadServiceImpl) validateFile(header *multipart.FileHeader) error {
	if max := s.cfg.Upload.MaxSize; max > 0 && header.Size > max {
		return apperrors.ErrFileTooLarge(fmt.Sprintf("File %s exceeds the %d byte limit", header.Filename, max))
	}

	contentType := header.Header.Get("Content-Type")
	if len(s.cfg.Upload.AllowedTypes) > 0 && !contains(s.cfg.Upload.AllowedTypes, contentType) {
		return apperrors.ErrFileTypeNotAllowed(contentType)
	}
	return nil
}

func (s *UploadServiceImpl) GetUserFiles(userID string) ([]dto.FileUploadResponse, error) {
	files, err := s.fileRepo.FindByUserID(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]dto.FileUploadResponse, 0, len(files))
	for i := range files {
		responses = append(responses, *dto.NewFileUploadResponse(&files[i]))
	}
	return responses, nil
}

func (s *UploadServiceImpl) GetFileInfo(fileID, userID string) (*dto.FileUploadResponse, error) {
	record, err := s.findOwnedFile(fileID, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewFileUploadResponse(record), nil
}

// OpenFile returns the file record and a reader over its content. The
// caller closes the reader.
func (s *UploadServiceImpl) OpenFile(ctx context.Context, fileID, userID string) (*models.FileUpload, io.ReadCloser, error) {
	record, err := s.findOwnedFile(fileID, userID)
	if err != nil {
		return nil, nil, err
	}

	reader, err := s.store.Get(ctx, record.FilePath)
	if err != nil {
		return nil, nil, apperrors.ErrNotFound(err)
	}
	return record, reader, nil
}

// DeleteFile removes the row and then the physical object; a failed
// physical delete is logged and tolerated.
func (s *UploadServiceImpl) DeleteFile(ctx context.Context, fileID, userID string) error {
	record, err := s.findOwnedFile(fileID, userID)
	if err != nil {
		return err
	}

	if err := s.fileRepo.Delete(record.ID); err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.store.Delete(ctx, record.FilePath); err != nil {
		logger.Error("failed to delete stored file", "path", record.FilePath, "error", err)
	}
	return nil
}

func (s *UploadServiceImpl) GetStorageStats(userID string) (*dto.StorageStatsResponse, error) {
	count, err := s.fileRepo.CountByUserID(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	total, err := s.fileRepo.TotalSizeByUserID(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.StorageStatsResponse{
		FileCount:   count,
		TotalSize:   total,
		TotalSizeMB: float64(total) / (1024 * 1024),
	}, nil
}

// CleanupOldFiles purges files older than daysOld. A row whose object can
// not be removed is kept for the next pass.
func (s *UploadServiceImpl) CleanupOldFiles(ctx context.Context, daysOld int) (*dto.CleanupResponse, error) {
	if daysOld <= 0 {
		daysOld = s.RetentionDays()
	}

	cutoff := time.Now().AddDate(0, 0, -daysOld)
	old, err := s.fileRepo.FindOlderThan(cutoff)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	deleted := 0
	for i := range old {
		if err := s.store.Delete(ctx, old[i].FilePath); err != nil {
			logger.Warn("cleanup could not delete stored file", "path", old[i].FilePath, "error", err)
			continue
		}
		if err := s.fileRepo.Delete(old[i].ID); err != nil {
			logger.Warn("cleanup could not delete file record", "fileId", old[i].ID, "error", err)
			continue
		}
		deleted++
	}

	return &dto.CleanupResponse{
		Message:       fmt.Sprintf("Cleanup removed files older than %d days", daysOld),
		DeletedCount:  deleted,
		TotalOldFiles: len(old),
	}, nil
}

func (s *UploadServiceImpl) RetentionDays() int {
	if s.cfg.Upload.RetentionDays > 0 {
		return s.cfg.Upload.RetentionDays
	}
	return 30
}

func (s *UploadServiceImpl) findOwnedFile(fileID, userID string) (*models.FileUpload, error) {
	record, err := s.fileRepo.FindByID(fileID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrFileNotFound) {
			return nil, apperrors.ErrFileNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if record.UserID != userID {
		return nil, apperrors.ErrFileAccessDenied
	}
	return record, nil
}

func generateFileName(original string) string {
	ext := filepath.Ext(original)
	return fmt.Sprintf("%d_%s%s", time.Now().UnixMilli(), randomHex(8), ext)
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
