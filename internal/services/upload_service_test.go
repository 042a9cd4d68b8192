package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"testing"
	"time"

	"evalyze_backend/internal/config"
	"evalyze_backend/internal/repositories"
	"evalyze_backend/internal/storage"
	"evalyze_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testFile struct {
	name        string
	contentType string
	content     string
}

// makeFileHeaders builds real multipart file headers the way gin would
// hand them to the service.
func makeFileHeaders(t *testing.T, files []testFile) []*multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, f := range files {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename="%s"`, f.name))
		header.Set("Content-Type", f.contentType)

		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = io.WriteString(part, f.content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(&buf, writer.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	return form.File["files"]
}

type uploadFixture struct {
	service  UploadService
	fileRepo repositories.FileUploadRepository
	store    storage.Storage
	cfg      *config.Config
}

func newUploadFixture(t *testing.T) *uploadFixture {
	t.Helper()

	cfg := &config.Config{}
	cfg.Upload.MaxSize = 1024
	cfg.Upload.MaxFilesPerCall = 3
	cfg.Upload.AllowedTypes = []string{"application/pdf", "text/plain"}
	cfg.Upload.RetentionDays = 30

	store, err := storage.NewLocalStorage(storage.Config{
		Type:     "local",
		BasePath: t.TempDir(),
		BaseURL:  "/api/files",
	})
	require.NoError(t, err)

	fileRepo := repositories.NewMemoryFileUploadRepository()

	return &uploadFixture{
		service:  NewUploadService(fileRepo, store, cfg),
		fileRepo: fileRepo,
		store:    store,
		cfg:      cfg,
	}
}

func TestUploadFiles(t *testing.T) {
	f := newUploadFixture(t)

	headers := makeFileHeaders(t, []testFile{
		{name: "cv.pdf", contentType: "application/pdf", content: "pdf bytes"},
		{name: "notes.txt", contentType: "text/plain", content: "some notes"},
	})

	responses, err := f.service.UploadFiles(context.Background(), "user-1", headers)
	require.NoError(t, err)
	require.Len(t, responses, 2)

	assert.Equal(t, "cv.pdf", responses[0].OriginalName)
	assert.NotEqual(t, "cv.pdf", responses[0].FileName)
	assert.Equal(t, "user-1", responses[0].UserID)

	// Physical object exists under the user subdirectory.
	exists, err := f.store.Exists(context.Background(), responses[0].FilePath)
	require.NoError(t, err)
	assert.True(t, exists)

	stored, err := f.fileRepo.FindByUserID("user-1")
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestUploadFiles_TooMany(t *testing.T) {
	f := newUploadFixture(t)

	var files []testFile
	for i := 0; i < 4; i++ {
		files = append(files, testFile{
			name:        fmt.Sprintf("f%d.txt", i),
			contentType: "text/plain",
			content:     "x",
		})
	}

	_, err := f.service.UploadFiles(context.Background(), "user-1", makeFileHeaders(t, files))
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestUploadFiles_RejectedMimeType(t *testing.T) {
	f := newUploadFixture(t)

	headers := makeFileHeaders(t, []testFile{
		{name: "virus.exe", contentType: "application/x-msdownload", content: "mz"},
	})

	_, err := f.service.UploadFiles(context.Background(), "user-1", headers)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestUploadFiles_TooLarge(t *testing.T) {
	f := newUploadFixture(t)

	big := make([]byte, 2048)
	headers := makeFileHeaders(t, []testFile{
		{name: "big.txt", contentType: "text/plain", content: string(big)},
	})

	_, err := f.service.UploadFiles(context.Background(), "user-1", headers)
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, 400, appErr.HTTPCode)
}

func TestDeleteFile_NonOwnerIsForbidden(t *testing.T) {
	f := newUploadFixture(t)

	headers := makeFileHeaders(t, []testFile{
		{name: "mine.txt", contentType: "text/plain", content: "private"},
	})
	uploaded, err := f.service.UploadFiles(context.Background(), "owner", headers)
	require.NoError(t, err)

	err = f.service.DeleteFile(context.Background(), uploaded[0].ID, "intruder")
	assert.ErrorIs(t, err, apperrors.ErrFileAccessDenied)

	// Row and object stay untouched.
	_, err = f.fileRepo.FindByID(uploaded[0].ID)
	assert.NoError(t, err)
	exists, err := f.store.Exists(context.Background(), uploaded[0].FilePath)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestDeleteFile_Owner(t *testing.T) {
	f := newUploadFixture(t)

	headers := makeFileHeaders(t, []testFile{
		{name: "gone.txt", contentType: "text/plain", content: "bye"},
	})
	uploaded, err := f.service.UploadFiles(context.Background(), "owner", headers)
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteFile(context.Background(), uploaded[0].ID, "owner"))

	_, err = f.fileRepo.FindByID(uploaded[0].ID)
	assert.ErrorIs(t, err, repositories.ErrFileNotFound)
	exists, err := f.store.Exists(context.Background(), uploaded[0].FilePath)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGetFileInfo_OwnerCheck(t *testing.T) {
	f := newUploadFixture(t)

	headers := makeFileHeaders(t, []testFile{
		{name: "info.txt", contentType: "text/plain", content: "data"},
	})
	uploaded, err := f.service.UploadFiles(context.Background(), "owner", headers)
	require.NoError(t, err)

	info, err := f.service.GetFileInfo(uploaded[0].ID, "owner")
	require.NoError(t, err)
	assert.Equal(t, "info.txt", info.OriginalName)

	_, err = f.service.GetFileInfo(uploaded[0].ID, "someone-else")
	assert.ErrorIs(t, err, apperrors.ErrFileAccessDenied)
}

func TestOpenFile_StreamsContent(t *testing.T) {
	f := newUploadFixture(t)

	headers := makeFileHeaders(t, []testFile{
		{name: "read.txt", contentType: "text/plain", content: "hello stream"},
	})
	uploaded, err := f.service.UploadFiles(context.Background(), "owner", headers)
	require.NoError(t, err)

	record, reader, err := f.service.OpenFile(context.Background(), uploaded[0].ID, "owner")
	require.NoError(t, err)
	defer reader.Close()

	content, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, "hello stream", string(content))
	assert.Equal(t, "read.txt", record.OriginalName)
}

func TestGetStorageStats(t *testing.T) {
	f := newUploadFixture(t)

	headers := makeFileHeaders(t, []testFile{
		{name: "a.txt", contentType: "text/plain", content: "aaaa"},
		{name: "b.txt", contentType: "text/plain", content: "bb"},
	})
	_, err := f.service.UploadFiles(context.Background(), "counter", headers)
	require.NoError(t, err)

	stats, err := f.service.GetStorageStats("counter")
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.FileCount)
	assert.Equal(t, int64(6), stats.TotalSize)
}

func TestCleanupOldFiles(t *testing.T) {
	f := newUploadFixture(t)

	headers := makeFileHeaders(t, []testFile{
		{name: "old.txt", contentType: "text/plain", content: "stale"},
		{name: "new.txt", contentType: "text/plain", content: "fresh"},
	})
	uploaded, err := f.service.UploadFiles(context.Background(), "janitor", headers)
	require.NoError(t, err)

	// Age the first record past the threshold.
	record, err := f.fileRepo.FindByID(uploaded[0].ID)
	require.NoError(t, err)
	record.UploadedAt = time.Now().AddDate(0, 0, -40)
	require.NoError(t, f.fileRepo.Delete(record.ID))
	require.NoError(t, f.fileRepo.Create(record))

	result, err := f.service.CleanupOldFiles(context.Background(), 30)
	require.NoError(t, err)
	assert.Equal(t, 1, result.DeletedCount)
	assert.Equal(t, 1, result.TotalOldFiles)

	remaining, err := f.fileRepo.FindByUserID("janitor")
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "new.txt", remaining[0].OriginalName)
}
