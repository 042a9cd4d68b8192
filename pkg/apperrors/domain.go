package apperrors

import (
	"net/http"
)

// Factories and predefined variables for the business errors of the
// profile / job-role / webhook domain.

// ErrNotFound converts a repository miss (gorm.ErrRecordNotFound or a
// sentinel) into a 404.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists maps duplicate inserts to a 409.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict is the general 409 factory.
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation builds a 400 for operations the domain forbids.
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// ErrUpstream wraps a failed webhook or database round trip into a 502.
func ErrUpstream(err error, domain, message string) *AppError {
	return Wrap(err, CodeExternalServiceError, domain, message, http.StatusBadGateway)
}

var ErrInvalidCredentialsErr = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid credentials",
	http.StatusUnauthorized,
)

var ErrInvalidActivationCode = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid activation code",
	http.StatusUnauthorized,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already exists",
	http.StatusConflict,
)

var ErrCompanyAccountRequired = New(
	CodeForbidden,
	"auth",
	"Only company accounts may perform this operation",
	http.StatusForbidden,
)

var ErrUserNotFound = New(
	CodeNotFound,
	"user",
	"User not found",
	http.StatusNotFound,
)

var ErrProfileNotFound = New(
	CodeNotFound,
	"profile",
	"Profile not found",
	http.StatusNotFound,
)

var ErrJobRoleNotFound = New(
	CodeNotFound,
	"job_role",
	"Job role not found",
	http.StatusNotFound,
)

var ErrCompanyNotFound = New(
	CodeNotFound,
	"company",
	"Company not found",
	http.StatusNotFound,
)

// --- Uploads & files ---

var ErrFileNotFound = New(
	CodeNotFound,
	"file",
	"File not found",
	http.StatusNotFound,
)

var ErrFileAccessDenied = New(
	CodeForbidden,
	"file",
	"Not allowed to access this file",
	http.StatusForbidden,
)

// ErrFileTooLarge builds a 400 naming the configured cap.
func ErrFileTooLarge(message string) *AppError {
	return New(CodeValidationFailed, "file", message, http.StatusBadRequest)
}

// ErrFileTypeNotAllowed builds a 400 for a rejected MIME type.
func ErrFileTypeNotAllowed(mimeType string) *AppError {
	return New(CodeValidationFailed, "file", "File type "+mimeType+" not allowed", http.StatusBadRequest)
}
