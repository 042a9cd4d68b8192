package services

import "evalyze_backend/internal/email"

// ServiceContainer holds every service of the application.
type ServiceContainer struct {
	AuthService    AuthService
	ProfileService ProfileService
	CompanyService CompanyService
	UploadService  UploadService
	Webhooks       WebhookDispatcher
	EmailService   email.Provider
}
