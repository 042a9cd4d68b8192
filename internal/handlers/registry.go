package handlers

// AppHandlers holds every handler of the application.
type AppHandlers struct {
	AuthHandler    *AuthHandler
	ProfileHandler *ProfileHandler
	CompanyHandler *CompanyHandler
	FileHandler    *FileHandler
	WebhookHandler *WebhookHandler
	HealthHandler  *HealthHandler
}
