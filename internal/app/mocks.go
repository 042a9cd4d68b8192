package app

import "evalyze_backend/internal/logger"

// MockEmailProvider logs instead of sending. Used in mock mode and when
// SMTP is not configured.
type MockEmailProvider struct{}

func (m *MockEmailProvider) Send(to, subject, body string) error {
	logger.Info("mock email", "to", to, "subject", subject)
	return nil
}

func (m *MockEmailProvider) SendInvitation(to, fullName, activationCode, companyName string) error {
	logger.Info("mock invitation email",
		"to", to,
		"fullName", fullName,
		"activationCode", activationCode,
		"companyName", companyName,
	)
	return nil
}

func (m *MockEmailProvider) Validate() error { return nil }
