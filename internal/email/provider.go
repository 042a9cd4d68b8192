package email

// Provider sends outbound mail. The SMTP implementation is used when mail
// settings are configured; otherwise the app falls back to a logging mock.
type Provider interface {
	// Send delivers a plain message.
	Send(to, subject, body string) error

	// SendInvitation delivers the activation-code invitation to a newly
	// created employee.
	SendInvitation(to, fullName, activationCode, companyName string) error

	// Validate checks the provider configuration.
	Validate() error
}
