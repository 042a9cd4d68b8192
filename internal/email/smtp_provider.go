package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

// SMTPProvider implements Provider over gomail.
type SMTPProvider struct {
	config SMTPConfig
}

func NewSMTPProvider(config SMTPConfig) (*SMTPProvider, error) {
	p := &SMTPProvider{config: config}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *SMTPProvider) Validate() error {
	if p.config.Host == "" {
		return fmt.Errorf("smtp host is required")
	}
	if p.config.Port == 0 {
		return fmt.Errorf("smtp port is required")
	}
	if p.config.FromEmail == "" {
		return fmt.Errorf("from email is required")
	}
	return nil
}

func (p *SMTPProvider) Send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(p.config.FromEmail, p.config.FromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(
		p.config.Host,
		p.config.Port,
		p.config.Username,
		p.config.Password,
	)

	return d.DialAndSend(m)
}

func (p *SMTPProvider) SendInvitation(to, fullName, activationCode, companyName string) error {
	subject := "You have been invited to Evalyze"
	if companyName != "" {
		subject = fmt.Sprintf("%s invited you to Evalyze", companyName)
	}

	body := fmt.Sprintf(invitationTemplate, fullName, activationCode)
	return p.Send(to, subject, body)
}

const invitationTemplate = `
<html>
<body>
  <p>Hello %s,</p>
  <p>An Evalyze profile has been created for you. Use the activation code
  below to log in and complete your career profile:</p>
  <p><b>%s</b></p>
  <p>The code works in place of a password on the employee login page.</p>
</body>
</html>`
