package services

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/kaizen-2004/Barangay-Document-Management-System-V2/config"
)

// InterfaceMailService defines the outbound mail interface
type InterfaceMailService interface {
	SendPasswordResetCode(toEmail, username, code string) error
	SendLoginVerificationCode(toEmail, username, code string) error
}

// MailService sends OTP mail over SMTP
type MailService struct {
	Config *config.Config
}

// NewMailService creates a new mail service
func NewMailService(cfg *config.Config) InterfaceMailService {
	return &MailService{Config: cfg}
}

func (s *MailService) send(to, subject, body string) error {
	if !s.Config.MailEnabled {
		// Mail is disabled in development, log the code instead of sending
		config.Info("mail disabled, would send to %s: %s", to, subject)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.Config.MailFrom)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.Config.MailHost, s.Config.MailPort, s.Config.MailUsername, s.Config.MailPassword)
	return d.DialAndSend(m)
}

// SendPasswordResetCode emails a password reset OTP
func (s *MailService) SendPasswordResetCode(toEmail, username, code string) error {
	body := fmt.Sprintf(
		"Hello %s,\n\n"+
			"We received a request to reset your password.\n"+
			"Use the following one-time code to reset your password: %s\n\n"+
			"If you did not request a password reset, please ignore this email.",
		username, code)
	return s.send(toEmail, "Your Password Reset Code", body)
}

// SendLoginVerificationCode emails a login second-factor OTP
func (s *MailService) SendLoginVerificationCode(toEmail, username, code string) error {
	body := fmt.Sprintf(
		"Hello %s,\n\n"+
			"Use the following one-time code to finish signing in: %s\n\n"+
			"If you did not try to sign in, please change your password immediately.",
		username, code)
	return s.send(toEmail, "Your Login Verification Code", body)
}
