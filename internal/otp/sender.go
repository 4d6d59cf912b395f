package otp

import (
	"fmt"

	"savaan_backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Sender delivers a one-time code out of band. There is no SMS gateway in
// scope; delivery goes out by email, or to the log in development.
type Sender interface {
	Send(mobile, email, code string) error
}

// LogSender writes codes to the application log. Development only.
type LogSender struct{}

func (s *LogSender) Send(mobile, email, code string) error {
	logger.Info("OTP issued", "mobile", mobile, "code", code)
	return nil
}

// SendgridSender delivers codes via the SendGrid API.
type SendgridSender struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewSendgridSender(apiKey, fromEmail, fromName string) *SendgridSender {
	return &SendgridSender{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *SendgridSender) Send(mobile, email, code string) error {
	if email == "" {
		// No address on file yet (forgot-password before we load the user, or
		// a registration draft without basic details). Nothing to deliver to.
		logger.Warn("OTP delivery skipped: no email on file", "mobile", mobile)
		return nil
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail("", email)
	subject := "Your Savaan verification code"
	text := fmt.Sprintf("Your verification code is %s. It expires in 10 minutes.", code)
	message := mail.NewSingleEmail(from, subject, to, text, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		logger.WithError(err).Error("Failed to send OTP email", "mobile", mobile)
		return err
	}
	if response.StatusCode >= 400 {
		logger.Error("SendGrid rejected OTP email",
			"status", response.StatusCode, "body", response.Body)
		return fmt.Errorf("sendgrid: status %d", response.StatusCode)
	}
	return nil
}
