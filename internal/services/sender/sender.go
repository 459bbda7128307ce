// Package sender отправляет письма-подтверждения о записи на занятия.
package sender

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	smtpx "github.com/shivaniarts/enrollment-service/internal/lib/smtp"
	"github.com/shivaniarts/enrollment-service/internal/lib/sl"
	"github.com/shivaniarts/enrollment-service/internal/models"
)

// Transport описывает SMTP транспорт, используемый сервисом.
type Transport interface {
	Connect() (smtpx.Client, error)
	GetSMTPUser() string
}

// SenderService отправляет письма по сообщениям из очереди подтверждений.
type SenderService struct {
	transport Transport
	log       *slog.Logger
}

// NewSenderService создает новый экземпляр SenderService.
func NewSenderService(transport Transport, log *slog.Logger) *SenderService {
	return &SenderService{
		transport: transport,
		log:       log,
	}
}

// SendEnrollmentConfirmation отправляет письмо-подтверждение записи.
// body — JSON-сообщение из очереди enrollments.confirmed.
func (s *SenderService) SendEnrollmentConfirmation(body []byte) error {
	var message models.EnrollmentInfo
	if err := json.Unmarshal(body, &message); err != nil {
		s.log.Error("Failed to unmarshal message body", "error", sl.Err(err))
		return fmt.Errorf("error unmarshalling message: %w", err)
	}

	to := []string{message.Email}
	subject := "Enrollment confirmed — Shivani's Art Classes"
	bodyText := fmt.Sprintf(`Hello %s!

Your enrollment for %d month(s) of art classes is confirmed.
Payment of %d %s was received (payment id: %s).

We look forward to seeing you in class!`,
		message.Name, message.Months, message.DisplayAmount, message.DisplayCurrency, message.PaymentID)

	return s.sendEmail(to, subject, bodyText)
}

func (s *SenderService) sendEmail(to []string, subject, bodyText string) error {
	msg := strings.Join([]string{
		"From: " + s.transport.GetSMTPUser(),
		"To: " + strings.Join(to, ";"),
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		bodyText,
	}, "\r\n")

	client, err := s.transport.Connect()
	if err != nil {
		s.log.Error("Failed to connect to SMTP server", "error", sl.Err(err))
		return err
	}
	defer client.Close()

	if err := client.Mail(s.transport.GetSMTPUser()); err != nil {
		s.log.Error("Failed to set MAIL FROM", "from", s.transport.GetSMTPUser(), "error", sl.Err(err))
		return err
	}

	for _, addr := range to {
		if err := client.Rcpt(addr); err != nil {
			s.log.Error("Failed to set RCPT TO", "recipient", addr, "error", sl.Err(err))
			return err
		}
	}

	wc, err := client.Data()
	if err != nil {
		s.log.Error("Failed to get Data writer", "error", sl.Err(err))
		return err
	}

	_, err = wc.Write([]byte(msg))
	if err != nil {
		s.log.Error("Failed to write email body", "error", sl.Err(err))
		return err
	}

	if err = wc.Close(); err != nil {
		s.log.Error("Failed to close Data writer", "error", sl.Err(err))
		return err
	}

	if err = client.Quit(); err != nil {
		s.log.Error("Failed to quit SMTP client", "error", sl.Err(err))
		return err
	}

	s.log.Info("email sent successfully", "to", to)
	return nil
}
