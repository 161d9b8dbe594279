// services/email_service.go
package services

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/gomail.v2"

	"github.com/vectornet/vectornet_backend/models"
)

// EmailService sends partner-facing notification mail over SMTP.
type EmailService struct{}

func NewEmailService() *EmailService {
	return &EmailService{}
}

// SendPaymentPaidNotification tells a partner that a commission payment
// has been settled. Failures are logged and returned; callers treat the
// mail as best effort.
func (s *EmailService) SendPaymentPaidNotification(partner *models.Partner, payment *models.Payment) error {
	if partner.Email == "" {
		return nil
	}

	subject := "Commission Payment Settled"
	body := fmt.Sprintf("Dear %s,\n\nYour commission payment of %.2f has been settled.\n\nBest regards,\nVectorNet", partner.FullName, payment.Amount)

	smtpHost := os.Getenv("SMTP_HOST")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")
	smtpPort := 2525
	if portStr := os.Getenv("SMTP_PORT"); portStr != "" {
		fmt.Sscanf(portStr, "%d", &smtpPort)
	}

	from := os.Getenv("FROM_EMAIL")
	if from == "" {
		from = smtpUser
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", partner.Email)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPass)
	if err := d.DialAndSend(m); err != nil {
		log.Printf("Failed to send payment notification to %s: %v", partner.Email, err)
		return err
	}
	return nil
}
