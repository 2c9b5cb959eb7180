package services

import (
	"crypto/tls"
	"fmt"

	"github.com/foodie-app/foodie-backend/internal/config"
	"gopkg.in/gomail.v2"
)

type EmailService struct {
	config *config.Config
}

func NewEmailService(config *config.Config) *EmailService {
	return &EmailService{config: config}
}

func (s *EmailService) SendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.config.FromEmail)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.config.SMTPHost, s.config.SMTPPort, s.config.SMTPUsername, s.config.SMTPPassword)
	d.TLSConfig = &tls.Config{InsecureSkipVerify: true}

	return d.DialAndSend(m)
}

// SendReviewFlaggedNotification alerts the moderation inbox that a review was
// reported and needs a decision.
func (s *EmailService) SendReviewFlaggedNotification(moderationEmail string, reviewID uint, comment string) error {
	subject := fmt.Sprintf("Review #%d flagged for moderation", reviewID)
	body := fmt.Sprintf(`
		<h2>Review Flagged</h2>
		<p>A review has been flagged by a user and is awaiting moderation.</p>
		<p><strong>Review ID:</strong> %d</p>
		<blockquote>%s</blockquote>
		<p>Approve or remove it from the moderation dashboard.</p>
	`, reviewID, comment)

	return s.SendEmail(moderationEmail, subject, body)
}
