package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendWelcome(toEmail, fullName string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
	clientURL   string
}

func NewEmailService(host string, port int, email, password, senderName, clientURL string) IEmailService {
	d := gomail.NewDialer(host, port, email, password)

	return &emailService{
		dialer:      d,
		senderEmail: email,
		senderName:  senderName,
		clientURL:   clientURL,
	}
}

func (s *emailService) SendWelcome(toEmail, fullName string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.senderEmail, s.senderName))
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Welcome to RetainDesk")

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Welcome, %s!</h2>
			<p>Your account is ready. Add your first client and start tracking
			cancellation attempts and retention offers.</p>
			<p><a href="%s" style="color: #4CAF50;">Open your dashboard</a></p>
		</div>
	`, fullName, s.clientURL)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send welcome mail to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Welcome mail sent to %s\n", toEmail)
	return nil
}
