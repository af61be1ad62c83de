package utils

import (
	"fmt"
	"os"
	"strconv"

	"github.com/minhle-dev/ShopSphere/models"
	"gopkg.in/gomail.v2"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func emailConfigFromEnv() EmailConfig {
	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && p > 0 {
		port = p
	}
	return EmailConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     port,
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	}
}

// SendEmail sends an HTML email using the configured SMTP server
func SendEmail(to, subject, body string) error {
	config := emailConfigFromEnv()

	m := gomail.NewMessage()
	m.SetHeader("From", config.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	return nil
}

// SendPaymentConfirmationEmail notifies the customer that a payment settled.
func SendPaymentConfirmationEmail(to string, order *models.Order) error {
	subject := fmt.Sprintf("Payment received for order #%d", order.ID)
	paidAt := ""
	if order.PaidAt != nil {
		paidAt = order.PaidAt.Format("2006-01-02 15:04:05")
	}
	body := fmt.Sprintf(`
		<h2>Thank you for your payment!</h2>
		<p>We have received your payment for order <strong>#%d</strong>.</p>
		<p>Amount paid: <strong>%.2f</strong></p>
		<p>Transaction reference: %s</p>
		<p>Paid at: %s</p>
		<p>You can download your receipt from your order page.</p>
	`, order.ID, order.PaidAmount, order.TxnRef, paidAt)

	return SendEmail(to, subject, body)
}
