package utils

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// SMTPConfig holds the mail transport settings
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	OpsEmail string
}

// AlertMailer sends operator alerts for payment anomalies that need manual
// review. Delivery is best effort; callers log failures and move on.
type AlertMailer struct {
	config SMTPConfig
}

func NewAlertMailer(config SMTPConfig) *AlertMailer {
	return &AlertMailer{config: config}
}

// SendConflictAlert mails the operations address about a notification that
// tried to overwrite a terminal payment status.
func (m *AlertMailer) SendConflictAlert(orderID, recordedStatus, incomingStatus string) error {
	if m.config.Host == "" || m.config.OpsEmail == "" {
		return fmt.Errorf("alert mailer not configured")
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.config.From)
	msg.SetHeader("To", m.config.OpsEmail)
	msg.SetHeader("Subject", fmt.Sprintf("Payment conflict on order %s - manual review required", orderID))
	msg.SetBody("text/html", fmt.Sprintf(`
		<h3>Conflicting payment notification</h3>
		<p>Order <b>%s</b> is recorded as <b>%s</b> but the gateway sent a
		notification targeting <b>%s</b>. The notification was rejected and
		audited; the record was not changed.</p>
		<p>Check the notification history for this order in the admin panel.</p>
	`, orderID, recordedStatus, incomingStatus))

	dialer := gomail.NewDialer(m.config.Host, m.config.Port, m.config.Username, m.config.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send conflict alert: %v", err)
	}
	return nil
}
