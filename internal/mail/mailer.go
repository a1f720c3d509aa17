package mail

import (
	"gopkg.in/gomail.v2"
)

// Sender dispatches HTML email. Implementations must be safe for concurrent use.
type Sender interface {
	Configured() bool
	Send(to, subject, htmlBody string) error
}

// Mailer sends email over SMTP.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	fromName string
}

// Ensure Mailer implements Sender
var _ Sender = (*Mailer)(nil)

// New creates a Mailer. An empty host or username leaves the mailer
// unconfigured; callers should check Configured before sending.
func New(host string, port int, username, password, fromName string) *Mailer {
	return &Mailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		fromName: fromName,
	}
}

// Configured reports whether SMTP transport settings are present.
func (m *Mailer) Configured() bool {
	return m.host != "" && m.username != ""
}

// Send dispatches a single HTML message.
func (m *Mailer) Send(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.username, m.fromName)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(m.host, m.port, m.username, m.password)
	return d.DialAndSend(msg)
}
