package notify

import (
	"context" // Context for mail delivery
	"fmt"     // Message formatting

	"github.com/wneessen/go-mail" // SMTP client
)

// senderName is the display name on outgoing mail
const senderName = "Leave Management System"

// Mailer delivers a composed message
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPConfig locates and authenticates against the SMTP relay
type SMTPConfig struct {
	Host     string // SMTP server
	Port     int    // SMTP port
	Username string // Empty skips authentication
	Password string // SMTP password
	From     string // Defaults to Username
}

// SMTPMailer sends mail through an SMTP relay, one connection per message
type SMTPMailer struct {
	client *mail.Client
	from   string
}

// NewSMTPMailer builds a mailer. STARTTLS is used when the server offers it.
func NewSMTPMailer(cfg SMTPConfig) (*SMTPMailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPortPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}
	client, err := mail.NewClient(cfg.Host, opts...) // Connection is opened per send
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}
	from := cfg.From
	if from == "" {
		from = cfg.Username // Fall back to the login
	}
	return &SMTPMailer{client: client, from: from}, nil
}

// Send delivers msg as plain text with an HTML alternative
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	out := mail.NewMsg() // New message
	if err := out.FromFormat(senderName, m.from); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := out.To(msg.To); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}
	out.Subject(msg.Subject)                        // Set subject
	out.SetBodyString(mail.TypeTextPlain, msg.Text) // Plain text body
	if msg.HTML != "" {
		out.AddAlternativeString(mail.TypeTextHTML, msg.HTML) // HTML alternative
	}
	if err := m.client.DialAndSendWithContext(ctx, out); err != nil {
		return fmt.Errorf("send mail to %s: %w", msg.To, err)
	}
	return nil
}
