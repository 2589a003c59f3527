// Package notify delivers outbound messages to users. Delivery is
// fire-and-forget from the caller's point of view: failures are reported
// back so they can be logged, never retried.
package notify

import (
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"strings"
	"time"

	"github.com/wneessen/go-mail"
)

// Message is a single outbound email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Notifier sends messages.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// SMTPConfig describes the relay used by SMTPNotifier.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

// SMTPNotifier sends mail through an SMTP relay using go-mail.
type SMTPNotifier struct {
	cfg SMTPConfig
}

// NewSMTPNotifier validates cfg and returns a notifier for it.
func NewSMTPNotifier(cfg SMTPConfig) (*SMTPNotifier, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("notify: smtp host is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("notify: sender address is required")
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &SMTPNotifier{cfg: cfg}, nil
}

func (n *SMTPNotifier) client() (*mail.Client, error) {
	opts := []mail.Option{
		mail.WithPort(n.cfg.Port),
		mail.WithTimeout(n.cfg.Timeout),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if n.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(n.cfg.Username),
			mail.WithPassword(n.cfg.Password),
		)
	}
	return mail.NewClient(n.cfg.Host, opts...)
}

// Send dials the relay, delivers msg and hangs up.
func (n *SMTPNotifier) Send(ctx context.Context, msg Message) error {
	m, err := buildMessage(n.cfg.From, msg)
	if err != nil {
		return err
	}

	c, err := n.client()
	if err != nil {
		return fmt.Errorf("notify: smtp client: %w", err)
	}
	if err := c.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("notify: send to %s: %w", msg.To, err)
	}
	return nil
}

func buildMessage(from string, msg Message) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(from); err != nil {
		return nil, fmt.Errorf("notify: from address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("notify: to address: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextHTML, msg.HTML)
	return m, nil
}

// LogNotifier writes messages to the log instead of sending them. It is
// selected when no SMTP host is configured, for local development.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Send(ctx context.Context, msg Message) error {
	l := n.Logger
	if l == nil {
		l = slog.Default()
	}
	l.InfoContext(ctx, "email not sent: no smtp relay configured",
		"to", msg.To,
		"subject", msg.Subject,
	)
	l.DebugContext(ctx, "email body", "html", msg.HTML)
	return nil
}

var resetTemplate = template.Must(template.New("reset").Parse(
	`<p>A password reset was requested for your account.</p>` +
		`<p><a href="{{.Link}}">Reset your password</a></p>` +
		`<p>The link is valid for {{.Minutes}} minutes and can be used once.</p>`,
))

// ResetEmail renders the password reset message for to.
func ResetEmail(to, link string, ttl time.Duration) (Message, error) {
	var b strings.Builder
	minutes := int(ttl.Minutes())
	if minutes < 1 {
		minutes = 1
	}
	if err := resetTemplate.Execute(&b, struct {
		Link    string
		Minutes int
	}{link, minutes}); err != nil {
		return Message{}, fmt.Errorf("notify: render reset email: %w", err)
	}
	return Message{To: to, Subject: "Password Reset", HTML: b.String()}, nil
}
