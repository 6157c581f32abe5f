package infra

import (
	"context"
	"errors"
	"fmt"
	"net/smtp"

	"nedpos/internal/config"

	"github.com/jordan-wright/email"
)

// ErrMailerDisabled is returned when no SMTP host is configured.
var ErrMailerDisabled = errors.New("mailer: SMTP is not configured")

// Mail is one outgoing message with an optional file attachment.
type Mail struct {
	To         string
	Subject    string
	Body       string
	Attachment string // path on disk, empty for none
}

// Mailer sends transactional email.
type Mailer interface {
	Send(ctx context.Context, m Mail) error
}

// SMTPMailer wraps SMTP configuration for sending emails with PDF attachments.
type SMTPMailer struct {
	from     string
	host     string
	user     string
	password string
	addr     string
}

func NewMailer(cfg *config.Config) *SMTPMailer {
	from := cfg.SMTPFrom
	if from == "" {
		from = cfg.SMTPUser
	}
	return &SMTPMailer{
		from:     from,
		host:     cfg.SMTPHost,
		user:     cfg.SMTPUser,
		password: cfg.SMTPPassword,
		addr:     fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
	}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Mail) error {
	if m.host == "" {
		return ErrMailerDisabled
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	e := email.NewEmail()
	e.From = m.from
	e.To = []string{msg.To}
	e.Subject = msg.Subject
	e.Text = []byte(msg.Body)

	if msg.Attachment != "" {
		if _, err := e.AttachFile(msg.Attachment); err != nil {
			return fmt.Errorf("mailer: attach file: %w", err)
		}
	}

	var auth smtp.Auth
	if m.user != "" {
		auth = smtp.PlainAuth("", m.user, m.password, m.host)
	}
	return e.Send(m.addr, auth)
}

// BreakerMailer routes every send through a circuit breaker so a dead relay
// is not hammered by the worker pool and the retry cron.
type BreakerMailer struct {
	next Mailer
	cb   *CircuitBreaker
}

func NewBreakerMailer(next Mailer, cb *CircuitBreaker) *BreakerMailer {
	return &BreakerMailer{next: next, cb: cb}
}

func (m *BreakerMailer) Send(ctx context.Context, msg Mail) error {
	return m.cb.Do(ctx, func(ctx context.Context) error {
		return m.next.Send(ctx, msg)
	})
}

func (m *BreakerMailer) Breaker() *CircuitBreaker { return m.cb }
