package mailer

import (
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"spice-store/pkg/utils"

	"go.uber.org/zap"
)

// Mailer sends transactional and newsletter email over SMTP. Every send
// is best-effort: callers must treat failures as non-fatal.
type Mailer struct {
	config utils.EmailConfig
	log    *zap.Logger
}

func NewMailer(config utils.EmailConfig, log *zap.Logger) *Mailer {
	return &Mailer{
		config: config,
		log:    log.With(zap.String("component", "mailer")),
	}
}

// Configured reports whether SMTP credentials are present. When they are
// not, sends are skipped with a warning instead of failing.
func (m *Mailer) Configured() bool {
	return m.config.Host != "" && m.config.User != "" && m.config.Password != ""
}

type Message struct {
	To      []string
	BCC     []string
	Subject string
	Text    string
	HTML    string
}

func (m *Mailer) Send(msg *Message) error {
	if !m.Configured() {
		m.log.Warn("Email not configured, skipping send",
			zap.String("subject", msg.Subject))
		return fmt.Errorf("email not configured")
	}

	fromHeader := m.config.From
	if m.config.FromName != "" {
		fromHeader = fmt.Sprintf("%s <%s>", m.config.FromName, m.config.From)
	}

	headers := []string{
		fmt.Sprintf("From: %s", fromHeader),
		fmt.Sprintf("To: %s", strings.Join(msg.To, ", ")),
		fmt.Sprintf("Subject: %s", msg.Subject),
		"MIME-Version: 1.0",
		`Content-Type: text/html; charset="UTF-8"`,
		"",
	}

	body := msg.HTML
	if body == "" {
		headers[4] = `Content-Type: text/plain; charset="UTF-8"`
		body = msg.Text
	}

	payload := strings.Join(append(headers, body), "\r\n")

	recipients := append([]string{}, msg.To...)
	recipients = append(recipients, msg.BCC...)

	if err := m.sendSMTP(recipients, []byte(payload)); err != nil {
		m.log.Error("Failed to send email",
			zap.Error(err),
			zap.Strings("to", msg.To),
			zap.String("subject", msg.Subject))
		return err
	}

	m.log.Info("Email sent",
		zap.Strings("to", msg.To),
		zap.Int("bcc", len(msg.BCC)),
		zap.String("subject", msg.Subject))
	return nil
}

// sendSMTP dials with a timeout and upgrades to TLS via STARTTLS
func (m *Mailer) sendSMTP(recipients []string, payload []byte) error {
	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)

	conn, err := net.DialTimeout("tcp", addr, 10*time.Second)
	if err != nil {
		return fmt.Errorf("dial smtp %s: %w", addr, err)
	}
	conn.SetDeadline(time.Now().Add(30 * time.Second))

	client, err := smtp.NewClient(conn, m.config.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp client: %w", err)
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		tlsConfig := &tls.Config{ServerName: m.config.Host}
		if err := client.StartTLS(tlsConfig); err != nil {
			return fmt.Errorf("starttls: %w", err)
		}
	}

	auth := smtp.PlainAuth("", m.config.User, m.config.Password, m.config.Host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}

	if err := client.Mail(m.config.From); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	for _, rcpt := range recipients {
		if err := client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("smtp rcpt %s: %w", rcpt, err)
		}
	}

	wc, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := wc.Write(payload); err != nil {
		wc.Close()
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := wc.Close(); err != nil {
		return fmt.Errorf("smtp close data: %w", err)
	}

	return client.Quit()
}
