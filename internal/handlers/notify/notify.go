// Package notify delivers dashboard notification emails over SMTP.
package notify

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"stockcast-api/internal/metrics"
	"stockcast-api/internal/shared"
)

// Config holds the SMTP settings for outbound mail. Leaving Username or
// Password empty puts the handler in mock mode: sends are acknowledged and
// logged without opening a connection.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type Handler struct {
	cfg     Config
	log     *zap.SugaredLogger
	timeout time.Duration
}

func NewHandler(cfg Config, log *zap.SugaredLogger) *Handler {
	return &Handler{
		cfg:     cfg,
		log:     log,
		timeout: shared.DefaultSMTPTimeout,
	}
}

// Send delivers req and reports the outcome in the shape the dashboard
// expects. The returned error is never a 4xx condition: the router validates
// the request before calling Send.
func (h *Handler) Send(ctx context.Context, req *shared.SendEmailRequest) (*shared.SendEmailResponse, error) {
	if h.mock() {
		h.log.Warnw("smtp credentials not configured, mock send",
			"to", req.To,
			"subject", req.Subject,
		)
		metrics.EmailCount.WithLabelValues("mock", "sent").Inc()
		return &shared.SendEmailResponse{
			Status:  "sent",
			Message: "Email service not configured. Running in mock mode.",
			To:      req.To,
		}, nil
	}

	msg := h.buildMessage(req)
	if err := h.sendSMTP(ctx, req.To, msg); err != nil {
		metrics.EmailCount.WithLabelValues("smtp", "error").Inc()
		return nil, fmt.Errorf("sending email to %s: %w", req.To, err)
	}

	h.log.Infow("email sent", "to", req.To, "subject", req.Subject)
	metrics.EmailCount.WithLabelValues("smtp", "sent").Inc()
	return &shared.SendEmailResponse{
		Status:  "sent",
		Message: fmt.Sprintf("Email sent successfully to %s", req.To),
		To:      req.To,
	}, nil
}

func (h *Handler) mock() bool {
	return h.cfg.Username == "" || h.cfg.Password == ""
}

// from resolves the envelope sender, falling back to the SMTP username when
// no explicit from address is configured.
func (h *Handler) from() string {
	if h.cfg.From != "" {
		return h.cfg.From
	}
	return h.cfg.Username
}

// buildMessage constructs the RFC 5322 message. When both HTML and text
// bodies are present the parts go into a multipart/alternative envelope.
func (h *Handler) buildMessage(req *shared.SendEmailRequest) string {
	var msg strings.Builder

	msg.WriteString(fmt.Sprintf("From: %s\r\n", h.from()))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", req.To))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", req.Subject))
	msg.WriteString(fmt.Sprintf("Message-ID: <%s@%s>\r\n", uuid.New().String(), h.cfg.Host))
	msg.WriteString("MIME-Version: 1.0\r\n")

	hasHTML := req.HTML != ""
	hasText := req.Text != ""

	switch {
	case hasHTML && hasText:
		boundary := fmt.Sprintf("boundary_%d", time.Now().UnixNano())
		msg.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=%q\r\n", boundary))
		msg.WriteString("\r\n")

		msg.WriteString(fmt.Sprintf("--%s\r\n", boundary))
		msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
		msg.WriteString("\r\n")
		msg.WriteString(req.Text)
		msg.WriteString("\r\n")

		msg.WriteString(fmt.Sprintf("--%s\r\n", boundary))
		msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
		msg.WriteString("\r\n")
		msg.WriteString(req.HTML)
		msg.WriteString("\r\n")

		msg.WriteString(fmt.Sprintf("--%s--\r\n", boundary))
	case hasHTML:
		msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
		msg.WriteString("\r\n")
		msg.WriteString(req.HTML)
	default:
		msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
		msg.WriteString("\r\n")
		msg.WriteString(req.Text)
	}

	return msg.String()
}

// sendSMTP runs the full SMTP conversation: STARTTLS, PLAIN auth, envelope,
// data. The connection always upgrades to TLS before credentials are sent.
func (h *Handler) sendSMTP(ctx context.Context, to, msg string) error {
	addr := fmt.Sprintf("%s:%d", h.cfg.Host, h.cfg.Port)

	dialer := &net.Dialer{Timeout: h.timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, h.cfg.Host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Close()

	tlsConfig := &tls.Config{
		ServerName: h.cfg.Host,
		MinVersion: tls.VersionTLS12,
	}
	if err := client.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	auth := smtp.PlainAuth("", h.cfg.Username, h.cfg.Password, h.cfg.Host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}

	if err := client.Mail(h.from()); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to start message: %w", err)
	}
	if _, err := writer.Write([]byte(msg)); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close message: %w", err)
	}

	if err := client.Quit(); err != nil {
		// The server accepted the message before QUIT.
		return nil
	}
	return nil
}
