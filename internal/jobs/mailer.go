package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"

	"go_4_vocab_review/internal/config"
	"go_4_vocab_review/internal/middleware"
)

// Mailer はリマインダーのメール送信
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// --- LogMailer ---
type LogMailer struct{}

func (m *LogMailer) Send(ctx context.Context, to, subject, body string) error {
	logger := middleware.GetLogger(ctx)
	logger.Info("--- Sending Email (LogMailer) ---", "to", to, "subject", subject, "body", body)
	return nil
}

// --- SmtpMailer ---
type SmtpMailer struct {
	cfg config.SMTPConfig
}

func (m *SmtpMailer) Send(ctx context.Context, to, subject, body string) error {
	logger := middleware.GetLogger(ctx)
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	logger.Debug("Attempting to send email via SMTP", "smtp_addr", addr, "from", m.cfg.From, "to", to)

	// 開発用の MailHog などを想定して平文で接続する
	c, err := smtp.Dial(addr)
	if err != nil {
		logger.Error("Failed to connect to SMTP server", "error", err, "addr", addr)
		return err
	}
	defer c.Close()

	if err = c.Mail(m.cfg.From); err != nil {
		logger.Error("Failed to set MAIL FROM", "error", err, "from", m.cfg.From)
		return err
	}
	if err = c.Rcpt(to); err != nil {
		logger.Error("Failed to set RCPT TO", "error", err, "to", to)
		return err
	}

	wc, err := c.Data()
	if err != nil {
		logger.Error("Failed to open data writer", "error", err)
		return err
	}
	msg := "To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		body + "\r\n"
	if _, err = wc.Write([]byte(msg)); err != nil {
		wc.Close()
		logger.Error("Failed to write email data", "error", err)
		return err
	}
	if err = wc.Close(); err != nil {
		logger.Error("Failed to finish email data", "error", err)
		return err
	}

	logger.Info("Email sent successfully via SMTP", "to", to, "subject", subject)
	return c.Quit()
}

// NewMailer は notify.type に応じた Mailer を返します。不明な値は LogMailer。
func NewMailer(cfg config.NotifyConfig) Mailer {
	logger := slog.Default()
	switch cfg.Type {
	case config.NotifyTypeSMTP:
		logger.Info("Initializing SMTP mailer...")
		return &SmtpMailer{cfg: cfg.SMTP}
	case config.NotifyTypeLog:
		logger.Info("Initializing Log mailer...")
		return &LogMailer{}
	default:
		logger.Warn("Unknown mailer type, defaulting to LogMailer", "type", cfg.Type)
		return &LogMailer{}
	}
}

// MailNotifier は復習対象の件数をメールで知らせる Notifier
type MailNotifier struct {
	mailer Mailer
	to     string
}

func NewMailNotifier(mailer Mailer, to string) *MailNotifier {
	return &MailNotifier{mailer: mailer, to: to}
}

func (n *MailNotifier) NotifyDue(ctx context.Context, count int) error {
	subject := fmt.Sprintf("[%s] 復習する項目が%d件あります", config.AppName, count)
	body := fmt.Sprintf("復習のタイミングが来た項目が%d件あります。忘れる前に復習しましょう。", count)
	if err := n.mailer.Send(ctx, n.to, subject, body); err != nil {
		return fmt.Errorf("MailNotifier.NotifyDue: %w", err)
	}
	return nil
}

// NewNotifier は設定から Notifier を組み立てます。送り先がなければログに出すだけ。
func NewNotifier(cfg config.NotifyConfig, logger *slog.Logger) Notifier {
	if cfg.To == "" {
		return NewLogNotifier(logger)
	}
	return NewMailNotifier(NewMailer(cfg), cfg.To)
}
