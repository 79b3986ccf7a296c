package alerts

import (
	"context"
	"fmt"
	"net/smtp"
	"time"
)

// SMTPSender sends alerts via email.
type SMTPSender struct {
	host     string
	port     int
	user     string
	password string
	from     string
	to       []string
}

// NewSMTPSender creates a new SMTP sender.
func NewSMTPSender(host string, port int, user, password, from string, to []string) *SMTPSender {
	return &SMTPSender{
		host:     host,
		port:     port,
		user:     user,
		password: password,
		from:     from,
		to:       to,
	}
}

// Send sends the alert via email.
func (s *SMTPSender) Send(ctx context.Context, payload *AlertPayload) error {
	if len(s.to) == 0 {
		return fmt.Errorf("no recipients configured")
	}

	subject := fmt.Sprintf("[%s] %s moved %s SOL", payload.Action, payload.DisplayName, FormatAmount(payload.NativeDelta))
	body := s.buildEmailBody(payload)

	message := fmt.Sprintf("From: %s\r\n", s.from)
	message += fmt.Sprintf("To: %s\r\n", s.to[0])
	message += fmt.Sprintf("Subject: %s\r\n", subject)
	message += "Content-Type: text/plain; charset=UTF-8\r\n"
	message += "\r\n"
	message += body

	auth := smtp.PlainAuth("", s.user, s.password, s.host)
	addr := fmt.Sprintf("%s:%d", s.host, s.port)

	if err := smtp.SendMail(addr, auth, s.from, s.to, []byte(message)); err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	return nil
}

func (s *SMTPSender) buildEmailBody(payload *AlertPayload) string {
	body := fmt.Sprintf("WALLETWATCH ALERT - %s\n", payload.Action)
	body += "═══════════════════════════════════════\n\n"
	body += "A tracked wallet moved a significant amount:\n\n"
	body += "WALLET\n"
	body += "─────────────────────────────────────\n"
	body += fmt.Sprintf("Entity:         %s %s\n", payload.Icon, payload.DisplayName)
	body += fmt.Sprintf("Address:        %s\n\n", payload.Actor)
	body += "MOVEMENT\n"
	body += "─────────────────────────────────────\n"
	body += fmt.Sprintf("Event Type:     %s\n", payload.EventType)
	body += fmt.Sprintf("Net SOL:        %s\n", FormatAmount(payload.NativeDelta))
	body += fmt.Sprintf("Net Stable:     %s\n", FormatAmount(payload.StableDelta))
	if payload.LargestIn != nil {
		body += fmt.Sprintf("Largest In:     %.3f (%s)\n", payload.LargestIn.Amount, payload.LargestIn.Mint)
	}
	if payload.LargestOut != nil {
		body += fmt.Sprintf("Largest Out:    %.3f (%s)\n", payload.LargestOut.Amount, payload.LargestOut.Mint)
	}
	body += fmt.Sprintf("Score:          %d\n\n", payload.Score)
	body += "TRANSACTION\n"
	body += "─────────────────────────────────────\n"
	body += fmt.Sprintf("Signature:      %s\n", payload.Signature)
	if url := TxURL(payload.Signature); url != "" {
		body += fmt.Sprintf("Explorer:       %s\n", url)
	}
	body += fmt.Sprintf("Time:           %s\n\n", payload.Timestamp.Format(time.RFC3339))
	body += "═══════════════════════════════════════\n"
	body += fmt.Sprintf("Environment: %s\n", payload.Environment)

	return body
}
