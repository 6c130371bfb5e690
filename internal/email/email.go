package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"

	"confhub-backend/internal/config"
)

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type EmailSender struct {
	cfg      config.SMTPConfig
	log      *slog.Logger
	sendMail sendFunc
}

func NewEmailSender(cfg config.SMTPConfig, log *slog.Logger) *EmailSender {
	return &EmailSender{cfg: cfg, log: log, sendMail: smtp.SendMail}
}

var (
	signInTmpl = template.Must(template.New("signin").Parse(`<html>
	<body>
		<h2>Your ConfHub sign-in code</h2>
		<p>Use the following code to sign in:</p>
		<h1>{{.Code}}</h1>
		<p>If you did not request this, please ignore this email.</p>
	</body>
</html>`))

	reminderTmpl = template.Must(template.New("reminder").Parse(`<html>
	<body>
		<h2>{{.Message}}</h2>
		<p>You bookmarked <strong>{{.Title}}</strong> on ConfHub.</p>
		{{if .URL}}<p><a href="{{.URL}}">Event website</a></p>{{end}}
	</body>
</html>`))
)

func (s *EmailSender) SendSignInCode(ctx context.Context, to, code string) error {
	var body bytes.Buffer
	if err := signInTmpl.Execute(&body, struct{ Code string }{code}); err != nil {
		return fmt.Errorf("render sign-in email: %w", err)
	}
	return s.send(ctx, to, "Your ConfHub sign-in code", body.String())
}

func (s *EmailSender) SendReminder(ctx context.Context, to, title, message, websiteURL string) error {
	var body bytes.Buffer
	data := struct{ Title, Message, URL string }{title, message, websiteURL}
	if err := reminderTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("render reminder email: %w", err)
	}
	return s.send(ctx, to, message, body.String())
}

// send delivers through SMTP. Without credentials the message is only
// logged, which keeps local development working.
func (s *EmailSender) send(ctx context.Context, to, subject, html string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.cfg.Email == "" || s.cfg.Password == "" {
		s.log.Info("smtp credentials not set, email not sent",
			slog.String("to", to),
			slog.String("subject", subject),
		)
		return nil
	}

	msg := []byte("From: " + s.cfg.Email + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n" +
		html)

	auth := smtp.PlainAuth("", s.cfg.Email, s.cfg.Password, s.cfg.Host)
	if err := s.sendMail(s.cfg.Host+":"+s.cfg.Port, auth, s.cfg.Email, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
