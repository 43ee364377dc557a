package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	mail "github.com/wneessen/go-mail"
)

const (
	defaultSMTPHost    = "smtp.gmail.com"
	defaultSMTPPort    = 587
	defaultSMTPTimeout = 20 * time.Second
	defaultSubject     = "Price Drop Alert From JioMart"

	plainFallback = "This is a fallback plain-text message for clients that do not support HTML."
)

// mailSender is the part of *mail.Client the notifier uses.
type mailSender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// EmailConfig holds SMTP settings for EmailNotifier.
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Subject  string
	Timeout  time.Duration
}

// senderFactory returns a fresh sender for one delivery. A *mail.Client
// holds its connection in unguarded fields, so clients are never shared
// between concurrent sends.
type senderFactory func() (mailSender, error)

// EmailNotifier implements Notifier by mailing the tracking user over SMTP
// with STARTTLS.
type EmailNotifier struct {
	newSender senderFactory
	from      string
	subject   string
}

// NewEmailNotifier creates an EmailNotifier from cfg.
func NewEmailNotifier(cfg EmailConfig) (*EmailNotifier, error) {
	if cfg.Host == "" {
		cfg.Host = defaultSMTPHost
	}
	if cfg.Port == 0 {
		cfg.Port = defaultSMTPPort
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultSMTPTimeout
	}
	if cfg.From == "" {
		cfg.From = cfg.Username
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSMandatory),
		mail.WithTimeout(cfg.Timeout),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	// Fail fast on bad options instead of on the first alert.
	if _, err := mail.NewClient(cfg.Host, opts...); err != nil {
		return nil, fmt.Errorf("creating smtp client: %w", err)
	}

	return newEmailNotifier(clientFactory(cfg.Host, opts...), cfg.From, cfg.Subject), nil
}

func clientFactory(host string, opts ...mail.Option) senderFactory {
	return func() (mailSender, error) {
		c, err := mail.NewClient(host, opts...)
		if err != nil {
			return nil, fmt.Errorf("creating smtp client: %w", err)
		}
		return c, nil
	}
}

func newEmailNotifier(newSender senderFactory, from, subject string) *EmailNotifier {
	if subject == "" {
		subject = defaultSubject
	}
	return &EmailNotifier{newSender: newSender, from: from, subject: subject}
}

// Send mails the alert to alert.UserEmail.
func (e *EmailNotifier) Send(ctx context.Context, alert *AlertPayload) error {
	if alert.UserEmail == "" {
		return fmt.Errorf("alert for user %s has no email address", alert.UserID)
	}

	msg, err := e.buildMessage(alert)
	if err != nil {
		return err
	}

	sender, err := e.newSender()
	if err != nil {
		return err
	}
	if err := sender.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending email to %s: %w", alert.UserEmail, err)
	}
	return nil
}

func (e *EmailNotifier) buildMessage(alert *AlertPayload) (*mail.Msg, error) {
	html, err := renderAlertHTML(alert)
	if err != nil {
		return nil, err
	}

	m := mail.NewMsg()
	if err := m.From(e.from); err != nil {
		return nil, fmt.Errorf("setting sender %q: %w", e.from, err)
	}
	if err := m.To(alert.UserEmail); err != nil {
		return nil, fmt.Errorf("setting recipient %q: %w", alert.UserEmail, err)
	}
	m.Subject(e.subject)
	m.SetBodyString(mail.TypeTextPlain, plainFallback)
	m.AddAlternativeString(mail.TypeTextHTML, html)

	return m, nil
}

var alertTemplate = template.Must(template.New("alert").Funcs(template.FuncMap{
	"rupees": formatRupees,
}).Parse(`<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="UTF-8" />
    <meta name="x-apple-disable-message-reformatting" />
    <title>Price Drop Alert</title>
  </head>
  <body style="background-color:#ffffff;font-family:Helvetica,Arial,sans-serif;margin:0;padding:0">
    <table align="center" width="100%" style="max-width:360px;border:1px solid #eee;border-radius:5px;margin:40px auto;padding:30px">
      <tr>
        <td align="center">
          {{- if .ImageURL}}
          <img src="{{.ImageURL}}" alt="{{.ItemName}}" width="200" style="display:block;margin:0 auto;border:none" />
          {{- end}}
          <p style="color:#0a85ea;font-size:12px;font-weight:bold;text-transform:uppercase;margin:16px 0 4px;">
            {{if .PriceDropped}}Price Drop Alert!{{else}}Better Offer Alert!{{end}}
          </p>
          <h2 style="font-size:16px;color:#000;margin:0 0 8px;font-weight:600;text-align:center">
            Your target price for <span style="color:#0a85ea">{{.ItemName}}</span> has arrived
          </h2>
          <table style="background:#f7f7f7;border-radius:6px;margin:16px auto;width:100%;padding:10px">
            <tr><td style="text-align:center;font-size:14px;color:#444;"><strong>Your Target:</strong> {{rupees .TargetPrice}}</td></tr>
            <tr><td style="text-align:center;font-size:14px;color:#444;"><strong>Previous Price:</strong> {{rupees .PreviousPrice}}</td></tr>
            <tr><td style="text-align:center;font-size:14px;color:#444;"><strong>Current Price:</strong> {{rupees .CurrentPrice}}</td></tr>
            <tr><td style="text-align:center;font-size:14px;color:#d9534f;"><strong>Discount:</strong> {{.ChangePercent}}% OFF</td></tr>
          </table>
          <p style="font-size:14px;color:#444;text-align:center;margin:12px 0;">
            Want to buy now?
            <a href="{{.SourceURL}}" style="color:#0a85ea;text-decoration:underline;" target="_blank">Click here to shop on JioMart</a>
          </p>
        </td>
      </tr>
    </table>
    <p style="font-size:11px;color:#888;text-align:center;margin-top:20px;">
      This alert was sent to {{.UserEmail}}. {{.EmailsRemaining}} more alerts remain for this item.
    </p>
  </body>
</html>
`))

func renderAlertHTML(alert *AlertPayload) (string, error) {
	var buf bytes.Buffer
	if err := alertTemplate.Execute(&buf, alert); err != nil {
		return "", fmt.Errorf("rendering alert email: %w", err)
	}
	return buf.String(), nil
}
