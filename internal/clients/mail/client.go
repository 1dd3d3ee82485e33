package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"livekit-henryk/internal/config"
	"livekit-henryk/internal/observability"

	"github.com/resendlabs/resend-go"
)

// Sender delivers one email and returns the provider message id
type Sender interface {
	SendEmail(ctx context.Context, from, to, subject, htmlContent string) (string, error)
}

type ResendClient struct {
	client *resend.Client
	logger *observability.Logger
}

func NewResendClient(apiKey string, logger *observability.Logger) (*ResendClient, error) {
	client := resend.NewClient(apiKey)
	if client == nil {
		return nil, fmt.Errorf("failed to create Resend client")
	}
	return &ResendClient{client: client, logger: logger}, nil
}

func (c *ResendClient) SendEmail(ctx context.Context, from, to, subject, htmlContent string) (string, error) {
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "email_to", Value: to},
		observability.Field{Key: "email_subject", Value: subject},
	)

	res, err := c.client.Emails.Send(&resend.SendEmailRequest{
		From:    from,
		To:      []string{to},
		Subject: subject,
		Html:    htmlContent,
	})
	if err != nil {
		c.logger.Error(ctx, "failed to send email", err)
		return "", fmt.Errorf("failed to send email: %w", err)
	}

	c.logger.Info(ctx, "email sent successfully")
	return res.Id, nil
}

// LostNotification describes a transcript whose webhook delivery gave up
type LostNotification struct {
	RoomName    string
	PhoneNumber string
	Attempts    int
	LastError   string
}

var lostNotificationTemplate = template.Must(template.New("lost").Parse(`<p>The transcript webhook for room <b>{{.RoomName}}</b> failed after {{.Attempts}} attempts.</p>
{{if .PhoneNumber}}<p>Phone number: {{.PhoneNumber}}</p>{{end}}
<p>Last error: <code>{{.LastError}}</code></p>
<p>Resend it with <code>POST /calls/{{.RoomName}}/resend</code>.</p>`))

// Alerter emails the operator when a notification is given up on. A nil
// Alerter or one without a recipient does nothing.
type Alerter struct {
	sender Sender
	from   string
	to     string
	logger *observability.Logger
}

// NewAlerter returns nil when alert mail is not configured.
func NewAlerter(cfg config.MailConfig, logger *observability.Logger) (*Alerter, error) {
	if cfg.ResendAPIKey == "" || cfg.AlertEmail == "" {
		return nil, nil
	}
	client, err := NewResendClient(cfg.ResendAPIKey, logger)
	if err != nil {
		return nil, err
	}
	return newAlerter(client, cfg.Sender, cfg.AlertEmail, logger), nil
}

func newAlerter(sender Sender, from, to string, logger *observability.Logger) *Alerter {
	return &Alerter{sender: sender, from: from, to: to, logger: logger}
}

func (a *Alerter) NotificationLost(ctx context.Context, n LostNotification) error {
	if a == nil || a.to == "" {
		return nil
	}

	var body bytes.Buffer
	if err := lostNotificationTemplate.Execute(&body, n); err != nil {
		return fmt.Errorf("failed to render alert: %w", err)
	}

	subject := fmt.Sprintf("Transcript webhook failed for %s", n.RoomName)
	if _, err := a.sender.SendEmail(ctx, a.from, a.to, subject, body.String()); err != nil {
		return err
	}
	return nil
}
