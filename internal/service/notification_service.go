package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v2"
	"kudoswall/internal/config"
	"kudoswall/internal/logger"
	"kudoswall/internal/metrics"
	"kudoswall/internal/model"
)

// Notifier tells a form owner about a new response. Delivery is best effort
// and never fails the submission.
type Notifier interface {
	NotifyNewResponse(ctx context.Context, form *model.Form, resp *model.Response)
}

// NopNotifier drops every notification.
type NopNotifier struct{}

func (NopNotifier) NotifyNewResponse(context.Context, *model.Form, *model.Response) {}

// EmailSender is the part of the Resend client used here; resend.Client.Emails
// satisfies it.
type EmailSender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type EmailNotifier struct {
	cfg     config.EmailConfig
	sender  EmailSender
	baseURL string
	metrics *metrics.Metrics
}

// NewEmailNotifier returns an email notifier, or a NopNotifier when no Resend
// key is configured.
func NewEmailNotifier(cfg config.EmailConfig, baseURL string, m *metrics.Metrics) Notifier {
	if cfg.ResendAPIKey == "" {
		return NopNotifier{}
	}
	return newEmailNotifier(cfg, resend.NewClient(cfg.ResendAPIKey).Emails, baseURL, m)
}

func newEmailNotifier(cfg config.EmailConfig, sender EmailSender, baseURL string, m *metrics.Metrics) *EmailNotifier {
	logger.GetLogger().Infow("Initializing email notifier", "from", cfg.FromAddress)
	return &EmailNotifier{cfg: cfg, sender: sender, baseURL: baseURL, metrics: m}
}

type notificationData struct {
	FormTitle     string
	ResponderName string
	Rating        int
	Pairs         []questionAnswer
	ResponseURL   string
}

type questionAnswer struct {
	Question string
	Answer   string
}

func (n *EmailNotifier) NotifyNewResponse(ctx context.Context, form *model.Form, resp *model.Response) {
	log := logger.GetLogger()

	data := notificationData{
		FormTitle:     form.Title,
		ResponderName: resp.ResponderName,
		Rating:        resp.Rating,
		ResponseURL:   fmt.Sprintf("%s/v1/embed/%s", n.baseURL, resp.ID),
	}
	for i, answer := range resp.Answers {
		q := fmt.Sprintf("Question %d", i+1)
		if i < len(resp.Questions) && resp.Questions[i] != "" {
			q = resp.Questions[i]
		}
		data.Pairs = append(data.Pairs, questionAnswer{Question: q, Answer: answer})
	}

	var body bytes.Buffer
	if err := notificationTemplate.Execute(&body, data); err != nil {
		n.metrics.EmailErrors.Inc()
		log.Errorw("Failed to execute email template", "error", err)
		return
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", n.cfg.FromName, n.cfg.FromAddress),
		To:      []string{form.OwnerEmail},
		Subject: fmt.Sprintf("New response to %q", form.Title),
		Html:    body.String(),
	}
	if _, err := n.sender.SendWithContext(ctx, params); err != nil {
		n.metrics.EmailErrors.Inc()
		log.Errorw("Failed to send email",
			"error", err,
			"to", logger.MaskEmail(form.OwnerEmail),
			"formId", form.ID)
		return
	}

	n.metrics.EmailsSent.Inc()
	log.Infow("Notification sent", "to", logger.MaskEmail(form.OwnerEmail), "formId", form.ID)
}

var notificationTemplate = template.Must(template.New("notification").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New response</title>
</head>
<body style="font-family: sans-serif; background-color: #f7f7f7; color: #333333; padding: 20px;">
    <div style="max-width: 600px; margin: 0 auto; background-color: #ffffff; padding: 30px; border-radius: 12px;">
        <h1 style="font-size: 22px;">{{.FormTitle}} has a new response</h1>
        <p><strong>{{.ResponderName}}</strong>{{if .Rating}} rated it {{.Rating}}/5{{end}}</p>
        {{range .Pairs}}
        <p><em>{{.Question}}</em><br/>{{.Answer}}</p>
        {{end}}
        <p><a href="{{.ResponseURL}}">View the testimonial</a></p>
    </div>
</body>
</html>`))
