// Package notify sends transactional email: agency inbox alerts and learner status updates.
package notify

import (
	"context"
	"fmt"
	"net/http"

	"agencylms/internal/utils"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

type Message struct {
	ToName  string
	ToEmail string
	Subject string
	Text    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// LogMailer only logs; used in development and when no API key is set.
type LogMailer struct{}

func (LogMailer) Send(ctx context.Context, msg Message) error {
	utils.LogEvent(ctx, "notify", "send", "email (log only)",
		zap.String("to", msg.ToEmail),
		zap.String("subject", msg.Subject),
	)
	return nil
}

const (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

type SendgridMailer struct {
	key  string
	host string
	from *sgmail.Email
}

func NewSendgridMailer(apiKey, fromName, fromEmail string) *SendgridMailer {
	return &SendgridMailer{
		key:  apiKey,
		host: sendgridHost,
		from: sgmail.NewEmail(fromName, fromEmail),
	}
}

// Send is synchronous; the rest client in this sendgrid release does not take a context.
func (m *SendgridMailer) Send(_ context.Context, msg Message) error {
	to := sgmail.NewEmail(msg.ToName, msg.ToEmail)
	body := sgmail.NewSingleEmail(m.from, msg.Subject, to, msg.Text, "")

	req := sendgrid.GetRequest(m.key, sendgridEndpoint, m.host)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(body)

	resp, err := sendgrid.API(req)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("sendgrid: status %d", resp.StatusCode)
	}
	return nil
}
