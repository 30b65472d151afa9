package mailer

import (
	"context"
	"fmt"
	"net/http"

	"github.com/edhub-platform/school-service/internal/utils"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

const (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

// SendgridMailer delivers mail through the SendGrid v3 API.
type SendgridMailer struct {
	key      string
	from     *sgmail.Email
	fromName string
	logger   utils.Logger
}

func NewSendgridMailer(apiKey, fromEmail, fromName string, logger utils.Logger) *SendgridMailer {
	return &SendgridMailer{
		key:    apiKey,
		from:   sgmail.NewEmail(fromName, fromEmail),
		logger: logger,
	}
}

func (m *SendgridMailer) Send(ctx context.Context, msg *Message) error {
	p := sgmail.NewPersonalization()
	p.Subject = msg.Subject
	p.AddTos(sgmail.NewEmail(msg.ToName, msg.To))

	mail := sgmail.NewV3Mail()
	mail.SetFrom(m.from)
	mail.AddPersonalizations(p)
	mail.AddContent(
		sgmail.NewContent("text/plain", msg.Text),
		sgmail.NewContent("text/html", msg.HTML),
	)

	req := sendgrid.GetRequest(m.key, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = sgmail.GetRequestBody(mail)

	res, err := sendgrid.MakeRequestWithContext(ctx, req)
	if err != nil {
		return fmt.Errorf("sendgrid request failed: %w", err)
	}
	if res.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("sendgrid rejected message: status %d body %s", res.StatusCode, res.Body)
	}

	m.logger.Info("Email sent", "to", msg.To, "subject", msg.Subject)
	return nil
}
