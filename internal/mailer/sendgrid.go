package mailer

import (
	"context"
	"encoding/base64"
	"os"

	"github.com/rotisserie/eris"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/octobees/leadgen/api/internal/entity"
)

// SendGridProvider sends through the SendGrid API. It can send from any
// verified address, so the caller's from address is used directly.
type SendGridProvider struct {
	client *sendgrid.Client
}

// NewSendGridProvider builds a SendGrid-backed provider.
func NewSendGridProvider(apiKey string) *SendGridProvider {
	return &SendGridProvider{client: sendgrid.NewSendClient(apiKey)}
}

// Name identifies the provider on delivery receipts.
func (p *SendGridProvider) Name() string { return "sendgrid" }

// Send delivers the message with the CC applied.
func (p *SendGridProvider) Send(ctx context.Context, msg entity.EmailMessage, cc string, files []StagedAttachment) error {
	m := sgmail.NewV3Mail()
	m.SetFrom(sgmail.NewEmail("", msg.From))
	m.Subject = msg.Subject

	personalization := sgmail.NewPersonalization()
	personalization.AddTos(sgmail.NewEmail("", msg.To))
	personalization.AddCCs(sgmail.NewEmail("", cc))
	m.AddPersonalizations(personalization)

	m.AddContent(sgmail.NewContent("text/html", msg.HTMLBody))

	for _, f := range files {
		data, err := os.ReadFile(f.Path)
		if err != nil {
			return eris.Wrapf(err, "sendgrid: read attachment %s", f.Filename)
		}
		att := sgmail.NewAttachment()
		att.SetContent(base64.StdEncoding.EncodeToString(data))
		att.SetType(f.MimeType)
		att.SetFilename(f.Filename)
		att.SetDisposition("attachment")
		m.AddAttachment(att)
	}

	resp, err := p.client.SendWithContext(ctx, m)
	if err != nil {
		return eris.Wrap(err, "sendgrid: send")
	}
	if resp.StatusCode >= 400 {
		return eris.Errorf("sendgrid: rejected with status %d", resp.StatusCode)
	}
	return nil
}

var _ Provider = (*SendGridProvider)(nil)
