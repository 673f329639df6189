package mailer

import (
	"context"

	"github.com/rotisserie/eris"
	gomail "github.com/wneessen/go-mail"

	"github.com/octobees/leadgen/api/internal/entity"
)

// SMTPProvider relays through an authenticated mailbox. The message is sent
// from the configured account with Reply-To set to the caller's address, so
// replies reach the actual sender.
type SMTPProvider struct {
	host     string
	port     int
	account  string
	password string
}

// NewSMTPProvider builds a mailbox-relay provider.
func NewSMTPProvider(host string, port int, account, password string) *SMTPProvider {
	return &SMTPProvider{host: host, port: port, account: account, password: password}
}

// Name identifies the provider on delivery receipts.
func (p *SMTPProvider) Name() string { return "smtp-relay" }

// Send delivers the message with the CC applied.
func (p *SMTPProvider) Send(ctx context.Context, msg entity.EmailMessage, cc string, files []StagedAttachment) error {
	m := gomail.NewMsg()
	if err := m.From(p.account); err != nil {
		return eris.Wrap(err, "smtp: set from")
	}
	if err := m.To(msg.To); err != nil {
		return eris.Wrap(err, "smtp: set to")
	}
	if err := m.Cc(cc); err != nil {
		return eris.Wrap(err, "smtp: set cc")
	}
	if err := m.ReplyTo(msg.From); err != nil {
		return eris.Wrap(err, "smtp: set reply-to")
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextHTML, msg.HTMLBody)

	for _, f := range files {
		m.AttachFile(f.Path, gomail.WithFileName(f.Filename))
	}

	client, err := gomail.NewClient(p.host,
		gomail.WithPort(p.port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(p.account),
		gomail.WithPassword(p.password),
		gomail.WithTLSPolicy(gomail.TLSMandatory),
	)
	if err != nil {
		return eris.Wrap(err, "smtp: create client")
	}

	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return eris.Wrap(err, "smtp: deliver")
	}
	return nil
}

var _ Provider = (*SMTPProvider)(nil)
