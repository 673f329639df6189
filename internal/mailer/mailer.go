// Package mailer dispatches outreach email through one of the configured
// delivery providers. The provider is resolved once at startup; every send
// carries an implicit CC to the sender's own address.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/octobees/leadgen/api/internal/config"
	"github.com/octobees/leadgen/api/internal/entity"
)

// ErrNoProvider indicates that no delivery provider is configured; sends
// fail fast without any network call.
var ErrNoProvider = errors.New("no email provider configured")

// StagedAttachment is an attachment materialized to a temporary file for the
// duration of one provider call.
type StagedAttachment struct {
	Path     string
	Filename string
	MimeType string
}

// Provider delivers a prepared message.
type Provider interface {
	Name() string
	Send(ctx context.Context, msg entity.EmailMessage, cc string, files []StagedAttachment) error
}

// Dispatcher resolves a provider at construction and sends messages through
// it. Dispatchers are stateless per invocation and safe for concurrent use.
type Dispatcher struct {
	provider Provider
}

// NewDispatcher selects the delivery provider from configuration: the
// token-based bulk provider when its API key is present, otherwise the
// authenticated mailbox relay, otherwise ErrNoProvider.
func NewDispatcher(cfg *config.Config) (*Dispatcher, error) {
	var provider Provider
	switch {
	case cfg.SendGridAPIKey != "":
		provider = NewSendGridProvider(cfg.SendGridAPIKey)
	case cfg.MailboxConfigured():
		provider = NewSMTPProvider(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword)
	default:
		return nil, ErrNoProvider
	}

	zap.L().Info("mailer: provider resolved", zap.String("provider", provider.Name()))
	return &Dispatcher{provider: provider}, nil
}

// NewDispatcherWithProvider injects a custom provider (useful for tests).
func NewDispatcherWithProvider(provider Provider) *Dispatcher {
	return &Dispatcher{provider: provider}
}

// ProviderName reports which provider the dispatcher resolved.
func (d *Dispatcher) ProviderName() string {
	return d.provider.Name()
}

// Send delivers the message with CC to the sender. Attachments are written to
// a scoped temporary directory immediately before the provider call and
// removed on every exit path.
func (d *Dispatcher) Send(ctx context.Context, msg entity.EmailMessage) (entity.DeliveryReceipt, error) {
	cc := msg.From
	receipt := entity.DeliveryReceipt{
		Provider:        d.provider.Name(),
		CC:              cc,
		AttachmentCount: len(msg.Attachments),
	}

	files, cleanup, err := stageAttachments(msg.Attachments)
	if err != nil {
		receipt.SentAt = time.Now().UTC()
		receipt.Message = "failed to prepare attachments"
		return receipt, err
	}
	defer cleanup()

	if err := d.provider.Send(ctx, msg, cc, files); err != nil {
		zap.L().Error("mailer: send failed",
			zap.String("provider", d.provider.Name()),
			zap.String("to", msg.To),
			zap.Error(err),
		)
		receipt.SentAt = time.Now().UTC()
		receipt.Message = shortReason(err)
		return receipt, eris.Wrapf(err, "mailer: send via %s", d.provider.Name())
	}

	receipt.Success = true
	receipt.SentAt = time.Now().UTC()
	receipt.Message = fmt.Sprintf("email sent via %s (copy sent to %s)", d.provider.Name(), cc)
	return receipt, nil
}

// stageAttachments writes attachments under a fresh temp directory and
// returns a cleanup that removes the whole directory.
func stageAttachments(attachments []entity.Attachment) ([]StagedAttachment, func(), error) {
	if len(attachments) == 0 {
		return nil, func() {}, nil
	}

	dir, err := os.MkdirTemp("", "leadgen-mail-")
	if err != nil {
		return nil, func() {}, eris.Wrap(err, "mailer: create temp dir")
	}
	cleanup := func() { _ = os.RemoveAll(dir) }

	files := make([]StagedAttachment, 0, len(attachments))
	for i, att := range attachments {
		name := filepath.Base(att.Filename)
		if name == "" || name == "." || name == string(filepath.Separator) {
			name = fmt.Sprintf("attachment-%d", i)
		}
		path := filepath.Join(dir, fmt.Sprintf("%d_%s", i, name))
		if err := os.WriteFile(path, att.Content, 0o600); err != nil {
			cleanup()
			return nil, func() {}, eris.Wrapf(err, "mailer: write attachment %s", name)
		}

		mimeType := att.MimeType
		if mimeType == "" {
			mimeType = "application/octet-stream"
		}
		files = append(files, StagedAttachment{Path: path, Filename: name, MimeType: mimeType})
	}
	return files, cleanup, nil
}

// shortReason flattens a provider error into a caller-safe string.
func shortReason(err error) string {
	if err == nil {
		return ""
	}
	root := eris.Cause(err)
	if root == nil {
		root = err
	}
	msg := root.Error()
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}
