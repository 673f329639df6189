package mailer

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/octobees/leadgen/api/internal/config"
	"github.com/octobees/leadgen/api/internal/entity"
)

type providerStub struct {
	name      string
	err       error
	gotCC     string
	gotFiles  []StagedAttachment
	pathsSeen []string
}

func (p *providerStub) Name() string {
	if p.name == "" {
		return "stub"
	}
	return p.name
}

func (p *providerStub) Send(ctx context.Context, msg entity.EmailMessage, cc string, files []StagedAttachment) error {
	p.gotCC = cc
	p.gotFiles = files
	for _, f := range files {
		p.pathsSeen = append(p.pathsSeen, f.Path)
		if _, err := os.Stat(f.Path); err != nil {
			return errors.New("attachment missing during provider call")
		}
	}
	return p.err
}

func testMessage() entity.EmailMessage {
	return entity.EmailMessage{
		From:     "sender@acme.com",
		To:       "lead@example-corp.com",
		Subject:  "Partnership",
		HTMLBody: "<p>Hello</p>",
		Attachments: []entity.Attachment{
			{Filename: "brochure.pdf", Content: []byte("%PDF-1.4"), MimeType: "application/pdf", Size: 8},
			{Filename: "", Content: []byte("data"), Size: 4},
		},
	}
}

func TestDispatcherSend(t *testing.T) {
	stub := &providerStub{}
	d := NewDispatcherWithProvider(stub)

	receipt, err := d.Send(context.Background(), testMessage())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !receipt.Success || receipt.Provider != "stub" {
		t.Fatalf("unexpected receipt: %+v", receipt)
	}
	if receipt.CC != "sender@acme.com" {
		t.Fatalf("CC must equal the from address, got %q", receipt.CC)
	}
	if receipt.AttachmentCount != 2 {
		t.Fatalf("expected 2 attachments, got %d", receipt.AttachmentCount)
	}
	if receipt.SentAt.IsZero() {
		t.Fatalf("receipt must carry a timestamp")
	}
	if stub.gotCC != "sender@acme.com" {
		t.Fatalf("provider must receive the CC, got %q", stub.gotCC)
	}
	if len(stub.gotFiles) != 2 || stub.gotFiles[0].Filename != "brochure.pdf" {
		t.Fatalf("unexpected staged files: %+v", stub.gotFiles)
	}
	if stub.gotFiles[1].MimeType != "application/octet-stream" {
		t.Fatalf("missing mimetype must default, got %q", stub.gotFiles[1].MimeType)
	}

	for _, path := range stub.pathsSeen {
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Fatalf("temp attachment %s must be removed after send", path)
		}
	}
}

func TestDispatcherSendProviderFailure(t *testing.T) {
	stub := &providerStub{err: errors.New("550 rejected sender")}
	d := NewDispatcherWithProvider(stub)

	receipt, err := d.Send(context.Background(), testMessage())
	if err == nil {
		t.Fatalf("expected error")
	}
	if receipt.Success {
		t.Fatalf("receipt must report failure")
	}
	if receipt.Provider != "stub" || receipt.Message == "" {
		t.Fatalf("failure receipt must name provider and reason: %+v", receipt)
	}
	if receipt.CC != "sender@acme.com" {
		t.Fatalf("CC recorded even on failure, got %q", receipt.CC)
	}

	// Temp files are removed on the failure path too.
	for _, path := range stub.pathsSeen {
		if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
			t.Fatalf("temp attachment %s must be removed after provider failure", path)
		}
	}
}

func TestNewDispatcherProviderSelection(t *testing.T) {
	t.Run("sendgrid preferred", func(t *testing.T) {
		cfg := &config.Config{SendGridAPIKey: "sg-key", SMTPHost: "smtp.example.com", SMTPUser: "u", SMTPPassword: "p"}
		d, err := NewDispatcher(cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d.ProviderName() != "sendgrid" {
			t.Fatalf("expected sendgrid, got %s", d.ProviderName())
		}
	})

	t.Run("smtp fallback", func(t *testing.T) {
		cfg := &config.Config{SMTPHost: "smtp.example.com", SMTPPort: 587, SMTPUser: "u", SMTPPassword: "p"}
		d, err := NewDispatcher(cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if d.ProviderName() != "smtp-relay" {
			t.Fatalf("expected smtp-relay, got %s", d.ProviderName())
		}
	})

	t.Run("nothing configured fails fast", func(t *testing.T) {
		if _, err := NewDispatcher(&config.Config{}); !errors.Is(err, ErrNoProvider) {
			t.Fatalf("expected ErrNoProvider, got %v", err)
		}
	})
}

func TestStageAttachmentsEmpty(t *testing.T) {
	files, cleanup, err := stageAttachments(nil)
	if err != nil || files != nil {
		t.Fatalf("unexpected result: %v %v", files, err)
	}
	cleanup()
}
