package handler

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/octobees/leadgen/api/internal/dto"
	"github.com/octobees/leadgen/api/internal/entity"
	"github.com/octobees/leadgen/api/internal/llm"
)

// EmailDispatcher is the slice of the mailer the handler consumes.
type EmailDispatcher interface {
	Send(ctx context.Context, msg entity.EmailMessage) (entity.DeliveryReceipt, error)
	ProviderName() string
}

// OutreachComposer generates outreach email content.
type OutreachComposer interface {
	ComposeOutreach(ctx context.Context, companyName, purpose, tone string) (llm.OutreachContent, error)
}

// EmailHandler serves the email dispatch and content generation endpoints.
type EmailHandler struct {
	dispatcher      EmailDispatcher
	composer        OutreachComposer
	maxAttachmentMB int
}

// NewEmailHandler wires a new EmailHandler instance. Either dependency may be
// nil when the matching provider is not configured.
func NewEmailHandler(dispatcher EmailDispatcher, composer OutreachComposer, maxAttachmentMB int) *EmailHandler {
	if maxAttachmentMB <= 0 {
		maxAttachmentMB = 10
	}
	return &EmailHandler{dispatcher: dispatcher, composer: composer, maxAttachmentMB: maxAttachmentMB}
}

// Send dispatches an email through the configured provider. A copy is always
// CC'd to the sender address.
func (h *EmailHandler) Send(c echo.Context) error {
	if h.dispatcher == nil {
		return Error(c, http.StatusInternalServerError, "email sending is not configured")
	}

	var payload dto.EmailRequest
	if err := c.Bind(&payload); err != nil {
		return Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if err := c.Validate(&payload); err != nil {
		return Error(c, http.StatusBadRequest, "from, to, subject and body are required")
	}

	attachments, err := h.decodeAttachments(payload.Attachments)
	if err != nil {
		return Error(c, http.StatusBadRequest, err.Error())
	}

	msg := entity.EmailMessage{
		From:        payload.From,
		To:          payload.To,
		Subject:     payload.Subject,
		HTMLBody:    payload.Body,
		Attachments: attachments,
	}

	receipt, err := h.dispatcher.Send(c.Request().Context(), msg)
	if err != nil {
		return c.JSON(http.StatusBadGateway, APIResponse{
			Status:  "error",
			Message: "email delivery failed",
			Data:    receipt,
		})
	}

	return Success(c, http.StatusOK, receipt.Message, receipt)
}

// GenerateContent returns AI-generated outreach email content.
func (h *EmailHandler) GenerateContent(c echo.Context) error {
	if h.composer == nil {
		return Error(c, http.StatusInternalServerError, "content generation is not configured")
	}

	var payload dto.OutreachRequest
	if err := c.Bind(&payload); err != nil {
		return Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if err := c.Validate(&payload); err != nil {
		return Error(c, http.StatusBadRequest, "company_name is required")
	}

	content, err := h.composer.ComposeOutreach(c.Request().Context(), payload.CompanyName, payload.Purpose, payload.Tone)
	if err != nil {
		zap.L().Error("outreach generation failed", zap.String("company", payload.CompanyName), zap.Error(err))
		return Error(c, http.StatusInternalServerError, "failed to generate email content")
	}

	return Success(c, http.StatusOK, "content generated", content)
}

func (h *EmailHandler) decodeAttachments(attachments []dto.EmailAttachment) ([]entity.Attachment, error) {
	if len(attachments) == 0 {
		return nil, nil
	}

	limit := h.maxAttachmentMB * 1024 * 1024
	decoded := make([]entity.Attachment, 0, len(attachments))
	for _, att := range attachments {
		content, err := base64.StdEncoding.DecodeString(att.Content)
		if err != nil {
			return nil, fmt.Errorf("attachment %q is not valid base64", att.Filename)
		}
		if len(content) > limit {
			return nil, fmt.Errorf("attachment %q exceeds the %dMB limit", att.Filename, h.maxAttachmentMB)
		}
		decoded = append(decoded, entity.Attachment{
			Filename: att.Filename,
			Content:  content,
			MimeType: att.MimeType,
			Size:     len(content),
		})
	}
	return decoded, nil
}
