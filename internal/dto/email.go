package dto

// EmailAttachment carries a base64-encoded attachment.
type EmailAttachment struct {
	Filename string `json:"filename" validate:"required"`
	Content  string `json:"content" validate:"required"`
	MimeType string `json:"mimetype"`
}

// EmailRequest is the payload for the email dispatch endpoint.
type EmailRequest struct {
	From        string            `json:"from" validate:"required,email"`
	To          string            `json:"to" validate:"required,email"`
	Subject     string            `json:"subject" validate:"required,min=1"`
	Body        string            `json:"body" validate:"required,min=1"`
	Attachments []EmailAttachment `json:"attachments,omitempty" validate:"omitempty,dive"`
}

// OutreachRequest asks for AI-generated outreach email content.
type OutreachRequest struct {
	CompanyName string `json:"company_name" validate:"required,min=1"`
	Purpose     string `json:"purpose"`
	Tone        string `json:"tone"`
}
