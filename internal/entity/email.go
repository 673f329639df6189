package entity

import "time"

// Attachment is a decoded email attachment. It is owned exclusively by the
// dispatch call for its duration; any on-disk copy is removed before the call
// returns.
type Attachment struct {
	Filename string
	Content  []byte
	MimeType string
	Size     int
}

// EmailMessage is an outbound outreach email. Every send implicitly carries a
// CC to the sender's own address.
type EmailMessage struct {
	From        string
	To          string
	Subject     string
	HTMLBody    string
	Attachments []Attachment
}

// DeliveryReceipt reports the outcome of one dispatch attempt.
type DeliveryReceipt struct {
	Success         bool      `json:"success"`
	Provider        string    `json:"provider"`
	CC              string    `json:"cc"`
	SentAt          time.Time `json:"sent_at"`
	AttachmentCount int       `json:"attachments_count"`
	Message         string    `json:"message,omitempty"`
}
