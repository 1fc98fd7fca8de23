package models

// MailMessage describes one outbound email. Attachment content, if any,
// is carried in-memory; the transport layer does not retry failed sends.
type MailMessage struct {
	To      string `json:"to" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Body    string `json:"text" validate:"required"`

	// AttachmentName and Attachment carry an optional file attached to
	// the message. Both are empty when no attachment was supplied.
	AttachmentName string `json:"-"`
	Attachment     []byte `json:"-"`
}
