// internal/notifications/models.go
package notifications

// EmailMessage is a single outbound email.
type EmailMessage struct {
	To      string
	Subject string
	Body    string
}

// SMSMessage is a single outbound SMS.
type SMSMessage struct {
	To      string
	Message string
}
