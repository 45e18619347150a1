package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"

	"github.com/oklog/ulid/v2"

	"github.com/colemanmx/coleman-mx/storage"
)

// Config carries the Brevo SMTP settings plus the internal recipient
// for admin notifications.
type Config struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	InternalTo string
}

// Service handles email sending via Brevo SMTP. queries may be nil;
// sends then skip the email log.
type Service struct {
	cfg     Config
	queries *storage.Queries

	// sendMail is swapped out in tests
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewService(cfg Config, queries *storage.Queries) *Service {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &Service{
		cfg:      cfg,
		queries:  queries,
		sendMail: smtp.SendMail,
	}
}

func (s *Service) IsConfigured() bool {
	return s.cfg.Host != "" && s.cfg.Password != "" && s.cfg.From != ""
}

// Email represents an email message
type Email struct {
	To      []string
	Subject string
	Body    string
	IsHTML  bool
	ReplyTo string
}

// Send sends an email via Brevo SMTP
func (s *Service) Send(email *Email) error {
	if !s.IsConfigured() {
		return fmt.Errorf("email service not configured: missing BREVO_SMTP_HOST, BREVO_SMTP_KEY, or EMAIL_FROM")
	}

	var msg bytes.Buffer
	msg.WriteString(fmt.Sprintf("From: %s\r\n", s.cfg.From))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", email.To[0]))
	if email.ReplyTo != "" {
		msg.WriteString(fmt.Sprintf("Reply-To: %s\r\n", email.ReplyTo))
	}
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", email.Subject))

	if email.IsHTML {
		msg.WriteString("MIME-Version: 1.0\r\n")
		msg.WriteString("Content-Type: text/html; charset=\"utf-8\"\r\n")
	}

	msg.WriteString("\r\n")
	msg.WriteString(email.Body)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	if err := s.sendMail(addr, auth, s.cfg.From, email.To, msg.Bytes()); err != nil {
		slog.Error("failed to send email", "error", err, "to", email.To)
		return fmt.Errorf("failed to send email: %w", err)
	}

	slog.Info("email sent successfully", "to", email.To, "subject", email.Subject)
	return nil
}

// logSend records the send in the email log; a logging failure never
// fails the send that already happened.
func (s *Service) logSend(ctx context.Context, recipient, emailType, subject string) {
	if s.queries == nil {
		return
	}
	_, err := s.queries.CreateEmailLog(ctx, storage.CreateEmailLogParams{
		ID:             ulid.Make().String(),
		RecipientEmail: recipient,
		EmailType:      emailType,
		Subject:        subject,
	})
	if err != nil {
		slog.Error("failed to log email send", "error", err, "email", recipient, "type", emailType)
	}
}

// ContactRequestData contains all data for contact request emails
type ContactRequestData struct {
	ID          string
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	Subject     string
	Message     string
	SubmittedAt string
}

// SendContactRequestNotification sends a contact request notification to admin
func (s *Service) SendContactRequestNotification(ctx context.Context, data *ContactRequestData) error {
	html, err := renderTemplate("contact", contactRequestContentTemplate, data,
		fmt.Sprintf("New Contact Request - %s", data.Subject))
	if err != nil {
		return err
	}

	msg := &Email{
		To:      []string{s.cfg.InternalTo},
		Subject: fmt.Sprintf("New Contact Request - %s", data.Subject),
		Body:    html,
		IsHTML:  true,
	}
	if data.Email != "" {
		msg.ReplyTo = data.Email
	}

	if err := s.Send(msg); err != nil {
		return err
	}
	s.logSend(ctx, s.cfg.InternalTo, "contact_notification", msg.Subject)
	return nil
}

// BookingData contains all data for booking emails
type BookingData struct {
	ID            string
	CustomerName  string
	Email         string
	Phone         string
	Package       string
	SkillLevel    string
	RequestedDate string
	RequestedSlot string
	Notes         string
}

// SendBookingConfirmation acknowledges the rider's session request.
func (s *Service) SendBookingConfirmation(ctx context.Context, data *BookingData) error {
	subject := "Your coaching session request"
	html, err := renderTemplate("booking_customer", bookingCustomerContentTemplate, data, subject)
	if err != nil {
		return err
	}

	if err := s.Send(&Email{To: []string{data.Email}, Subject: subject, Body: html, IsHTML: true}); err != nil {
		return err
	}
	s.logSend(ctx, data.Email, "booking_confirmation", subject)
	return nil
}

// SendBookingNotificationToAdmin notifies the coach of a new request.
func (s *Service) SendBookingNotificationToAdmin(ctx context.Context, data *BookingData) error {
	subject := fmt.Sprintf("New Booking Request - %s on %s", data.Package, data.RequestedDate)
	html, err := renderTemplate("booking_admin", bookingAdminContentTemplate, data, subject)
	if err != nil {
		return err
	}

	msg := &Email{
		To:      []string{s.cfg.InternalTo},
		Subject: subject,
		Body:    html,
		IsHTML:  true,
	}
	if data.Email != "" {
		msg.ReplyTo = data.Email
	}

	if err := s.Send(msg); err != nil {
		return err
	}
	s.logSend(ctx, s.cfg.InternalTo, "booking_notification", subject)
	return nil
}

func renderTemplate(name, tmplText string, data any, subject string) (string, error) {
	tmpl := template.Must(template.New(name).Parse(tmplText))

	var content bytes.Buffer
	if err := tmpl.Execute(&content, data); err != nil {
		return "", fmt.Errorf("failed to render %s email content: %w", name, err)
	}
	return WrapEmailContent(content.String(), subject)
}
