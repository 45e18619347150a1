package email

import (
	"context"
	"net/smtp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colemanmx/coleman-mx/storage"
)

type capturedMail struct {
	addr string
	from string
	to   []string
	msg  string
}

func testService(t *testing.T, queries *storage.Queries) (*Service, *[]capturedMail) {
	t.Helper()
	var sent []capturedMail
	svc := NewService(Config{
		Host:       "smtp-relay.brevo.com",
		Port:       587,
		Username:   "login",
		Password:   "key",
		From:       "ride@colemanmx.com",
		InternalTo: "coach@colemanmx.com",
	}, queries)
	svc.sendMail = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		sent = append(sent, capturedMail{addr: addr, from: from, to: to, msg: string(msg)})
		return nil
	}
	return svc, &sent
}

func TestSendContactRequestNotification(t *testing.T) {
	_, queries, cleanup, err := storage.NewTestDB()
	require.NoError(t, err)
	defer cleanup()

	svc, sent := testService(t, queries)
	err = svc.SendContactRequestNotification(context.Background(), &ContactRequestData{
		FirstName:   "Cole",
		LastName:    "Hartman",
		Email:       "cole@example.com",
		Subject:     "Sponsorship",
		Message:     "Interested in a team day.",
		SubmittedAt: "2026-08-29 10:00",
	})
	require.NoError(t, err)

	require.Len(t, *sent, 1)
	mail := (*sent)[0]
	assert.Equal(t, []string{"coach@colemanmx.com"}, mail.to)
	assert.Contains(t, mail.msg, "Reply-To: cole@example.com")
	assert.Contains(t, mail.msg, "Interested in a team day.")
	assert.Contains(t, mail.msg, "Content-Type: text/html")

	entries, err := queries.ListEmailLogByRecipient(context.Background(), "coach@colemanmx.com")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "contact_notification", entries[0].EmailType)
}

func TestSendBookingEmails(t *testing.T) {
	svc, sent := testService(t, nil)
	data := &BookingData{
		CustomerName:  "Riley James",
		Email:         "riley@example.com",
		Package:       "full-day",
		RequestedDate: "2026-09-12",
		RequestedSlot: "09:00",
		Notes:         "First time on a 450.",
	}

	require.NoError(t, svc.SendBookingConfirmation(context.Background(), data))
	require.NoError(t, svc.SendBookingNotificationToAdmin(context.Background(), data))

	require.Len(t, *sent, 2)
	assert.Equal(t, []string{"riley@example.com"}, (*sent)[0].to)
	assert.Contains(t, (*sent)[0].msg, "full-day")
	assert.Equal(t, []string{"coach@colemanmx.com"}, (*sent)[1].to)
	assert.Contains(t, (*sent)[1].msg, "First time on a 450.")
}

func TestSendUnconfigured(t *testing.T) {
	svc := NewService(Config{}, nil)
	err := svc.Send(&Email{To: []string{"x@example.com"}, Subject: "hi", Body: "hello"})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "not configured"))
}
