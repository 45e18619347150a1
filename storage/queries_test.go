package storage

import (
	"context"
	"database/sql"
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContactRequestRoundTrip(t *testing.T) {
	_, queries, cleanup, err := NewTestDB()
	require.NoError(t, err)
	defer cleanup()
	ctx := context.Background()

	created, err := queries.CreateContactRequest(ctx, CreateContactRequestParams{
		ID:             ulid.Make().String(),
		FirstName:      "Cole",
		LastName:       "Hartman",
		Email:          "cole@example.com",
		Subject:        "Coaching availability",
		Message:        "Any open weekends in September?",
		RecaptchaScore: sql.NullFloat64{Float64: 0.9, Valid: true},
	})
	require.NoError(t, err)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := queries.GetContactRequest(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "cole@example.com", got.Email)
	assert.Equal(t, 0.9, got.RecaptchaScore.Float64)

	list, err := queries.ListContactRequests(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestBookingLifecycle(t *testing.T) {
	_, queries, cleanup, err := NewTestDB()
	require.NoError(t, err)
	defer cleanup()
	ctx := context.Background()

	booking, err := queries.CreateBooking(ctx, CreateBookingParams{
		ID:            ulid.Make().String(),
		CustomerName:  "Riley James",
		Email:         "riley@example.com",
		Package:       "full-day",
		SkillLevel:    sql.NullString{String: "intermediate", Valid: true},
		RequestedDate: "2026-09-12",
		RequestedSlot: "09:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", booking.Status)

	sameDay, err := queries.ListBookingsByDate(ctx, "2026-09-12")
	require.NoError(t, err)
	require.Len(t, sameDay, 1)

	cancelled, err := queries.UpdateBookingStatus(ctx, booking.ID, "cancelled")
	require.NoError(t, err)
	assert.Equal(t, "cancelled", cancelled.Status)

	// cancelled bookings free the slot
	sameDay, err = queries.ListBookingsByDate(ctx, "2026-09-12")
	require.NoError(t, err)
	assert.Empty(t, sameDay)
}

func TestEmailLog(t *testing.T) {
	_, queries, cleanup, err := NewTestDB()
	require.NoError(t, err)
	defer cleanup()
	ctx := context.Background()

	_, err = queries.CreateEmailLog(ctx, CreateEmailLogParams{
		ID:             ulid.Make().String(),
		RecipientEmail: "riley@example.com",
		EmailType:      "booking_confirmation",
		Subject:        "Your coaching session request",
	})
	require.NoError(t, err)

	entries, err := queries.ListEmailLogByRecipient(ctx, "riley@example.com")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "booking_confirmation", entries[0].EmailType)
}
