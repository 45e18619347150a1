package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colemanmx/coleman-mx/internal/email"
	"github.com/colemanmx/coleman-mx/internal/gsuite"
	"github.com/colemanmx/coleman-mx/storage"
)

type fakeSheet struct {
	rows []gsuite.BookingRow
	err  error
}

func (f *fakeSheet) AppendBooking(ctx context.Context, row gsuite.BookingRow) error {
	if f.err != nil {
		return f.err
	}
	f.rows = append(f.rows, row)
	return nil
}

// fakeCalendar reports windows at fixed hour offsets from the start of
// the queried range.
type fakeCalendar struct {
	busyHours [][2]int
	err       error
}

func (f *fakeCalendar) BusyWindows(ctx context.Context, from, to time.Time) ([]gsuite.BusyWindow, error) {
	if f.err != nil {
		return nil, f.err
	}
	windows := make([]gsuite.BusyWindow, 0, len(f.busyHours))
	for _, h := range f.busyHours {
		windows = append(windows, gsuite.BusyWindow{
			Start: from.Add(time.Duration(h[0]) * time.Hour),
			End:   from.Add(time.Duration(h[1]) * time.Hour),
		})
	}
	return windows, nil
}

func newBookingTestHandler(t *testing.T, sheet BookingSheet, cal AvailabilityCalendar) (*BookingHandler, *storage.Storage) {
	t.Helper()
	store, cleanup, err := storage.NewTestStorage()
	require.NoError(t, err)
	t.Cleanup(cleanup)
	svc := email.NewService(email.Config{}, store.Queries)
	return NewBookingHandler(store, svc, &fakeVerifier{configured: false}, sheet, cal), store
}

const bookingBody = `{
	"customer_name": "Jordan Beck",
	"email": "jordan@example.com",
	"phone": "555-0188",
	"package": "private-2h",
	"skill_level": "intermediate",
	"requested_date": "2026-09-12",
	"requested_slot": "10:00",
	"notes": "First time on a 250"
}`

func TestCreateBookingPersistsAndAppendsToSheet(t *testing.T) {
	sheet := &fakeSheet{}
	h, store := newBookingTestHandler(t, sheet, &fakeCalendar{})

	rec, _ := submitJSON(h.HandleCreateBooking, http.MethodPost, "/api/bookings", bookingBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp["id"])
	assert.Equal(t, "pending", resp["status"])

	saved, err := store.Queries.GetBooking(context.Background(), resp["id"])
	require.NoError(t, err)
	assert.Equal(t, "Jordan Beck", saved.CustomerName)
	assert.Equal(t, "2026-09-12", saved.RequestedDate)
	assert.Equal(t, "10:00", saved.RequestedSlot)

	require.Len(t, sheet.rows, 1)
	assert.Equal(t, resp["id"], sheet.rows[0].ID)
	assert.Equal(t, "private-2h", sheet.rows[0].Package)
}

func TestCreateBookingValidation(t *testing.T) {
	h, _ := newBookingTestHandler(t, &fakeSheet{}, &fakeCalendar{})

	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"email":"a@b.com","package":"private-2h","requested_date":"2026-09-12","requested_slot":"10:00"}`},
		{"bad date", `{"customer_name":"A","email":"a@b.com","package":"private-2h","requested_date":"Sept 12","requested_slot":"10:00"}`},
		{"bad skill level", `{"customer_name":"A","email":"a@b.com","package":"private-2h","skill_level":"pro","requested_date":"2026-09-12","requested_slot":"10:00"}`},
		{"unknown slot", `{"customer_name":"A","email":"a@b.com","package":"private-2h","requested_date":"2026-09-12","requested_slot":"09:30"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := submitJSON(h.HandleCreateBooking, http.MethodPost, "/api/bookings", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCreateBookingConflictsOnTakenSlot(t *testing.T) {
	h, _ := newBookingTestHandler(t, &fakeSheet{}, &fakeCalendar{})

	rec, _ := submitJSON(h.HandleCreateBooking, http.MethodPost, "/api/bookings", bookingBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, _ = submitJSON(h.HandleCreateBooking, http.MethodPost, "/api/bookings", bookingBody)
	require.Equal(t, http.StatusConflict, rec.Code)

	var resp struct {
		AvailableSlots []string `json:"available_slots"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotContains(t, resp.AvailableSlots, "10:00")
	assert.Contains(t, resp.AvailableSlots, "13:00")
}

func TestCreateBookingConflictsOnBusyCalendar(t *testing.T) {
	// Coach is busy 09:00-11:00, which overlaps the 10:00 session.
	h, _ := newBookingTestHandler(t, &fakeSheet{}, &fakeCalendar{busyHours: [][2]int{{9, 11}}})

	rec, _ := submitJSON(h.HandleCreateBooking, http.MethodPost, "/api/bookings", bookingBody)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCreateBookingSurvivesSheetFailure(t *testing.T) {
	h, store := newBookingTestHandler(t, &fakeSheet{err: errors.New("sheet unavailable")}, &fakeCalendar{})

	rec, _ := submitJSON(h.HandleCreateBooking, http.MethodPost, "/api/bookings", bookingBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	_, err := store.Queries.GetBooking(context.Background(), resp["id"])
	assert.NoError(t, err)
}

func TestCreateBookingFailsOnCalendarError(t *testing.T) {
	h, _ := newBookingTestHandler(t, &fakeSheet{}, &fakeCalendar{err: errors.New("calendar down")})

	rec, _ := submitJSON(h.HandleCreateBooking, http.MethodPost, "/api/bookings", bookingBody)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestListSlots(t *testing.T) {
	h, _ := newBookingTestHandler(t, &fakeSheet{}, &fakeCalendar{busyHours: [][2]int{{13, 15}}})

	// Take the 08:00 slot with a booking first.
	body := `{"customer_name":"A","email":"a@b.com","package":"group-clinic","requested_date":"2026-09-12","requested_slot":"08:00"}`
	rec, _ := submitJSON(h.HandleCreateBooking, http.MethodPost, "/api/bookings", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, _ = submitJSON(h.HandleListSlots, http.MethodGet, "/api/bookings/slots?date=2026-09-12", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Date  string   `json:"date"`
		Slots []string `json:"slots"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "2026-09-12", resp.Date)
	// 08:00 is booked, 13:00 overlaps the 13:00-15:00 busy window.
	assert.Equal(t, []string{"10:00", "15:00"}, resp.Slots)
}

func TestListSlotsRejectsBadDate(t *testing.T) {
	h, _ := newBookingTestHandler(t, &fakeSheet{}, &fakeCalendar{})

	rec, _ := submitJSON(h.HandleListSlots, http.MethodGet, "/api/bookings/slots?date=tomorrow", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = submitJSON(h.HandleListSlots, http.MethodGet, "/api/bookings/slots", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
