package handlers

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/oklog/ulid/v2"

	"github.com/colemanmx/coleman-mx/internal/email"
	"github.com/colemanmx/coleman-mx/internal/gsuite"
	"github.com/colemanmx/coleman-mx/storage"
)

// Coaching sessions run two hours. Start times are fixed.
var sessionSlots = []string{"08:00", "10:00", "13:00", "15:00"}

const sessionDuration = 2 * time.Hour

// BookingSheet mirrors gsuite.SheetsClient.
type BookingSheet interface {
	AppendBooking(ctx context.Context, row gsuite.BookingRow) error
}

// AvailabilityCalendar mirrors gsuite.CalendarClient.
type AvailabilityCalendar interface {
	BusyWindows(ctx context.Context, from, to time.Time) ([]gsuite.BusyWindow, error)
}

type BookingHandler struct {
	store        *storage.Storage
	emailService *email.Service
	verifier     captchaVerifier
	sheet        BookingSheet
	calendar     AvailabilityCalendar
	validate     *validator.Validate
	location     *time.Location
}

func NewBookingHandler(store *storage.Storage, emailService *email.Service, verifier captchaVerifier, sheet BookingSheet, calendar AvailabilityCalendar) *BookingHandler {
	loc, err := time.LoadLocation("America/Chicago")
	if err != nil {
		loc = time.UTC
	}
	return &BookingHandler{
		store:        store,
		emailService: emailService,
		verifier:     verifier,
		sheet:        sheet,
		calendar:     calendar,
		validate:     validator.New(),
		location:     loc,
	}
}

type BookingRequestBody struct {
	CustomerName   string `json:"customer_name" validate:"required,max=200"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"omitempty,max=30"`
	Package        string `json:"package" validate:"required,max=100"`
	SkillLevel     string `json:"skill_level" validate:"omitempty,oneof=beginner intermediate advanced"`
	RequestedDate  string `json:"requested_date" validate:"required,datetime=2006-01-02"`
	RequestedSlot  string `json:"requested_slot" validate:"required"`
	Notes          string `json:"notes" validate:"omitempty,max=2000"`
	RecaptchaToken string `json:"recaptcha_token"`
}

// HandleCreateBooking handles POST /api/bookings
func (h *BookingHandler) HandleCreateBooking(c echo.Context) error {
	ctx := c.Request().Context()

	var req BookingRequestBody
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":   "Validation failed",
			"details": err.Error(),
		})
	}
	if !validSlot(req.RequestedSlot) {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown session slot")
	}

	score, ok := verifyCaptcha(ctx, h.verifier, req.RecaptchaToken)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "reCAPTCHA verification failed")
	}

	available, err := h.availableSlots(ctx, req.RequestedDate)
	if err != nil {
		slog.Error("failed to compute availability", "error", err, "date", req.RequestedDate)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to check availability")
	}
	if !containsSlot(available, req.RequestedSlot) {
		return c.JSON(http.StatusConflict, map[string]any{
			"error":           "Slot is no longer available",
			"available_slots": available,
		})
	}

	booking, err := h.store.Queries.CreateBooking(ctx, storage.CreateBookingParams{
		ID:             ulid.Make().String(),
		CustomerName:   req.CustomerName,
		Email:          req.Email,
		Phone:          sql.NullString{String: req.Phone, Valid: req.Phone != ""},
		Package:        req.Package,
		SkillLevel:     sql.NullString{String: req.SkillLevel, Valid: req.SkillLevel != ""},
		RequestedDate:  req.RequestedDate,
		RequestedSlot:  req.RequestedSlot,
		Notes:          sql.NullString{String: req.Notes, Valid: req.Notes != ""},
		RecaptchaScore: score,
	})
	if err != nil {
		slog.Error("failed to save booking", "error", err, "email", req.Email)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save booking")
	}

	// Side channels are best effort once the booking row exists.
	if h.sheet != nil {
		if err := h.sheet.AppendBooking(ctx, gsuite.BookingRow{
			ID:            booking.ID,
			CustomerName:  booking.CustomerName,
			Email:         booking.Email,
			Phone:         req.Phone,
			Package:       booking.Package,
			SkillLevel:    req.SkillLevel,
			RequestedDate: booking.RequestedDate,
			RequestedSlot: booking.RequestedSlot,
			Notes:         req.Notes,
		}); err != nil {
			slog.Error("failed to append booking to sheet", "error", err, "booking_id", booking.ID)
		}
	}

	data := &email.BookingData{
		ID:            booking.ID,
		CustomerName:  booking.CustomerName,
		Email:         booking.Email,
		Phone:         req.Phone,
		Package:       booking.Package,
		SkillLevel:    req.SkillLevel,
		RequestedDate: booking.RequestedDate,
		RequestedSlot: booking.RequestedSlot,
		Notes:         req.Notes,
	}
	if err := h.emailService.SendBookingConfirmation(ctx, data); err != nil {
		slog.Error("failed to send booking confirmation", "error", err, "booking_id", booking.ID)
	}
	if err := h.emailService.SendBookingNotificationToAdmin(ctx, data); err != nil {
		slog.Error("failed to send booking admin notification", "error", err, "booking_id", booking.ID)
	}

	slog.Info("booking created", "booking_id", booking.ID, "date", booking.RequestedDate, "slot", booking.RequestedSlot)
	return c.JSON(http.StatusCreated, map[string]any{
		"id":     booking.ID,
		"status": booking.Status,
	})
}

// HandleListSlots handles GET /api/bookings/slots?date=YYYY-MM-DD
func (h *BookingHandler) HandleListSlots(c echo.Context) error {
	ctx := c.Request().Context()

	date := c.QueryParam("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid or missing date, expected YYYY-MM-DD")
	}

	available, err := h.availableSlots(ctx, date)
	if err != nil {
		slog.Error("failed to compute availability", "error", err, "date", date)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to check availability")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"date":  date,
		"slots": available,
	})
}

// availableSlots is the fixed slot list minus booked slots and slots
// overlapping the coach's calendar.
func (h *BookingHandler) availableSlots(ctx context.Context, date string) ([]string, error) {
	bookings, err := h.store.Queries.ListBookingsByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	taken := make(map[string]bool, len(bookings))
	for _, b := range bookings {
		taken[b.RequestedSlot] = true
	}

	var busy []gsuite.BusyWindow
	if h.calendar != nil {
		day, err := time.ParseInLocation("2006-01-02", date, h.location)
		if err != nil {
			return nil, err
		}
		busy, err = h.calendar.BusyWindows(ctx, day, day.Add(24*time.Hour))
		if err != nil {
			return nil, err
		}
	}

	available := make([]string, 0, len(sessionSlots))
	for _, slot := range sessionSlots {
		if taken[slot] {
			continue
		}
		start, err := time.ParseInLocation("2006-01-02 15:04", date+" "+slot, h.location)
		if err != nil {
			return nil, err
		}
		if gsuite.Overlaps(busy, start, start.Add(sessionDuration)) {
			continue
		}
		available = append(available, slot)
	}
	return available, nil
}

func validSlot(slot string) bool {
	return containsSlot(sessionSlots, slot)
}

func containsSlot(slots []string, slot string) bool {
	for _, s := range slots {
		if s == slot {
			return true
		}
	}
	return false
}
