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
	"github.com/colemanmx/coleman-mx/storage"
)

// captchaVerifier is what the form handlers need from reCAPTCHA.
// Satisfied by *recaptcha.Verifier.
type captchaVerifier interface {
	IsConfigured() bool
	IsValid(ctx context.Context, token string) (bool, float64, error)
}

type ContactHandler struct {
	store        *storage.Storage
	emailService *email.Service
	verifier     captchaVerifier
	validate     *validator.Validate
}

func NewContactHandler(store *storage.Storage, emailService *email.Service, verifier captchaVerifier) *ContactHandler {
	return &ContactHandler{
		store:        store,
		emailService: emailService,
		verifier:     verifier,
		validate:     validator.New(),
	}
}

type ContactRequestBody struct {
	FirstName      string `json:"first_name" validate:"required,max=100"`
	LastName       string `json:"last_name" validate:"required,max=100"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"omitempty,max=30"`
	Subject        string `json:"subject" validate:"required,max=200"`
	Message        string `json:"message" validate:"required,max=5000"`
	RecaptchaToken string `json:"recaptcha_token"`
}

// HandleSubmitContact handles POST /api/contact
func (h *ContactHandler) HandleSubmitContact(c echo.Context) error {
	ctx := c.Request().Context()

	var req ContactRequestBody
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":   "Validation failed",
			"details": err.Error(),
		})
	}

	score, ok := h.checkCaptcha(ctx, req.RecaptchaToken)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "reCAPTCHA verification failed")
	}

	created, err := h.store.Queries.CreateContactRequest(ctx, storage.CreateContactRequestParams{
		ID:             ulid.Make().String(),
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          sql.NullString{String: req.Phone, Valid: req.Phone != ""},
		Subject:        req.Subject,
		Message:        req.Message,
		RecaptchaScore: score,
		IPAddress:      sql.NullString{String: c.RealIP(), Valid: c.RealIP() != ""},
		UserAgent:      sql.NullString{String: c.Request().UserAgent(), Valid: c.Request().UserAgent() != ""},
	})
	if err != nil {
		slog.Error("failed to save contact request", "error", err, "email", req.Email)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save contact request")
	}

	// The request is saved; a notification failure shouldn't lose it.
	if err := h.emailService.SendContactRequestNotification(ctx, &email.ContactRequestData{
		ID:          created.ID,
		FirstName:   created.FirstName,
		LastName:    created.LastName,
		Email:       created.Email,
		Phone:       req.Phone,
		Subject:     created.Subject,
		Message:     created.Message,
		SubmittedAt: created.CreatedAt.Format(time.RFC1123),
	}); err != nil {
		slog.Error("failed to send contact notification", "error", err, "contact_id", created.ID)
	}

	slog.Info("contact request received", "contact_id", created.ID, "subject", created.Subject)
	return c.JSON(http.StatusCreated, map[string]any{"id": created.ID})
}

// checkCaptcha returns the stored score and whether the request may
// proceed. An unconfigured verifier admits everything (dev setups).
func (h *ContactHandler) checkCaptcha(ctx context.Context, token string) (sql.NullFloat64, bool) {
	return verifyCaptcha(ctx, h.verifier, token)
}

func verifyCaptcha(ctx context.Context, verifier captchaVerifier, token string) (sql.NullFloat64, bool) {
	if verifier == nil || !verifier.IsConfigured() {
		return sql.NullFloat64{}, true
	}
	ok, score, err := verifier.IsValid(ctx, token)
	if err != nil {
		slog.Warn("recaptcha verification errored", "error", err)
		return sql.NullFloat64{}, false
	}
	if !ok {
		slog.Warn("recaptcha score below threshold", "score", score)
	}
	return sql.NullFloat64{Float64: score, Valid: true}, ok
}
