package handlers

import (
	"log/slog"
	"net/http"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/colemanmx/coleman-mx/internal/stripe"
)

type CheckoutHandler struct {
	stripeService *stripe.StripeService
	validate      *validator.Validate
}

func NewCheckoutHandler(stripeService *stripe.StripeService) *CheckoutHandler {
	return &CheckoutHandler{
		stripeService: stripeService,
		validate:      validator.New(),
	}
}

type CheckoutRequestBody struct {
	PackageID string `json:"package_id" validate:"required"`
	Email     string `json:"email" validate:"omitempty,email"`
	BookingID string `json:"booking_id" validate:"omitempty,max=40"`
}

// HandleCreateCheckoutSession handles POST /api/checkout/session
func (h *CheckoutHandler) HandleCreateCheckoutSession(c echo.Context) error {
	if h.stripeService == nil || !h.stripeService.IsConfigured() {
		return echo.NewHTTPError(http.StatusInternalServerError, "Payments are not configured")
	}

	var req CheckoutRequestBody
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"error":   "Validation failed",
			"details": err.Error(),
		})
	}
	if _, ok := stripe.CoachingPackages[req.PackageID]; !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown coaching package")
	}

	sess, err := h.stripeService.CreateCheckoutSession(req.PackageID, req.Email, req.BookingID)
	if err != nil {
		slog.Error("failed to create checkout session", "error", err, "package_id", req.PackageID)
		return echo.NewHTTPError(http.StatusBadGateway, "Failed to create checkout session")
	}

	slog.Info("checkout session created", "session_id", sess.ID, "package_id", req.PackageID)
	return c.JSON(http.StatusOK, map[string]any{
		"session_id": sess.ID,
		"url":        sess.URL,
	})
}

// HandleListCoachingPackages handles GET /api/checkout/packages
func (h *CheckoutHandler) HandleListCoachingPackages(c echo.Context) error {
	packages := make([]stripe.CoachingPackage, 0, len(stripe.CoachingPackages))
	for _, pkg := range stripe.CoachingPackages {
		packages = append(packages, pkg)
	}
	sort.Slice(packages, func(i, j int) bool { return packages[i].AmountCents > packages[j].AmountCents })
	return c.JSON(http.StatusOK, map[string]any{"packages": packages})
}
