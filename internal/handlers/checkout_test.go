package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colemanmx/coleman-mx/internal/stripe"
)

func TestCreateCheckoutSessionUnconfigured(t *testing.T) {
	t.Setenv("STRIPE_SECRET_KEY", "")
	h := NewCheckoutHandler(stripe.NewStripeService("https://colemanmx.com/thanks", "https://colemanmx.com/coaching"))

	rec, _ := submitJSON(h.HandleCreateCheckoutSession, http.MethodPost, "/api/checkout/session", `{"package_id":"private-2h"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCreateCheckoutSessionValidation(t *testing.T) {
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_placeholder")
	h := NewCheckoutHandler(stripe.NewStripeService("https://colemanmx.com/thanks", "https://colemanmx.com/coaching"))

	tests := []struct {
		name string
		body string
	}{
		{"missing package", `{}`},
		{"unknown package", `{"package_id":"full-season"}`},
		{"bad email", `{"package_id":"private-2h","email":"nope"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := submitJSON(h.HandleCreateCheckoutSession, http.MethodPost, "/api/checkout/session", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestListCoachingPackages(t *testing.T) {
	h := NewCheckoutHandler(nil)

	rec, _ := submitJSON(h.HandleListCoachingPackages, http.MethodGet, "/api/checkout/packages", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Packages []stripe.CoachingPackage `json:"packages"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Packages, 3)
	// Sorted by price, most expensive first.
	assert.Equal(t, "private-2h", resp.Packages[0].ID)
	assert.Equal(t, "group-clinic", resp.Packages[2].ID)
	for _, pkg := range resp.Packages {
		assert.Positive(t, pkg.AmountCents)
		assert.NotEmpty(t, pkg.Name)
	}
}
