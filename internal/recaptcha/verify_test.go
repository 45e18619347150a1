package recaptcha

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testVerifier(t *testing.T, response VerifyResponse) *Verifier {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "secret-key", r.FormValue("secret"))
		assert.Equal(t, "tok", r.FormValue("response"))
		json.NewEncoder(w).Encode(response)
	}))
	t.Cleanup(srv.Close)

	v := NewVerifier("secret-key", 0.5)
	v.endpoint = srv.URL
	return v
}

func TestIsValidAboveThreshold(t *testing.T) {
	v := testVerifier(t, VerifyResponse{Success: true, Score: 0.9})

	ok, score, err := v.IsValid(context.Background(), "tok")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0.9, score)
}

func TestIsValidBelowThreshold(t *testing.T) {
	v := testVerifier(t, VerifyResponse{Success: true, Score: 0.2})

	ok, score, err := v.IsValid(context.Background(), "tok")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0.2, score)
}

func TestIsValidVerificationFailure(t *testing.T) {
	v := testVerifier(t, VerifyResponse{Success: false, ErrorCodes: []string{"invalid-input-response"}})

	ok, _, err := v.IsValid(context.Background(), "tok")
	assert.False(t, ok)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid-input-response")
}

func TestVerifierUnconfigured(t *testing.T) {
	v := NewVerifier("", 0)
	assert.False(t, v.IsConfigured())
	_, err := v.Verify(context.Background(), "tok")
	require.Error(t, err)
}
