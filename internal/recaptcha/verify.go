package recaptcha

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultEndpoint = "https://www.google.com/recaptcha/api/siteverify"

const DefaultMinScore = 0.5

type VerifyResponse struct {
	Success     bool     `json:"success"`
	Score       float64  `json:"score"`
	Action      string   `json:"action"`
	ChallengeTS string   `json:"challenge_ts"`
	Hostname    string   `json:"hostname"`
	ErrorCodes  []string `json:"error-codes"`
}

// Verifier checks reCAPTCHA v3 tokens against the siteverify endpoint.
type Verifier struct {
	secretKey  string
	endpoint   string
	minScore   float64
	httpClient *http.Client
}

func NewVerifier(secretKey string, minScore float64) *Verifier {
	if minScore <= 0 {
		minScore = DefaultMinScore
	}
	return &Verifier{
		secretKey: secretKey,
		endpoint:  DefaultEndpoint,
		minScore:  minScore,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (v *Verifier) IsConfigured() bool {
	return v.secretKey != ""
}

func (v *Verifier) Verify(ctx context.Context, token string) (*VerifyResponse, error) {
	if v.secretKey == "" {
		return nil, fmt.Errorf("recaptcha secret key not set")
	}

	form := url.Values{
		"secret":   {v.secretKey},
		"response": {token},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result VerifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode siteverify response: %w", err)
	}
	return &result, nil
}

// IsValid reports whether the token passed verification and cleared the
// configured minimum score.
func (v *Verifier) IsValid(ctx context.Context, token string) (bool, float64, error) {
	result, err := v.Verify(ctx, token)
	if err != nil {
		return false, 0, err
	}
	if !result.Success {
		return false, result.Score, fmt.Errorf("recaptcha verification failed: %v", result.ErrorCodes)
	}
	return result.Score >= v.minScore, result.Score, nil
}
