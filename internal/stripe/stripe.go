package stripe

import (
	"fmt"
	"os"

	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/checkout/session"
)

func init() {
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")
}

type StripeService struct {
	apiKey     string
	successURL string
	cancelURL  string
}

func NewStripeService(successURL, cancelURL string) *StripeService {
	return &StripeService{
		apiKey:     os.Getenv("STRIPE_SECRET_KEY"),
		successURL: successURL,
		cancelURL:  cancelURL,
	}
}

func (s *StripeService) IsConfigured() bool {
	return s.apiKey != ""
}

// CoachingPackage is a purchasable training option. Prices are in
// cents.
type CoachingPackage struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	AmountCents int64  `json:"amount_cents"`
}

// CoachingPackages are the sessions sold through checkout, keyed by ID.
var CoachingPackages = map[string]CoachingPackage{
	"private-2h": {
		ID:          "private-2h",
		Name:        "Private Coaching Session",
		Description: "Two hours of one-on-one motocross coaching",
		AmountCents: 20000,
	},
	"semi-private-2h": {
		ID:          "semi-private-2h",
		Name:        "Semi-Private Session (2 riders)",
		Description: "Two hour session shared between two riders",
		AmountCents: 15000,
	},
	"group-clinic": {
		ID:          "group-clinic",
		Name:        "Group Riding Clinic",
		Description: "Half-day group clinic, all skill levels welcome",
		AmountCents: 9500,
	},
}

// CreateCheckoutSession starts a Stripe Checkout session for one
// coaching package.
func (s *StripeService) CreateCheckoutSession(packageID, customerEmail, bookingID string) (*stripe.CheckoutSession, error) {
	pkg, ok := CoachingPackages[packageID]
	if !ok {
		return nil, fmt.Errorf("unknown coaching package: %s", packageID)
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(s.successURL),
		CancelURL:  stripe.String(s.cancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(string(stripe.CurrencyUSD)),
					UnitAmount: stripe.Int64(pkg.AmountCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(pkg.Name),
						Description: stripe.String(pkg.Description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	if customerEmail != "" {
		params.CustomerEmail = stripe.String(customerEmail)
	}
	params.AddMetadata("package_id", pkg.ID)
	if bookingID != "" {
		params.AddMetadata("booking_id", bookingID)
	}

	return session.New(params)
}
