package payments

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"

	"github.com/AutoDiagCloud/LicenseHub/internal/pkg/env"
)

var ErrMissingStripeSecretKey = errors.New("missing STRIPE_SECRET_KEY")

// StripeGateway creates checkout sessions against Stripe. In mock mode (local
// development, CI) it fabricates session references without network calls.
type StripeGateway struct {
	mockMode bool
}

// NewStripeGatewayFromEnv configures the gateway from environment variables.
func NewStripeGatewayFromEnv() (*StripeGateway, error) {
	if isGatewayMockEnabled() {
		log.Info("[payments] gateway mock mode enabled")
		return &StripeGateway{mockMode: true}, nil
	}

	key := strings.TrimSpace(env.GetEnv("STRIPE_SECRET_KEY", ""))
	if key == "" {
		log.Error("[payments] missing STRIPE_SECRET_KEY")
		return nil, ErrMissingStripeSecretKey
	}
	stripe.Key = key
	return &StripeGateway{}, nil
}

// CreateCheckoutSession creates one gateway session for the order, carrying
// the order and company ids as correlation metadata.
func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, in CheckoutInput) (*CheckoutSessionRef, error) {
	if g != nil && g.mockMode {
		id := "cs_mock_" + strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
		log.Infof("[payments] mock checkout session created session_id=%s order_id=%d", id, in.OrderID)
		return &CheckoutSessionRef{
			SessionID: id,
			URL:       "https://checkout.example.test/pay/" + id,
		}, nil
	}

	currency := strings.ToLower(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = "eur"
	}

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(in.SuccessURL),
		CancelURL:  stripe.String(in.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(currency),
					UnitAmount: stripe.Int64(toMinorUnits(in.Amount)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(in.Description),
					},
				},
			},
		},
	}
	params.Context = ctx
	params.AddMetadata(MetadataOrderID, fmt.Sprintf("%d", in.OrderID))
	params.AddMetadata(MetadataCompanyID, fmt.Sprintf("%d", in.CompanyID))
	if in.OrderNumber != "" {
		params.AddMetadata("order_number", in.OrderNumber)
	}

	s, err := session.New(params)
	if err != nil {
		log.Errorf("[payments] checkout session create failed order_id=%d err=%v", in.OrderID, err)
		return nil, err
	}

	log.Infof("[payments] checkout session created session_id=%s order_id=%d", s.ID, in.OrderID)
	return &CheckoutSessionRef{SessionID: s.ID, URL: s.URL}, nil
}

// toMinorUnits converts a major-unit amount to cents.
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func isGatewayMockEnabled() bool {
	for _, key := range []string{"PAYMENT_GATEWAY_MOCK", "STRIPE_MOCK"} {
		v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
		switch v {
		case "1", "true", "yes", "on", "mock":
			return true
		}
	}
	return false
}
