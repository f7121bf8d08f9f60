package service

import (
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/paymentintent"
	"go.uber.org/zap"
)

// PaymentService creates payment intents with the external gateway. The
// order core never reads payment state back; completion happens client-side
// against the returned client secret.
type PaymentService interface {
	CreatePaymentIntent(amount float64) (string, error)
}

type paymentService struct {
	log *zap.Logger
}

func NewPaymentService(secretKey string, log *zap.Logger) PaymentService {
	stripe.Key = secretKey
	return &paymentService{log: log}
}

func (s *paymentService) CreatePaymentIntent(amount float64) (string, error) {
	if amount <= 0 {
		return "", fmt.Errorf("%w: amount must be positive", ErrValidation)
	}

	params := &stripe.PaymentIntentParams{
		// Gateway expects the amount in cents
		Amount:   stripe.Int64(int64(math.Round(amount * 100))),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	pi, err := paymentintent.New(params)
	if err != nil {
		s.log.Error("payment intent creation failed", zap.Error(err))
		return "", err
	}
	return pi.ClientSecret, nil
}
