package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	razorpay "github.com/razorpay/razorpay-go"

	"github.com/studenthive/student-keeper/internal/config"
	"github.com/studenthive/student-keeper/internal/logger"
	"github.com/studenthive/student-keeper/internal/utils"
	"github.com/studenthive/student-keeper/models"
)

// orderCreator is the slice of the Razorpay SDK the payment service uses.
type orderCreator interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

// paymentService passes orders through to Razorpay and verifies checkout
// callbacks with the shared key secret.
type paymentService struct {
	orders    orderCreator
	keyID     string
	keySecret string
	logger    *logger.Logger
}

// NewPaymentService constructs a PaymentService talking to Razorpay with
// the configured key pair.
func NewPaymentService(cfg config.Payment, logger *logger.Logger) PaymentService {
	client := razorpay.NewClient(cfg.KeyID, cfg.KeySecret)
	return &paymentService{
		orders:    client.Order,
		keyID:     cfg.KeyID,
		keySecret: cfg.KeySecret,
		logger:    logger,
	}
}

// CreateOrder registers an order with the gateway. The request amount is
// in rupees; the gateway expects paise.
func (p *paymentService) CreateOrder(ctx context.Context, request models.CreateOrderRequest) (map[string]interface{}, error) {
	log := logger.FromContext(ctx)

	if request.Amount <= 0 {
		return nil, ErrInvalidDataProvided
	}

	order, err := p.orders.Create(map[string]interface{}{
		"amount":   request.Amount * 100,
		"currency": "INR",
		"receipt":  "rcpt_" + uuid.NewString(),
	}, nil)
	if err != nil {
		log.Err(err).Int64("amount", request.Amount).Msg("payment order creation ended with error")
		return nil, fmt.Errorf("%w: %w", ErrPaymentOrderFailed, err)
	}

	// the checkout widget needs the public key id alongside the order
	order["key_id"] = p.keyID

	return order, nil
}

// VerifyPayment recomputes the checkout signature, HMAC-SHA256 over
// "<order_id>|<payment_id>" keyed with the key secret, and compares it in
// constant time against the one the gateway sent.
func (p *paymentService) VerifyPayment(ctx context.Context, request models.VerifyPaymentRequest) error {
	log := logger.FromContext(ctx)

	if request.OrderID == "" || request.PaymentID == "" || request.Signature == "" {
		return ErrInvalidDataProvided
	}

	expected := utils.HashString(request.OrderID+"|"+request.PaymentID, p.keySecret)
	if !utils.HashEqual(expected, request.Signature) {
		log.Error().Str("orderID", request.OrderID).Str("paymentID", request.PaymentID).Msg("payment signature mismatch")
		return ErrPaymentSignatureInvalid
	}

	return nil
}
