package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studenthive/student-keeper/internal/logger"
	"github.com/studenthive/student-keeper/internal/utils"
	"github.com/studenthive/student-keeper/models"
)

type fakeOrderCreator struct {
	lastData map[string]interface{}
	order    map[string]interface{}
	err      error
}

func (f *fakeOrderCreator) Create(data map[string]interface{}, _ map[string]string) (map[string]interface{}, error) {
	f.lastData = data
	if f.err != nil {
		return nil, f.err
	}
	return f.order, nil
}

func newTestPaymentService(orders *fakeOrderCreator) *paymentService {
	return &paymentService{
		orders:    orders,
		keyID:     "rzp_test_key",
		keySecret: "rzp_test_secret",
		logger:    logger.Nop(),
	}
}

func TestCreateOrder_ConvertsRupeesToPaise(t *testing.T) {
	orders := &fakeOrderCreator{order: map[string]interface{}{"id": "order_123"}}
	svc := newTestPaymentService(orders)

	order, err := svc.CreateOrder(context.Background(), models.CreateOrderRequest{Amount: 500})
	require.NoError(t, err)

	assert.Equal(t, int64(50000), orders.lastData["amount"])
	assert.Equal(t, "INR", orders.lastData["currency"])

	receipt, ok := orders.lastData["receipt"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(receipt, "rcpt_"))

	assert.Equal(t, "order_123", order["id"])
	assert.Equal(t, "rzp_test_key", order["key_id"], "checkout needs the public key id alongside the order")
}

func TestCreateOrder_RejectsNonPositiveAmount(t *testing.T) {
	svc := newTestPaymentService(&fakeOrderCreator{})

	_, err := svc.CreateOrder(context.Background(), models.CreateOrderRequest{Amount: 0})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.CreateOrder(context.Background(), models.CreateOrderRequest{Amount: -10})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestCreateOrder_GatewayFailure(t *testing.T) {
	orders := &fakeOrderCreator{err: errors.New("gateway timeout")}
	svc := newTestPaymentService(orders)

	_, err := svc.CreateOrder(context.Background(), models.CreateOrderRequest{Amount: 500})
	assert.ErrorIs(t, err, ErrPaymentOrderFailed)
}

func TestVerifyPayment_ValidSignature(t *testing.T) {
	svc := newTestPaymentService(&fakeOrderCreator{})

	request := models.VerifyPaymentRequest{
		OrderID:   "order_123",
		PaymentID: "pay_456",
	}
	request.Signature = utils.HashString(request.OrderID+"|"+request.PaymentID, "rzp_test_secret")

	require.NoError(t, svc.VerifyPayment(context.Background(), request))
}

func TestVerifyPayment_InvalidSignature(t *testing.T) {
	svc := newTestPaymentService(&fakeOrderCreator{})

	err := svc.VerifyPayment(context.Background(), models.VerifyPaymentRequest{
		OrderID:   "order_123",
		PaymentID: "pay_456",
		Signature: "deadbeef",
	})
	assert.ErrorIs(t, err, ErrPaymentSignatureInvalid)
}

func TestVerifyPayment_MissingFields(t *testing.T) {
	svc := newTestPaymentService(&fakeOrderCreator{})

	err := svc.VerifyPayment(context.Background(), models.VerifyPaymentRequest{OrderID: "order_123"})
	assert.ErrorIs(t, err, ErrInvalidDataProvided)
}
