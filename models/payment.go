package models

// CreateOrderRequest is the payload of POST /api/payment/create-order.
// Amount is expressed in whole currency units (INR); the gateway receives
// it multiplied into paise.
type CreateOrderRequest struct {
	Amount int64 `json:"amount" validate:"required,gt=0"`
}

// VerifyPaymentRequest is the payload of POST /api/payment/verify-payment.
// The signature is the gateway-computed HMAC-SHA256 over
// "<order_id>|<payment_id>".
type VerifyPaymentRequest struct {
	OrderID   string `json:"razorpay_order_id" validate:"required"`
	PaymentID string `json:"razorpay_payment_id" validate:"required"`
	Signature string `json:"razorpay_signature" validate:"required"`
}
