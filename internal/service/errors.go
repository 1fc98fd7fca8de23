package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")

	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrTokenCreationFailed     = errors.New("token creation failed")

	ErrImageUploadFailed = errors.New("profile picture upload failed")
	ErrUnknownMediaURL   = errors.New("media URL does not belong to the configured store")

	ErrPaymentOrderFailed      = errors.New("payment order creation failed")
	ErrPaymentSignatureInvalid = errors.New("payment signature verification failed")

	ErrMailDeliveryFailed = errors.New("mail delivery failed")

	ErrExportFailed = errors.New("document export failed")
)
