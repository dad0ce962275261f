package domain

import "errors"

var ErrPaymentVerification = errors.New("payment verification failed")
var ErrUpstreamFailure = errors.New("upstream collaborator failure")

// PaymentOrder is an order registered with the external payment gateway.
// Amount is in the currency's minor unit.
type PaymentOrder struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}
