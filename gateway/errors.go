package gateway

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSignature marks a callback whose signature did not verify.
	ErrInvalidSignature = errors.New("invalid gateway signature")
	// ErrOrderNotFound marks a callback whose transaction reference matches
	// no known order.
	ErrOrderNotFound = errors.New("no order for transaction reference")
)

// responseCodeReasons describes the gateway's documented non-success codes.
var responseCodeReasons = map[string]string{
	"07": "Suspected fraud, transaction held",
	"09": "Card not registered for online banking",
	"10": "Card details failed verification more than 3 times",
	"11": "Payment window expired",
	"12": "Card or account locked",
	"13": "Wrong one-time password",
	"24": "Customer cancelled the transaction",
	"51": "Insufficient funds",
	"65": "Daily transaction limit exceeded",
	"75": "Issuing bank under maintenance",
	"79": "Wrong payment password entered too many times",
	"99": "Unspecified gateway error",
}

// FailureReason renders the stored failure reason for a non-success response
// code. The raw code is always embedded so unknown codes stay diagnosable.
func FailureReason(code string) string {
	if desc, ok := responseCodeReasons[code]; ok {
		return fmt.Sprintf("%s (gateway code %s)", desc, code)
	}
	return fmt.Sprintf("Payment rejected by gateway (gateway code %s)", code)
}
