package domain

import "errors"

var (
	// ErrOrderNotFound ...
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderAlreadyTaken is returned by the taken-status guard. It marks a
	// normal business rejection, not a fault.
	ErrOrderAlreadyTaken = errors.New("order already taken")
	// ErrOrderNotTaken is returned when releasing an order that is not Taken.
	ErrOrderNotTaken = errors.New("order is not taken")
	// ErrInvalidOrderHash ...
	ErrInvalidOrderHash = errors.New("order hash must be a non-empty string")

	// ErrOrderMissingHash ...
	ErrOrderMissingHash = errors.New("order is missing the p2wdb hash")
	// ErrOrderInvalidTxid ...
	ErrOrderInvalidTxid = errors.New("order utxo txid is not a valid transaction hash")
	// ErrOrderInvalidVout ...
	ErrOrderInvalidVout = errors.New("order utxo vout must be a non-negative integer")
	// ErrOrderInvalidType ...
	ErrOrderInvalidType = errors.New("order type must be either sell or buy")
	// ErrOrderInvalidNumTokens ...
	ErrOrderInvalidNumTokens = errors.New("order numTokens must be a positive integer")
	// ErrOrderInvalidRate ...
	ErrOrderInvalidRate = errors.New("order rateInSats must be a positive integer")
	// ErrOrderInvalidAmount ...
	ErrOrderInvalidAmount = errors.New("amount must be a non-negative integer")
)

// ValidationErrors groups the rejections raised while parsing an inbound
// order payload or a lookup argument. The transport maps them to client
// errors, they are never retried.
var ValidationErrors = []error{
	ErrInvalidOrderHash,
	ErrOrderMissingHash,
	ErrOrderInvalidTxid,
	ErrOrderInvalidVout,
	ErrOrderInvalidType,
	ErrOrderInvalidNumTokens,
	ErrOrderInvalidRate,
	ErrOrderInvalidAmount,
}

// IsValidationError returns whether err is one of the validation rejections.
func IsValidationError(err error) bool {
	for _, target := range ValidationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
