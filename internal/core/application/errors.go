package application

import "errors"

var (
	// ErrStaleOrder is returned when the utxo backing an order is no longer
	// part of the utxo set. A normal rejection, the advertiser spent or
	// recycled the output since posting.
	ErrStaleOrder = errors.New("order utxo does not exist")
	// ErrInsufficientFunds is returned when the local wallet cannot pay for a
	// write to the write database or cannot cover the advertised trade.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrUnsupportedOrderType is returned when attempting to take a buy
	// order. Buy-side fills are recognized but not implemented.
	ErrUnsupportedOrderType = errors.New("taking buy orders is not supported")
	// ErrServiceUnavailable is the error returned in case of internal errors
	// or unreachable collaborators. Callers may retry.
	ErrServiceUnavailable = errors.New("service is unavailable, try again later")
)
