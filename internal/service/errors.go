package service

import "errors"

var (
	ErrEmptyWallet      = errors.New("wallet has no assets")
	ErrNoPriceData      = errors.New("no price data available")
	ErrZeroInitialValue = errors.New("initial value must be non-zero")
)
