package router

import "errors"

var (
	ErrNoPools            = errors.New("pool list is empty")
	ErrDuplicatePool      = errors.New("duplicate pool uid")
	ErrNoRoutesFound      = errors.New("no routes found for this coin pair")
	ErrUnableToFindRoute  = errors.New("unable to find route")
	ErrExternalFeeTooHigh = errors.New("external fee percentage out of range")
	ErrSameCoin           = errors.New("coin in and coin out must differ")
	ErrInvalidAmount      = errors.New("trade amount must be positive")
	ErrInvalidRouteLength = errors.New("max route length must be at least 1")
	ErrInvalidConfig      = errors.New("invalid router config")
)
