package service

import "errors"

var (
	ErrValidation        = errors.New("validation")        // 400
	ErrInvalidAddress    = errors.New("invalid address")   // 400
	ErrNotFound          = errors.New("not found")         // 404
	ErrConflict          = errors.New("conflict")          // 409
	ErrInsufficientStock = errors.New("insufficient stock") // 409
	ErrInvalidOperation  = errors.New("invalid operation")  // 409
	ErrGatewayFailure    = errors.New("payment gateway failure") // 502
)
