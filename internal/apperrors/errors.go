package apperrors

import "errors"

// ErrInvalidRequest indicates missing or malformed transfer data.
var ErrInvalidRequest = errors.New("invalid transfer data")

// ErrSelfTransfer indicates the source and destination account are the same.
var ErrSelfTransfer = errors.New("cannot transfer to the same account")

// ErrNotFound indicates that a referenced account or transaction does not exist.
var ErrNotFound = errors.New("resource not found")

// ErrInsufficientFunds indicates the source balance does not cover the amount.
var ErrInsufficientFunds = errors.New("insufficient balance")
