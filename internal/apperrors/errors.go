package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates that the caller could not be authenticated.
var ErrUnauthorized = errors.New("unauthorized")

// ErrInvalidAmount indicates a monetary amount that is negative or not a finite number.
var ErrInvalidAmount = errors.New("invalid monetary amount")

// ErrCurrencyMismatch indicates an arithmetic or comparison operation between
// two monetary values with different currency codes.
var ErrCurrencyMismatch = errors.New("currency mismatch")

// ErrNegativeResult indicates a monetary subtraction whose result would be negative.
var ErrNegativeResult = errors.New("operation would result in negative amount")

// ErrInvalidPeriod indicates an inverted or incomplete date range.
var ErrInvalidPeriod = errors.New("invalid period")

// ErrIllegalTransition indicates a state transition that is not allowed from the
// entity's current status (e.g. cancelling a paid transaction).
var ErrIllegalTransition = errors.New("illegal state transition")

// ErrAlreadyClosed indicates an attempt to close a cash register that is already closed.
var ErrAlreadyClosed = errors.New("cash register already closed")

// ErrFuturePaymentDate indicates a payment date that lies in the future.
var ErrFuturePaymentDate = errors.New("payment date cannot be in the future")

// ErrRegisterAlreadyOpen indicates that the clinic already has an open cash register.
var ErrRegisterAlreadyOpen = errors.New("an open cash register already exists for this clinic")
