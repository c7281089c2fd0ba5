package domain

import "errors"

// ErrInvalidInput is returned for out-of-range numeric arguments: negative
// money, negative rates, non-positive durations, NaN or infinities.
var ErrInvalidInput = errors.New("invalid input")
