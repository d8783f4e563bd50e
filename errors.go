// Copyright 2020 Aleksandr Demakin. All rights reserved.

package bigvalue

import "github.com/zeebo/errs"

var (
	// Error is the class of generic failures.
	Error = errs.Class("bigvalue")
	// InvalidInput is the class of errors caused by short or malformed input,
	// like a byte span shorter than its format requires.
	InvalidInput = errs.Class("invalid input")
	// NonFinite is the class of errors returned when an infinity or a NaN
	// can't take part in an operation.
	NonFinite = errs.Class("non-finite value")
)
