package model

import "errors"

var (
	// InsufficientDataErr is returned when there are not enough rows for the requested clustering.
	InsufficientDataErr = errors.New("insufficient data")
	// UnsupportedMethodErr is returned for an unknown clustering method.
	UnsupportedMethodErr = errors.New("unsupported method")
	// ShapeMismatchErr is returned when identifiers, rows and labels do not line up.
	ShapeMismatchErr = errors.New("shape mismatch")
	// InvalidConfigErr is returned when a parameter of the chosen method is out of range.
	InvalidConfigErr = errors.New("invalid configuration")
	// InvalidDataErr is returned for ragged matrices or non-finite values.
	InvalidDataErr = errors.New("invalid data")
)
