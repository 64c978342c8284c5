package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyID          = errors.New("item ID cannot be empty")
	ErrInvalidKind      = errors.New("invalid item kind")
	ErrEmptyPayload     = errors.New("item payload cannot be empty")
	ErrMalformedPayload = errors.New("record payload is not valid JSON")
)
