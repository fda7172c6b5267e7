package event

import "errors"

var (
	// ErrMalformedEvent marks a payload that cannot be decoded or carries no
	// usable review id. Such messages are acknowledged and dropped.
	ErrMalformedEvent = errors.New("malformed event")

	// ErrUnsupportedEvent marks a well-formed payload of an unknown type.
	ErrUnsupportedEvent = errors.New("unsupported event")
)
