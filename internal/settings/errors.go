package settings

import "errors"

var (
	// ErrUnknownKey is returned for keys that are not in the field registry.
	ErrUnknownKey = errors.New("unknown setting")
	// ErrInvalidValue is returned when a value has the wrong type or is out of range.
	ErrInvalidValue = errors.New("invalid value")
	// ErrReadOnly is returned when setting a derived field.
	ErrReadOnly = errors.New("setting is read-only")
	// ErrProfileImmutable is returned when the profile field is set to a
	// namespace other than the active one.
	ErrProfileImmutable = errors.New("profile cannot change after load")
)
