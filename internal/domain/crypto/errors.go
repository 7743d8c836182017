package crypto

import "errors"

// Sentinel errors returned by keyed cipher construction and operations.
// Call sites wrap these with fmt.Errorf and %w so errors.Is keeps working
// while the message carries context.
var (
	// ErrInvalidKey indicates construction from malformed key parameters or a
	// nil/malformed key blob.
	ErrInvalidKey = errors.New("invalid key")

	// ErrInvalidArgument indicates a nil engine handle or otherwise unusable input,
	// such as non-Base64 ciphertext text.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnauthorized indicates an attempt to decrypt or sign with a handle that
	// lacks the private key component.
	ErrUnauthorized = errors.New("unauthorized")
)
