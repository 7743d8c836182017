package crypto

import (
	"golang.org/x/text/encoding"
)

// Engine is the capability consumed from the platform RSA provider. An engine owns
// the key material of exactly one key pair or public key for its whole lifetime;
// implementations must be safe for concurrent use since no call mutates the key.
type Engine interface {
	// Encrypt encrypts plaintext with the public key using the provider's default padding.
	// It returns the ciphertext or an error if encryption fails.
	Encrypt(plainText []byte) ([]byte, error)

	// Decrypt decrypts ciphertext with the private key using the provider's default padding.
	// It fails if the engine holds no private material.
	Decrypt(cipherText []byte) ([]byte, error)

	// Sign signs data with the private key using the given digest algorithm.
	// It returns the raw signature bytes, whose length equals the key's modulus size.
	Sign(data []byte, digest DigestAlgorithm) ([]byte, error)

	// Verify checks a signature over data under the given digest algorithm and the
	// public key. Any signature that does not verify, including a structurally
	// malformed one, is reported as (false, nil) rather than an error.
	Verify(data []byte, digest DigestAlgorithm, signature []byte) (bool, error)

	// Export serializes the key material as a PEM blob. The private component is
	// included iff includePrivate is set and the engine holds private material.
	Export(includePrivate bool) ([]byte, error)

	// IsPublicOnly reports whether the engine holds only public key material.
	IsPublicOnly() bool
}

// KeyedCipher binds an RSA key's role (public-only vs private-capable) to the
// operations it may legally perform. Decrypt and Sign require the private
// component and fail with ErrUnauthorized before any engine call otherwise;
// Encrypt, Verify and Export are legal on any handle.
type KeyedCipher interface {
	// Encrypt encrypts data with the handle's public key.
	Encrypt(data []byte) ([]byte, error)

	// Decrypt decrypts data with the handle's private key.
	// It returns ErrUnauthorized if the handle is public-only.
	Decrypt(data []byte) ([]byte, error)

	// EncryptText encodes text with the given text encoding (UTF-8 when enc is nil),
	// encrypts the bytes and returns the ciphertext as a Base64 string.
	EncryptText(text string, enc encoding.Encoding) (string, error)

	// DecryptText decodes a Base64 ciphertext string, decrypts it and decodes the
	// plaintext bytes with the given text encoding (UTF-8 when enc is nil).
	// It returns ErrInvalidArgument if the input is not valid Base64 and
	// ErrUnauthorized if the handle is public-only.
	DecryptText(cipherText string, enc encoding.Encoding) (string, error)

	// Sign signs data using the given digest algorithm (SHA-256 when empty).
	// It returns ErrUnauthorized if the handle is public-only.
	Sign(data []byte, digest DigestAlgorithm) ([]byte, error)

	// Verify checks a signature over data using the given digest algorithm
	// (SHA-256 when empty). A signature that does not match, malformed or not,
	// yields (false, nil) rather than an error.
	Verify(data []byte, digest DigestAlgorithm, signature []byte) (bool, error)

	// Export serializes the key as a PEM blob, including the private component
	// iff the handle is private-capable.
	Export() ([]byte, error)

	// HasPrivate reports whether the handle can decrypt and sign.
	HasPrivate() bool
}
