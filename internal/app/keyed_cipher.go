package app

import (
	"fmt"

	"easy_rsa_service/internal/domain/crypto"
	"easy_rsa_service/internal/infrastructure/cryptography"
	"easy_rsa_service/internal/pkg/logger"
)

// keyedCipher implements the KeyedCipher interface. It pairs an engine handle
// with the private-capability flag fixed at construction and checks that flag
// before any engine call that needs private material.
type keyedCipher struct {
	engine     crypto.Engine
	hasPrivate bool
	logger     logger.Logger
}

// NewKeyedCipher creates a keyed cipher around an already-initialized engine
// handle. The private capability is derived by querying the handle.
func NewKeyedCipher(engine crypto.Engine, logger logger.Logger) (crypto.KeyedCipher, error) {
	if engine == nil {
		return nil, fmt.Errorf("%w: engine handle cannot be nil", crypto.ErrInvalidArgument)
	}
	return &keyedCipher{
		engine:     engine,
		hasPrivate: !engine.IsPublicOnly(),
		logger:     logger,
	}, nil
}

// NewKeyedCipherFromParameters creates a keyed cipher from a structured key
// descriptor. The private capability is copied from the descriptor; structurally
// inconsistent fields fail with ErrInvalidKey.
func NewKeyedCipherFromParameters(params *crypto.KeyParameters, logger logger.Logger) (crypto.KeyedCipher, error) {
	engine, err := cryptography.NewRSAEngineFromParameters(params, logger)
	if err != nil {
		return nil, err
	}
	return &keyedCipher{
		engine:     engine,
		hasPrivate: params.HasPrivate,
		logger:     logger,
	}, nil
}

// NewKeyedCipherFromBlob creates a keyed cipher by importing an exported key
// blob. The private capability is set iff the imported material includes the
// private component; a nil or malformed blob fails with ErrInvalidKey.
func NewKeyedCipherFromBlob(blob []byte, logger logger.Logger) (crypto.KeyedCipher, error) {
	engine, err := cryptography.NewRSAEngineFromBlob(blob, logger)
	if err != nil {
		return nil, err
	}
	return &keyedCipher{
		engine:     engine,
		hasPrivate: !engine.IsPublicOnly(),
		logger:     logger,
	}, nil
}

// Encrypt encrypts data with the handle's public key. Legal on any handle.
func (c *keyedCipher) Encrypt(data []byte) ([]byte, error) {
	return c.engine.Encrypt(data)
}

// Decrypt decrypts data with the handle's private key. The capability check
// happens before any engine call.
func (c *keyedCipher) Decrypt(data []byte) ([]byte, error) {
	if !c.hasPrivate {
		return nil, fmt.Errorf("%w: cannot decrypt with a public-only key", crypto.ErrUnauthorized)
	}
	return c.engine.Decrypt(data)
}

// Sign signs data using the given digest algorithm (SHA-256 when empty).
// The capability check happens before any engine call.
func (c *keyedCipher) Sign(data []byte, digest crypto.DigestAlgorithm) ([]byte, error) {
	if !c.hasPrivate {
		return nil, fmt.Errorf("%w: cannot sign with a public-only key", crypto.ErrUnauthorized)
	}
	return c.engine.Sign(data, digest)
}

// Verify checks a signature over data using the given digest algorithm
// (SHA-256 when empty). Legal on any handle; a mismatching or malformed
// signature yields (false, nil).
func (c *keyedCipher) Verify(data []byte, digest crypto.DigestAlgorithm, signature []byte) (bool, error) {
	return c.engine.Verify(data, digest, signature)
}

// Export serializes the key as a blob, including the private component iff the
// handle is private-capable.
func (c *keyedCipher) Export() ([]byte, error) {
	return c.engine.Export(c.hasPrivate)
}

// HasPrivate reports whether the handle can decrypt and sign.
func (c *keyedCipher) HasPrivate() bool {
	return c.hasPrivate
}
