package cryptography

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"math/big"

	cryptoDomain "easy_rsa_service/internal/domain/crypto"
	"easy_rsa_service/internal/pkg/logger"
)

// PEM block types understood by blob import and produced by blob export.
const (
	pemTypePrivateKeyPKCS1 = "RSA PRIVATE KEY"
	pemTypePrivateKeyPKCS8 = "PRIVATE KEY"
	pemTypePublicKeyPKIX   = "PUBLIC KEY"
	pemTypePublicKeyPKCS1  = "RSA PUBLIC KEY"
)

// pkcs1PaddingOverhead is the per-chunk overhead of PKCS#1 v1.5 encryption padding.
const pkcs1PaddingOverhead = 11

// rsaEngine implements the Engine interface over the platform RSA provider.
// privateKey is nil for public-only engines; publicKey is always set.
type rsaEngine struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	logger     logger.Logger
}

// NewRSAEngine creates an engine around already-initialized platform key material.
// When privateKey is set the engine is private-capable and publicKey may be nil;
// otherwise publicKey must be set and the engine is public-only.
func NewRSAEngine(privateKey *rsa.PrivateKey, publicKey *rsa.PublicKey, logger logger.Logger) (cryptoDomain.Engine, error) {
	if privateKey != nil {
		return &rsaEngine{privateKey: privateKey, publicKey: &privateKey.PublicKey, logger: logger}, nil
	}
	if publicKey == nil {
		return nil, fmt.Errorf("%w: key material cannot be nil", cryptoDomain.ErrInvalidArgument)
	}
	return &rsaEngine{publicKey: publicKey, logger: logger}, nil
}

// NewRSAEngineFromParameters creates an engine from a structured key descriptor.
// The descriptor is validated structurally first; the assembled private key is then
// validated by the platform provider. Both failure modes report ErrInvalidKey.
func NewRSAEngineFromParameters(params *cryptoDomain.KeyParameters, logger logger.Logger) (cryptoDomain.Engine, error) {
	if params == nil {
		return nil, fmt.Errorf("%w: key parameters cannot be nil", cryptoDomain.ErrInvalidKey)
	}
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrInvalidKey, err)
	}

	exponent := new(big.Int).SetBytes(params.Exponent)
	if !exponent.IsInt64() || exponent.Int64() > int64(^uint32(0)) {
		return nil, fmt.Errorf("%w: public exponent out of range", cryptoDomain.ErrInvalidKey)
	}
	publicKey := &rsa.PublicKey{
		N: new(big.Int).SetBytes(params.Modulus),
		E: int(exponent.Int64()),
	}

	if !params.HasPrivate {
		return NewRSAEngine(nil, publicKey, logger)
	}

	privateKey := &rsa.PrivateKey{
		PublicKey: *publicKey,
		D:         new(big.Int).SetBytes(params.D),
		Primes: []*big.Int{
			new(big.Int).SetBytes(params.P),
			new(big.Int).SetBytes(params.Q),
		},
	}
	privateKey.Precompute()
	if err := privateKey.Validate(); err != nil {
		return nil, fmt.Errorf("%w: inconsistent private key fields: %v", cryptoDomain.ErrInvalidKey, err)
	}

	return NewRSAEngine(privateKey, nil, logger)
}

// NewRSAEngineFromBlob creates an engine by importing a PEM key blob, as produced
// by Export. The PEM block type determines whether the engine is private-capable.
func NewRSAEngineFromBlob(blob []byte, logger logger.Logger) (cryptoDomain.Engine, error) {
	if len(blob) == 0 {
		return nil, fmt.Errorf("%w: key blob cannot be nil or empty", cryptoDomain.ErrInvalidKey)
	}

	block, _ := pem.Decode(blob)
	if block == nil {
		return nil, fmt.Errorf("%w: failed to parse PEM block from key blob", cryptoDomain.ErrInvalidKey)
	}

	switch block.Type {
	case pemTypePrivateKeyPKCS1, pemTypePrivateKeyPKCS8:
		privateKey, err := parsePrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrInvalidKey, err)
		}
		return NewRSAEngine(privateKey, nil, logger)
	case pemTypePublicKeyPKIX, pemTypePublicKeyPKCS1:
		publicKey, err := parsePublicKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", cryptoDomain.ErrInvalidKey, err)
		}
		return NewRSAEngine(nil, publicKey, logger)
	default:
		return nil, fmt.Errorf("%w: unsupported PEM block type %q", cryptoDomain.ErrInvalidKey, block.Type)
	}
}

// parsePrivateKey parses DER private key bytes, trying PKCS#1 first and
// falling back to PKCS#8.
func parsePrivateKey(der []byte) (*rsa.PrivateKey, error) {
	privateKey, err := x509.ParsePKCS1PrivateKey(der)
	if err == nil {
		return privateKey, nil
	}

	keyInterface, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("unable to parse private key in either PKCS#1 or PKCS#8 format: %w", err)
	}

	privateKey, ok := keyInterface.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("private key is not of type RSA")
	}
	return privateKey, nil
}

// parsePublicKey parses DER public key bytes, trying PKCS#1 first and
// falling back to PKIX.
func parsePublicKey(der []byte) (*rsa.PublicKey, error) {
	publicKey, err := x509.ParsePKCS1PublicKey(der)
	if err == nil {
		return publicKey, nil
	}

	keyInterface, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, fmt.Errorf("unable to parse public key in either PKCS#1 or PKIX format: %w", err)
	}

	publicKey, ok := keyInterface.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("public key is not of type RSA")
	}
	return publicKey, nil
}

// Encrypt encrypts plaintext with the public key using PKCS#1 v1.5 padding.
// Plaintext longer than one modulus worth of payload is split into chunks.
func (e *rsaEngine) Encrypt(plainText []byte) ([]byte, error) {
	maxSize := e.publicKey.Size() - pkcs1PaddingOverhead

	var encryptedData []byte
	for len(plainText) > 0 {
		chunkSize := maxSize
		if len(plainText) < chunkSize {
			chunkSize = len(plainText)
		}

		encryptedChunk, err := rsa.EncryptPKCS1v15(rand.Reader, e.publicKey, plainText[:chunkSize])
		if err != nil {
			return nil, fmt.Errorf("failed to encrypt data: %w", err)
		}

		encryptedData = append(encryptedData, encryptedChunk...)
		plainText = plainText[chunkSize:]
	}

	e.logger.Info("RSA encryption succeeded")
	return encryptedData, nil
}

// Decrypt decrypts PKCS#1 v1.5 ciphertext with the private key, one
// modulus-sized chunk at a time.
func (e *rsaEngine) Decrypt(cipherText []byte) ([]byte, error) {
	if e.privateKey == nil {
		return nil, fmt.Errorf("engine holds no private key material")
	}

	maxSize := e.privateKey.Size()

	var decryptedData []byte
	for len(cipherText) > 0 {
		chunkSize := maxSize
		if len(cipherText) < chunkSize {
			chunkSize = len(cipherText)
		}

		decryptedChunk, err := rsa.DecryptPKCS1v15(rand.Reader, e.privateKey, cipherText[:chunkSize])
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt data: %w", err)
		}

		decryptedData = append(decryptedData, decryptedChunk...)
		cipherText = cipherText[chunkSize:]
	}

	e.logger.Info("RSA decryption succeeded")
	return decryptedData, nil
}

// Sign signs data with the private key using PKCS#1 v1.5 and the given digest
// algorithm. The signature length equals the key's modulus size.
func (e *rsaEngine) Sign(data []byte, digest cryptoDomain.DigestAlgorithm) ([]byte, error) {
	if e.privateKey == nil {
		return nil, fmt.Errorf("engine holds no private key material")
	}

	hash, hashed, err := hashData(digest, data)
	if err != nil {
		return nil, err
	}

	signature, err := rsa.SignPKCS1v15(rand.Reader, e.privateKey, hash, hashed)
	if err != nil {
		return nil, fmt.Errorf("failed to sign data: %w", err)
	}

	e.logger.Info("RSA signing succeeded")
	return signature, nil
}

// Verify checks a PKCS#1 v1.5 signature over data with the public key.
// Any signature that fails verification, including one of the wrong length,
// is reported as (false, nil) rather than an error.
func (e *rsaEngine) Verify(data []byte, digest cryptoDomain.DigestAlgorithm, signature []byte) (bool, error) {
	hash, hashed, err := hashData(digest, data)
	if err != nil {
		return false, err
	}

	if err := rsa.VerifyPKCS1v15(e.publicKey, hash, hashed, signature); err != nil {
		return false, nil
	}

	e.logger.Info("RSA signature verified successfully")
	return true, nil
}

// Export serializes the key material as a PEM blob: PKCS#1 "RSA PRIVATE KEY"
// when includePrivate is set and private material is held, PKIX "PUBLIC KEY"
// otherwise.
func (e *rsaEngine) Export(includePrivate bool) ([]byte, error) {
	if includePrivate && e.privateKey != nil {
		block := &pem.Block{
			Type:  pemTypePrivateKeyPKCS1,
			Bytes: x509.MarshalPKCS1PrivateKey(e.privateKey),
		}
		return pem.EncodeToMemory(block), nil
	}

	publicKeyBytes, err := x509.MarshalPKIXPublicKey(e.publicKey)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal public key: %w", err)
	}
	block := &pem.Block{
		Type:  pemTypePublicKeyPKIX,
		Bytes: publicKeyBytes,
	}
	return pem.EncodeToMemory(block), nil
}

// IsPublicOnly reports whether the engine holds only public key material.
func (e *rsaEngine) IsPublicOnly() bool {
	return e.privateKey == nil
}

// hashData condenses data with the requested digest algorithm (SHA-256 when
// unspecified) and returns the matching platform hash identifier.
func hashData(digest cryptoDomain.DigestAlgorithm, data []byte) (crypto.Hash, []byte, error) {
	switch digest.OrDefault() {
	case cryptoDomain.DigestSHA256:
		hashed := sha256.Sum256(data)
		return crypto.SHA256, hashed[:], nil
	case cryptoDomain.DigestSHA384:
		hashed := sha512.Sum384(data)
		return crypto.SHA384, hashed[:], nil
	case cryptoDomain.DigestSHA512:
		hashed := sha512.Sum512(data)
		return crypto.SHA512, hashed[:], nil
	default:
		return 0, nil, fmt.Errorf("%w: unsupported digest algorithm %q", cryptoDomain.ErrInvalidArgument, digest)
	}
}
