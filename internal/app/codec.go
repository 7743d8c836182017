package app

import (
	"encoding/base64"
	"fmt"

	"easy_rsa_service/internal/domain/crypto"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// EncryptText encodes text with the given text encoding, encrypts the bytes and
// returns the ciphertext as a Base64 string. A nil encoding means UTF-8.
func (c *keyedCipher) EncryptText(text string, enc encoding.Encoding) (string, error) {
	plainText, err := encodeText(text, enc)
	if err != nil {
		return "", err
	}

	cipherText, err := c.Encrypt(plainText)
	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(cipherText), nil
}

// DecryptText decodes a Base64 ciphertext string, decrypts it and decodes the
// plaintext bytes with the given text encoding. A nil encoding means UTF-8.
func (c *keyedCipher) DecryptText(cipherText string, enc encoding.Encoding) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(cipherText)
	if err != nil {
		return "", fmt.Errorf("%w: ciphertext is not valid Base64: %v", crypto.ErrInvalidArgument, err)
	}

	plainText, err := c.Decrypt(raw)
	if err != nil {
		return "", err
	}

	return decodeText(plainText, enc)
}

func encodeText(text string, enc encoding.Encoding) ([]byte, error) {
	if enc == nil {
		enc = unicode.UTF8
	}

	encoded, err := enc.NewEncoder().String(text)
	if err != nil {
		return nil, fmt.Errorf("failed to encode text: %w", err)
	}
	return []byte(encoded), nil
}

func decodeText(data []byte, enc encoding.Encoding) (string, error) {
	if enc == nil {
		enc = unicode.UTF8
	}

	decoded, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode text: %w", err)
	}
	return string(decoded), nil
}
