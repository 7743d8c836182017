//go:build unit
// +build unit

package app

import (
	"crypto/rand"
	"crypto/rsa"
	"math/big"
	"testing"

	"easy_rsa_service/internal/domain/crypto"
	"easy_rsa_service/internal/infrastructure/cryptography"
	"easy_rsa_service/internal/pkg/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

const TestKeySize2048 = 2048

func setupPrivateCipher(t *testing.T) (crypto.KeyedCipher, *rsa.PrivateKey) {
	t.Helper()
	log := testutil.SetupTestLogger(t)

	privateKey, err := rsa.GenerateKey(rand.Reader, TestKeySize2048)
	require.NoError(t, err)

	engine, err := cryptography.NewRSAEngine(privateKey, nil, log)
	require.NoError(t, err)

	cipher, err := NewKeyedCipher(engine, log)
	require.NoError(t, err)

	return cipher, privateKey
}

func setupPublicCipher(t *testing.T, privateKey *rsa.PrivateKey) crypto.KeyedCipher {
	t.Helper()
	log := testutil.SetupTestLogger(t)

	engine, err := cryptography.NewRSAEngine(nil, &privateKey.PublicKey, log)
	require.NoError(t, err)

	cipher, err := NewKeyedCipher(engine, log)
	require.NoError(t, err)

	return cipher
}

func TestNewKeyedCipher(t *testing.T) {
	log := testutil.SetupTestLogger(t)

	t.Run("NilEngine", func(t *testing.T) {
		_, err := NewKeyedCipher(nil, log)
		require.Error(t, err)
		assert.ErrorIs(t, err, crypto.ErrInvalidArgument)
	})

	t.Run("PrivateEngineYieldsPrivateCapableHandle", func(t *testing.T) {
		cipher, _ := setupPrivateCipher(t)
		assert.True(t, cipher.HasPrivate())
	})

	t.Run("PublicEngineYieldsPublicOnlyHandle", func(t *testing.T) {
		_, privateKey := setupPrivateCipher(t)
		cipher := setupPublicCipher(t, privateKey)
		assert.False(t, cipher.HasPrivate())
	})
}

func TestNewKeyedCipherFromParameters(t *testing.T) {
	log := testutil.SetupTestLogger(t)

	privateKey, err := rsa.GenerateKey(rand.Reader, TestKeySize2048)
	require.NoError(t, err)

	t.Run("PrivateDescriptor", func(t *testing.T) {
		params := &crypto.KeyParameters{
			Modulus:    privateKey.N.Bytes(),
			Exponent:   big.NewInt(int64(privateKey.E)).Bytes(),
			D:          privateKey.D.Bytes(),
			P:          privateKey.Primes[0].Bytes(),
			Q:          privateKey.Primes[1].Bytes(),
			HasPrivate: true,
		}

		cipher, err := NewKeyedCipherFromParameters(params, log)
		require.NoError(t, err)
		assert.True(t, cipher.HasPrivate())

		plainText := []byte("parameters round trip")
		cipherText, err := cipher.Encrypt(plainText)
		require.NoError(t, err)
		decrypted, err := cipher.Decrypt(cipherText)
		require.NoError(t, err)
		assert.Equal(t, plainText, decrypted)
	})

	t.Run("PublicDescriptor", func(t *testing.T) {
		params := &crypto.KeyParameters{
			Modulus:  privateKey.N.Bytes(),
			Exponent: big.NewInt(int64(privateKey.E)).Bytes(),
		}

		cipher, err := NewKeyedCipherFromParameters(params, log)
		require.NoError(t, err)
		assert.False(t, cipher.HasPrivate())
	})

	t.Run("MalformedDescriptor", func(t *testing.T) {
		params := &crypto.KeyParameters{
			Modulus:    privateKey.N.Bytes(),
			Exponent:   big.NewInt(int64(privateKey.E)).Bytes(),
			HasPrivate: true,
		}

		_, err := NewKeyedCipherFromParameters(params, log)
		assert.ErrorIs(t, err, crypto.ErrInvalidKey)
	})
}

func TestKeyedCipherRoundTrips(t *testing.T) {
	cipher, _ := setupPrivateCipher(t)

	t.Run("Bytes", func(t *testing.T) {
		plainText := []byte("This is a secret message")
		cipherText, err := cipher.Encrypt(plainText)
		require.NoError(t, err)
		decrypted, err := cipher.Decrypt(cipherText)
		require.NoError(t, err)
		assert.Equal(t, plainText, decrypted)
	})

	t.Run("TextDefaultEncoding", func(t *testing.T) {
		text := "grüße aus dem Süden ✓"
		cipherText, err := cipher.EncryptText(text, nil)
		require.NoError(t, err)
		decrypted, err := cipher.DecryptText(cipherText, nil)
		require.NoError(t, err)
		assert.Equal(t, text, decrypted)
	})

	t.Run("TextExplicitEncoding", func(t *testing.T) {
		text := "café au lait"
		cipherText, err := cipher.EncryptText(text, charmap.ISO8859_1)
		require.NoError(t, err)
		decrypted, err := cipher.DecryptText(cipherText, charmap.ISO8859_1)
		require.NoError(t, err)
		assert.Equal(t, text, decrypted)
	})

	t.Run("DecryptTextRejectsInvalidBase64", func(t *testing.T) {
		_, err := cipher.DecryptText("not*base64*at*all", nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, crypto.ErrInvalidArgument)
	})
}

func TestKeyedCipherAuthorization(t *testing.T) {
	_, privateKey := setupPrivateCipher(t)
	publicCipher := setupPublicCipher(t, privateKey)

	t.Run("DecryptRequiresPrivateKey", func(t *testing.T) {
		_, err := publicCipher.Decrypt([]byte("anything"))
		require.Error(t, err)
		assert.ErrorIs(t, err, crypto.ErrUnauthorized)
	})

	t.Run("SignRequiresPrivateKey", func(t *testing.T) {
		_, err := publicCipher.Sign([]byte("anything"), "")
		require.Error(t, err)
		assert.ErrorIs(t, err, crypto.ErrUnauthorized)
	})

	t.Run("DecryptTextRequiresPrivateKey", func(t *testing.T) {
		_, err := publicCipher.DecryptText("QUJD", nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, crypto.ErrUnauthorized)
	})

	t.Run("EncryptAndVerifyAreLegalOnPublicOnlyHandle", func(t *testing.T) {
		_, err := publicCipher.Encrypt([]byte("anything"))
		assert.NoError(t, err)

		valid, err := publicCipher.Verify([]byte("anything"), "", []byte("bogus"))
		require.NoError(t, err)
		assert.False(t, valid)
	})
}

func TestKeyedCipherSignVerify(t *testing.T) {
	cipher, privateKey := setupPrivateCipher(t)
	publicCipher := setupPublicCipher(t, privateKey)

	data := []byte{0x41, 0x42, 0x43}

	t.Run("ConcreteScenario", func(t *testing.T) {
		cipherText, err := cipher.Encrypt(data)
		require.NoError(t, err)
		decrypted, err := cipher.Decrypt(cipherText)
		require.NoError(t, err)
		assert.Equal(t, []byte{0x41, 0x42, 0x43}, decrypted)

		signature, err := cipher.Sign(data, "")
		require.NoError(t, err)
		assert.Equal(t, privateKey.Size(), len(signature))

		valid, err := cipher.Verify(data, "", signature)
		require.NoError(t, err)
		assert.True(t, valid)

		valid, err = cipher.Verify([]byte{0x41, 0x42, 0x44}, "", signature)
		require.NoError(t, err)
		assert.False(t, valid)
	})

	t.Run("PublicOnlyHandleVerifies", func(t *testing.T) {
		signature, err := cipher.Sign(data, crypto.DigestSHA384)
		require.NoError(t, err)

		valid, err := publicCipher.Verify(data, crypto.DigestSHA384, signature)
		require.NoError(t, err)
		assert.True(t, valid)
	})

	t.Run("SignatureFromAnotherMessageIsRejected", func(t *testing.T) {
		signature, err := cipher.Sign([]byte("first message"), "")
		require.NoError(t, err)

		valid, err := cipher.Verify([]byte("second message"), "", signature)
		require.NoError(t, err)
		assert.False(t, valid)
	})
}

func TestKeyedCipherExport(t *testing.T) {
	log := testutil.SetupTestLogger(t)
	cipher, _ := setupPrivateCipher(t)

	t.Run("PrivateExportRoundTrip", func(t *testing.T) {
		blob, err := cipher.Export()
		require.NoError(t, err)

		imported, err := NewKeyedCipherFromBlob(blob, log)
		require.NoError(t, err)
		assert.True(t, imported.HasPrivate())

		plainText := []byte("export round trip")
		cipherText, err := imported.Encrypt(plainText)
		require.NoError(t, err)
		decrypted, err := imported.Decrypt(cipherText)
		require.NoError(t, err)
		assert.Equal(t, plainText, decrypted)
	})

	t.Run("PublicOnlyExportStaysPublic", func(t *testing.T) {
		_, privateKey := setupPrivateCipher(t)
		publicCipher := setupPublicCipher(t, privateKey)

		blob, err := publicCipher.Export()
		require.NoError(t, err)

		imported, err := NewKeyedCipherFromBlob(blob, log)
		require.NoError(t, err)
		assert.False(t, imported.HasPrivate())
	})

	t.Run("MalformedBlob", func(t *testing.T) {
		_, err := NewKeyedCipherFromBlob([]byte("garbage"), log)
		assert.ErrorIs(t, err, crypto.ErrInvalidKey)
	})

	t.Run("NilBlob", func(t *testing.T) {
		_, err := NewKeyedCipherFromBlob(nil, log)
		assert.ErrorIs(t, err, crypto.ErrInvalidKey)
	})
}
