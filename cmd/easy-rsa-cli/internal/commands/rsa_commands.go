package commands

import (
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"os"
	"path/filepath"

	"easy_rsa_service/internal/app"
	"easy_rsa_service/internal/domain/crypto"
	"easy_rsa_service/internal/infrastructure/cryptography"
	"easy_rsa_service/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// RSACommandHandler encapsulates logic for handling keyed cipher operations via CLI.
type RSACommandHandler struct {
	logger logger.Logger
}

// NewRSACommandHandler initializes a new RSACommandHandler with logging.
func NewRSACommandHandler() (*RSACommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	return &RSACommandHandler{
		logger: loggerInstance,
	}, nil
}

// cipherFromKeyFile builds a keyed cipher from a PEM key blob on disk.
func (commandHandler *RSACommandHandler) cipherFromKeyFile(keyPath string) (crypto.KeyedCipher, error) {
	blob, err := os.ReadFile(filepath.Clean(keyPath))
	if err != nil {
		return nil, fmt.Errorf("unable to read key file: %w", err)
	}
	return app.NewKeyedCipherFromBlob(blob, commandHandler.logger)
}

// KeygenCmd generates an RSA key pair and persists both blobs in a selected directory
func (commandHandler *RSACommandHandler) KeygenCmd(cmd *cobra.Command, _ []string) {
	keySize, err := cmd.Flags().GetInt("key-size")
	if err != nil {
		commandHandler.logger.Error("invalid key-size flag: %v", err)
		return
	}
	keyDir, err := cmd.Flags().GetString("key-dir")
	if err != nil {
		commandHandler.logger.Error("invalid key-dir flag: %v", err)
		return
	}

	uniqueID := uuid.New()

	privateKey, err := rsa.GenerateKey(rand.Reader, keySize)
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	engine, err := cryptography.NewRSAEngine(privateKey, nil, commandHandler.logger)
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	privateBlob, err := engine.Export(true)
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}
	privateKeyFilePath := fmt.Sprintf("%s/%s-private-key.pem", keyDir, uniqueID.String())
	if err = os.WriteFile(privateKeyFilePath, privateBlob, 0600); err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	publicBlob, err := engine.Export(false)
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}
	publicKeyFilePath := fmt.Sprintf("%s/%s-public-key.pem", keyDir, uniqueID.String())
	if err = os.WriteFile(publicKeyFilePath, publicBlob, 0600); err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	commandHandler.logger.Info("Generated key pair at ", keyDir)
}

// EncryptCmd encrypts a file with the public key from a key blob
func (commandHandler *RSACommandHandler) EncryptCmd(cmd *cobra.Command, _ []string) {
	inputFile, err := cmd.Flags().GetString("input-file")
	if err != nil {
		commandHandler.logger.Error("invalid input-file flag: %v", err)
		return
	}
	outputFile, err := cmd.Flags().GetString("output-file")
	if err != nil {
		commandHandler.logger.Error("invalid output-file flag: %v", err)
		return
	}
	keyPath, err := cmd.Flags().GetString("key")
	if err != nil {
		commandHandler.logger.Error("invalid key flag: %v", err)
		return
	}

	cipher, err := commandHandler.cipherFromKeyFile(keyPath)
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	plainText, err := os.ReadFile(filepath.Clean(inputFile))
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	encryptedData, err := cipher.Encrypt(plainText)
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	if err = os.WriteFile(outputFile, encryptedData, 0600); err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	commandHandler.logger.Info("Encrypted data path ", outputFile)
}

// DecryptCmd decrypts a file with the private key from a key blob
func (commandHandler *RSACommandHandler) DecryptCmd(cmd *cobra.Command, _ []string) {
	inputFile, err := cmd.Flags().GetString("input-file")
	if err != nil {
		commandHandler.logger.Error("invalid input-file flag: %v", err)
		return
	}
	outputFile, err := cmd.Flags().GetString("output-file")
	if err != nil {
		commandHandler.logger.Error("invalid output-file flag: %v", err)
		return
	}
	keyPath, err := cmd.Flags().GetString("key")
	if err != nil {
		commandHandler.logger.Error("invalid key flag: %v", err)
		return
	}

	cipher, err := commandHandler.cipherFromKeyFile(keyPath)
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	encryptedData, err := os.ReadFile(filepath.Clean(inputFile))
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	decryptedData, err := cipher.Decrypt(encryptedData)
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	if err = os.WriteFile(outputFile, decryptedData, 0600); err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	commandHandler.logger.Info("Decrypted data path ", outputFile)
}

// SignCmd signs a file and saves the signature
func (commandHandler *RSACommandHandler) SignCmd(cmd *cobra.Command, _ []string) {
	inputFilePath, err := cmd.Flags().GetString("input-file")
	if err != nil {
		commandHandler.logger.Error("invalid input-file flag: %v", err)
		return
	}
	signatureFilePath, err := cmd.Flags().GetString("output-file")
	if err != nil {
		commandHandler.logger.Error("invalid output-file flag: %v", err)
		return
	}
	keyPath, err := cmd.Flags().GetString("key")
	if err != nil {
		commandHandler.logger.Error("invalid key flag: %v", err)
		return
	}
	digest, err := cmd.Flags().GetString("digest")
	if err != nil {
		commandHandler.logger.Error("invalid digest flag: %v", err)
		return
	}

	cipher, err := commandHandler.cipherFromKeyFile(keyPath)
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	data, err := os.ReadFile(filepath.Clean(inputFilePath))
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	signature, err := cipher.Sign(data, crypto.DigestAlgorithm(digest))
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	if err = os.WriteFile(signatureFilePath, signature, 0600); err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	commandHandler.logger.Info("Signature saved at ", signatureFilePath)
}

// VerifyCmd verifies a file signature
func (commandHandler *RSACommandHandler) VerifyCmd(cmd *cobra.Command, _ []string) {
	inputFilePath, err := cmd.Flags().GetString("input-file")
	if err != nil {
		commandHandler.logger.Error("invalid input-file flag: %v", err)
		return
	}
	signatureFilePath, err := cmd.Flags().GetString("signature-file")
	if err != nil {
		commandHandler.logger.Error("invalid signature-file flag: %v", err)
		return
	}
	keyPath, err := cmd.Flags().GetString("key")
	if err != nil {
		commandHandler.logger.Error("invalid key flag: %v", err)
		return
	}
	digest, err := cmd.Flags().GetString("digest")
	if err != nil {
		commandHandler.logger.Error("invalid digest flag: %v", err)
		return
	}

	cipher, err := commandHandler.cipherFromKeyFile(keyPath)
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	data, err := os.ReadFile(filepath.Clean(inputFilePath))
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	signature, err := os.ReadFile(filepath.Clean(signatureFilePath))
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	valid, err := cipher.Verify(data, crypto.DigestAlgorithm(digest), signature)
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	if valid {
		commandHandler.logger.Info("Signature is valid")
	} else {
		commandHandler.logger.Error("Signature is invalid")
	}
}

// ExportPublicCmd derives a public-only key blob from any key blob
func (commandHandler *RSACommandHandler) ExportPublicCmd(cmd *cobra.Command, _ []string) {
	keyPath, err := cmd.Flags().GetString("key")
	if err != nil {
		commandHandler.logger.Error("invalid key flag: %v", err)
		return
	}
	outputFile, err := cmd.Flags().GetString("output-file")
	if err != nil {
		commandHandler.logger.Error("invalid output-file flag: %v", err)
		return
	}

	blob, err := os.ReadFile(filepath.Clean(keyPath))
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	engine, err := cryptography.NewRSAEngineFromBlob(blob, commandHandler.logger)
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	publicBlob, err := engine.Export(false)
	if err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	if err = os.WriteFile(outputFile, publicBlob, 0600); err != nil {
		commandHandler.logger.Error("%v", err)
		return
	}

	commandHandler.logger.Info("Public key blob saved at ", outputFile)
}

// InitRSACommands registers the keyed cipher commands
func InitRSACommands(rootCmd *cobra.Command) error {
	handler, err := NewRSACommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create RSA command handler %w", err)
	}

	var keygenCmd = &cobra.Command{
		Use:   "keygen",
		Short: "Generate an RSA key pair as PEM blobs",
		Run:   handler.KeygenCmd,
	}
	keygenCmd.Flags().IntP("key-size", "", 2048, "RSA key size in bits (default 2048)")
	keygenCmd.Flags().StringP("key-dir", "", "", "Directory to store the key blobs")
	rootCmd.AddCommand(keygenCmd)

	var encryptCmd = &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt a file with a key blob",
		Run:   handler.EncryptCmd,
	}
	encryptCmd.Flags().StringP("input-file", "", "", "Path to input file which needs to be encrypted")
	encryptCmd.Flags().StringP("output-file", "", "", "Path to encrypted output file")
	encryptCmd.Flags().StringP("key", "", "", "Path to a PEM key blob (public or private)")
	rootCmd.AddCommand(encryptCmd)

	var decryptCmd = &cobra.Command{
		Use:   "decrypt",
		Short: "Decrypt a file with a private key blob",
		Run:   handler.DecryptCmd,
	}
	decryptCmd.Flags().StringP("input-file", "", "", "Path to encrypted file")
	decryptCmd.Flags().StringP("output-file", "", "", "Path to decrypted output file")
	decryptCmd.Flags().StringP("key", "", "", "Path to a PEM private key blob")
	rootCmd.AddCommand(decryptCmd)

	var signCmd = &cobra.Command{
		Use:   "sign",
		Short: "Sign a file with a private key blob",
		Run:   handler.SignCmd,
	}
	signCmd.Flags().StringP("input-file", "", "", "Path to file which needs to be signed")
	signCmd.Flags().StringP("output-file", "", "", "Path to signature output file")
	signCmd.Flags().StringP("key", "", "", "Path to a PEM private key blob")
	signCmd.Flags().StringP("digest", "", "", "Digest algorithm (SHA-256, SHA-384 or SHA-512; default SHA-256)")
	rootCmd.AddCommand(signCmd)

	var verifyCmd = &cobra.Command{
		Use:   "verify",
		Short: "Verify a file signature with a key blob",
		Run:   handler.VerifyCmd,
	}
	verifyCmd.Flags().StringP("input-file", "", "", "Path to signed file")
	verifyCmd.Flags().StringP("signature-file", "", "", "Path to signature file")
	verifyCmd.Flags().StringP("key", "", "", "Path to a PEM key blob (public or private)")
	verifyCmd.Flags().StringP("digest", "", "", "Digest algorithm (SHA-256, SHA-384 or SHA-512; default SHA-256)")
	rootCmd.AddCommand(verifyCmd)

	var exportPublicCmd = &cobra.Command{
		Use:   "export-public",
		Short: "Derive a public-only key blob from any key blob",
		Run:   handler.ExportPublicCmd,
	}
	exportPublicCmd.Flags().StringP("key", "", "", "Path to a PEM key blob (public or private)")
	exportPublicCmd.Flags().StringP("output-file", "", "", "Path to public key blob output file")
	rootCmd.AddCommand(exportPublicCmd)

	return nil
}
