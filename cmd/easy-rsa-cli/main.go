// Package main is the entry point for the easy-rsa-cli application.
// It initializes the root command, registers the RSA sub-commands and
// executes the command-line interface.
package main

import (
	"fmt"
	"log"
	"os"

	commands "easy_rsa_service/cmd/easy-rsa-cli/internal/commands"

	"github.com/spf13/cobra"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "easy-rsa-cli",
		Short: "RSA keyed cipher CLI tool",
		Long: `easy-rsa-cli is a command-line tool for RSA operations on a single key:
encryption, decryption, signing, signature verification and key export.
Keys are handled as PEM blobs; decrypt and sign require a private key blob,
while encrypt and verify work with a public key blob as well.`,
	}

	if err := commands.InitRSACommands(rootCmd); err != nil {
		return fmt.Errorf("failed to initialize commands: %w", err)
	}

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stderr)
}
