package crypto

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// DigestAlgorithm selects the hash function used to condense data before
// signing or verification. The zero value means DigestSHA256.
type DigestAlgorithm string

// Supported digest algorithms
const (
	DigestSHA256 DigestAlgorithm = "SHA-256"
	DigestSHA384 DigestAlgorithm = "SHA-384"
	DigestSHA512 DigestAlgorithm = "SHA-512"
)

// OrDefault resolves the zero value to DigestSHA256.
func (d DigestAlgorithm) OrDefault() DigestAlgorithm {
	if d == "" {
		return DigestSHA256
	}
	return d
}

// IsValid reports whether the algorithm is one of the supported digests.
// The zero value is valid since it resolves to SHA-256.
func (d DigestAlgorithm) IsValid() bool {
	switch d.OrDefault() {
	case DigestSHA256, DigestSHA384, DigestSHA512:
		return true
	default:
		return false
	}
}

// KeyParameters is a structured RSA key descriptor. All numeric fields are
// unsigned big-endian byte sequences. Modulus and Exponent describe the public
// key; when HasPrivate is set, D and the two primes P and Q must be present as
// well (DP, DQ and QInv are recomputed by the engine when omitted).
type KeyParameters struct {
	Modulus  []byte `mapstructure:"modulus" validate:"required"`
	Exponent []byte `mapstructure:"exponent" validate:"required"`
	D        []byte `mapstructure:"d"`
	P        []byte `mapstructure:"p"`
	Q        []byte `mapstructure:"q"`
	DP       []byte `mapstructure:"dp"`
	DQ       []byte `mapstructure:"dq"`
	QInv     []byte `mapstructure:"qinv"`

	// HasPrivate marks the descriptor as carrying the private component.
	HasPrivate bool `mapstructure:"has_private"`
}

// Validate checks that the descriptor is structurally consistent: the public
// fields are present, and the private fields are present iff HasPrivate is set.
func (p *KeyParameters) Validate() error {
	validate := validator.New()

	if err := validate.Struct(p); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	if p.HasPrivate {
		if len(p.D) == 0 || len(p.P) == 0 || len(p.Q) == 0 {
			return fmt.Errorf("private descriptor requires D, P and Q")
		}
	} else if len(p.D) != 0 {
		return fmt.Errorf("public descriptor must not carry a private exponent")
	}

	return nil
}
