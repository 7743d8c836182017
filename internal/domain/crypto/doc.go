// Package crypto defines the core interfaces and structures for working with a single RSA key:
// the engine capability over the platform provider, the keyed cipher facade offered to callers,
// digest algorithm selection and structured key parameters.

package crypto
