// Package config provides configuration settings and their validation.
//
// The only configurable concern of this service is logging; settings are
// validated before use so misconfiguration surfaces at startup rather than
// at the first log call.
package config
