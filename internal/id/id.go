// Package id provides unique identifier generation utilities.
// This is the canonical source for ID generation across the codebase.
package id

import "github.com/google/uuid"

// UUID generates a random (version 4) UUID string.
func UUID() string {
	return uuid.NewString()
}

// UDN returns a UPnP unique device name: "uuid:" followed by a fresh UUID.
func UDN() string {
	return "uuid:" + uuid.NewString()
}

// Short returns the first 8 characters of a fresh UUID, for log output
// where brevity matters.
func Short() string {
	return uuid.NewString()[:8]
}
