// Package util provides small shared helpers, such as capping payloads
// before they are written to logs.
package util
