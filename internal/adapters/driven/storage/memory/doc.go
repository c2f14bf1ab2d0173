// Package memory provides in-memory implementations of the storage ports,
// used when persistence is disabled and in tests.
package memory
