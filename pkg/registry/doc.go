// Package registry provides a generic, type-safe registry system.
// The trait package registers its kind strategies here through init(),
// and callers may use it to keep catalogs of constructed units.
package registry
