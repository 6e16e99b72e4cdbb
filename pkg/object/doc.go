// Package object provides the minimal dynamic object model that trait
// units operate on: named classes holding mutable method tables with
// single-inheritance resolution, and instances that dispatch through them.
//
// Classes are owned by the caller. The trait engine receives a class
// reference, mutates its method table in place, and returns the same
// reference; Clone supports the persistent alternative.
package object
