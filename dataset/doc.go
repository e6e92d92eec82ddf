// Package dataset validates a decoded JSON document describing a set of
// equal-length integer vectors and flattens it for binary encoding.
//
// The expected document shape is
//
//	{ "vectors": [ [int, int, ...], [int, int, ...], ... ] }
//
// Other top-level keys are ignored. The first vector defines the dimension;
// every other vector must have the same length, and every element must be an
// integer representable as a signed 64-bit value.
//
// Validation stops at the first failure and reports it as one of the typed
// errors in this package. All of them match ErrValidation via errors.Is.
package dataset
