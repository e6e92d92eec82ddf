// Package persistence writes validated datasets in the packed binary layout
// consumed by native numerical programs.
//
// Layout (all integers big-endian, no padding, no alignment):
//
//	offset 0   dimension  uint32
//	offset 4   count      uint64
//	offset 12  data       count*dimension int64, vector-major
//
// The total size is 12 + 8*dimension*count bytes.
package persistence
