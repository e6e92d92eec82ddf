// Package mmap maps local input files read-only into memory.
//
// Converter inputs are read once, front to back, so mappings are advised
// as sequential. Callers copy what they keep before Close.
//
// Unix uses mmap(2) and madvise(2) via golang.org/x/sys/unix; Windows uses
// CreateFileMapping/MapViewOfFile and ignores access hints.
package mmap
