// Package fs abstracts the filesystem calls behind atomic file replacement
// so tests can inject write, sync and rename failures.
//
//   - [LocalFS]: the os-backed implementation, exposed as [Default]
//   - [FaultyFS]: wraps another FileSystem and fails on demand
//
// Tests that need a failing disk wrap the default:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.SetFault(fs.Fault{FailAfterBytes: 1024})
//	err := persistence.SaveToFileFS(ffs, path, write)
package fs
