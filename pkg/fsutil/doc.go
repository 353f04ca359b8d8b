// Package fsutil provides utilities for filesystem operations.
//
// Key functionality:
//   - File replacement: ReplaceFile (atomic, durable, permission preserving)
//   - Path operations: ExpandHomePath
package fsutil
