package swiget

import "github.com/skyforge/swiget/core"

// Sentinel errors for common failure conditions.
// Re-exported from core package.
var (
	// ErrInvalidSpecifier indicates the location specifier is malformed or
	// uses an unknown addressing scheme.
	ErrInvalidSpecifier = core.ErrInvalidSpecifier

	// ErrNotFound indicates a label, device, or registry entry did not resolve.
	ErrNotFound = core.ErrNotFound

	// ErrTransport indicates an external transport step failed
	// (download, mount, unmount, remote copy).
	ErrTransport = core.ErrTransport

	// ErrMissingArchive indicates the location resolved but the requested
	// archive is absent.
	ErrMissingArchive = core.ErrMissingArchive
)
