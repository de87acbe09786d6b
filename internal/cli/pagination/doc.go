// Package pagination provides the shared listing flags of admin commands.
//
// This package contains the pagination and ordering logic used across CLI
// commands, including:
//   - Params: CLI flag registration and validation
//   - ParseOrder: order expression parsing into manager query syntax
//
// The pagination package ensures consistent listing behavior across all
// skyctl commands that return pages of items (users, agents, images, etc.).
package pagination
