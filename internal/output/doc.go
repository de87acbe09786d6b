// Package output renders manager API resources as tabular text.
//
// This package contains the console output handler used by every admin
// command, including:
//   - Handler: single-item, flat-list, and paginated-list rendering
//   - FieldSpec/Formatter: column descriptors with typed value formatting
//   - pager integration: interactive output is fed page by page to an
//     external pager, fetching remote pages lazily as the user scrolls
//
// Output mode bifurcates on whether stdout is an interactive terminal:
// interactive runs go through the pager, non-interactive runs stream the
// full table immediately in arrival order.
package output
