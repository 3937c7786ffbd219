// Package pagination holds the paging and sorting flags shared by list
// commands (countries, compare).
//
// Two paging modes are supported and are mutually exclusive:
//   - offset-based: --limit and --offset
//   - page-based: --page and --page-size
//
// Sort expressions take the form "field" or "field:order".
package pagination
