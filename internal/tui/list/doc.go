// Package listview provides a scrolling list for Bubble Tea programs.
//
// Only the rows inside the viewport (plus a small buffer) are rendered, so
// long lists such as the full country catalogue stay responsive. The list
// supports up/down, pgup/pgdn, home/end and j/k navigation, and its items
// can be swapped at any time (e.g. when a filter changes).
package listview
