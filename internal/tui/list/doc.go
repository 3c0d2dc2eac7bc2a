// Package listview provides a scrolling window over a slice of items whose
// rendered rows may span several lines, such as the claim cards of the
// influencer detail view.
//
// Only the items inside the window are rendered. The selected item is kept
// inside the window as it moves.
package listview
