// Package detail tracks the lazily loaded request behind a TUI detail view.
//
// Each load gets a fresh ID and its own cancellable context. Starting a new
// load cancels the previous one, and a result is applied only when its ID
// is still current, so a slow response for an old key never overwrites the
// view for a newer key. Retrying after an error ('r') is just another load.
package detail
