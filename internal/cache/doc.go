// Package cache provides the in-process store for fetched influencer data.
//
// Entries are keyed by username and live for the lifetime of the process:
//   - No TTL and no eviction. The first stored value for a key is authoritative.
//   - Each entry records when it was stored and where the value came from
//     (a live fetch or a fixture substitution).
//   - Safe for concurrent use by the fetch resolver, the HTTP server and
//     the dashboard prefetcher.
//
// The store is an explicit value owned by whoever composes the fetcher.
// There is no package-level instance.
package cache
